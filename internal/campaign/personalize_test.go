package campaign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/outreach/pkg/mailer"
	"github.com/dmitrymomot/outreach/pkg/recipient"
)

func TestFirstName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Grace", FirstName("Grace Hopper"))
	assert.Equal(t, "Grace", FirstName("  Grace   Brewster Hopper "))
	assert.Equal(t, "there", FirstName(""))
	assert.Equal(t, "there", FirstName("   "))
}

func TestPersonalizer_Placeholders(t *testing.T) {
	t.Parallel()

	p := NewPersonalizer(testIdentity, ImageResolver{})
	values, imagePath := p.Placeholders(recipient.Record{
		Name:          "Grace Hopper",
		Company:       "Acme",
		Position:      "CTO",
		Framework:     "known_for",
		Strength:      "debugging",
		AudienceValue: "uptime",
	})

	assert.Empty(t, imagePath)
	assert.Equal(t, mailer.Placeholders{
		"name":                "Ada Lovelace",
		"first_name":          "Grace",
		"company":             "Acme",
		"position":            "CTO",
		"value_prop_sentence": "I'm known for my debugging to achieve uptime.",
		"your_name":           "Ada Lovelace",
		"your_phone_number":   "555-0100",
		"your_email":          "ada@example.com",
		"your_city_and_state": "Austin, TX",
		"dynamic_image_tag":   "",
	}, values)
}

func TestPersonalizer_Personalize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A&B_Grace Hopper.png"), []byte("png"), 0o600))
	p := NewPersonalizer(testIdentity, ImageResolver{Dir: dir, Template: DefaultImageTemplate})

	rec := recipient.Record{Name: "Grace Hopper", Company: "A&B", TemplateFile: DefaultImageTemplate}

	t.Run("html with inline image", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate(DefaultImageTemplate, []byte(
			"Subject: Notes for {company}\n---\n<style>p {{ margin: 0; }}</style><p>Hi {first_name}</p>{dynamic_image_tag}",
		))
		require.NoError(t, err)

		msg, err := p.Personalize(tmpl, rec)
		require.NoError(t, err)
		assert.Equal(t, "Notes for A&B", msg.Subject)
		assert.Equal(t, filepath.Join(dir, "A&B_Grace Hopper.png"), msg.ImagePath)
		assert.Contains(t, msg.HTML, "<style>p { margin: 0; }</style>")
		assert.Contains(t, msg.HTML,
			`<img src="cid:my_dynamic_image" alt="A&amp;B Meeting Summary" style="width:100%; max-width:600px;">`)
		assert.Contains(t, msg.Text, "Hi Grace")
	})

	t.Run("markdown body", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate("followup.md", []byte(
			"Subject: Following up\n---\nHi **{first_name}**,\n\n{value_prop_sentence}\n\n[!cta|Book a call](https://cal.example.com)",
		))
		require.NoError(t, err)

		msg, err := p.Personalize(tmpl, recipient.Record{Name: "Alan"})
		require.NoError(t, err)
		assert.Contains(t, msg.HTML, "<strong>Alan</strong>")
		assert.Contains(t, msg.HTML, GenericValueProposition)
		assert.Contains(t, msg.HTML, `href="https://cal.example.com"`)
		assert.Empty(t, msg.ImagePath)
	})

	t.Run("unknown placeholder fails", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate("bad.html", []byte("Subject: Hi {nickname}\n---\nBody"))
		require.NoError(t, err)

		_, err = p.Personalize(tmpl, rec)
		require.ErrorIs(t, err, mailer.ErrBindFailed)
		require.ErrorIs(t, err, mailer.ErrUnresolvedPlaceholder)
		assert.Contains(t, err.Error(), "subject of bad.html")
	})

	t.Run("image tag empty for other templates", func(t *testing.T) {
		t.Parallel()

		tmpl, err := mailer.ParseTemplate("intro.html", []byte("Subject: Hi\n---\n[{dynamic_image_tag}]"))
		require.NoError(t, err)

		other := rec
		other.TemplateFile = "intro.html"
		msg, err := p.Personalize(tmpl, other)
		require.NoError(t, err)
		assert.Equal(t, "[]", msg.HTML)
		assert.Empty(t, msg.ImagePath)
	})
}
