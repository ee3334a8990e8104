package mailer_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

func TestCompose_Validation(t *testing.T) {
	t.Parallel()

	_, err := mailer.Compose(&mailer.Email{Subject: "s", HTML: "h"})
	require.ErrorIs(t, err, mailer.ErrNoRecipient)

	_, err = mailer.Compose(&mailer.Email{To: []string{"a@example.com"}, HTML: "h"})
	require.ErrorIs(t, err, mailer.ErrNoSubject)

	_, err = mailer.Compose(&mailer.Email{To: []string{"a@example.com"}, Subject: "s"})
	require.ErrorIs(t, err, mailer.ErrNoContent)
}

func TestCompose_HTMLOnly(t *testing.T) {
	t.Parallel()

	raw, err := mailer.Compose(&mailer.Email{
		From:    mailer.Recipient("Ada Lovelace", "ada@example.com"),
		To:      []string{"grace@example.com"},
		Subject: "Café meeting",
		HTML:    "<p>Hi Grace</p>",
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Café meeting", subject)
	assert.Equal(t, `"Ada Lovelace" <ada@example.com>`, msg.Header.Get("From"))
	assert.Equal(t, "<grace@example.com>", msg.Header.Get("To"))
	assert.True(t, strings.HasSuffix(msg.Header.Get("Message-ID"), "@example.com>"))

	parts := readParts(t, msg.Header.Get("Content-Type"), msg.Body)
	require.Len(t, parts, 1)
	assert.Equal(t, "text/html; charset=utf-8", parts[0].contentType)
	assert.Equal(t, "<p>Hi Grace</p>", parts[0].body)
}

func TestCompose_InlineImageAndAttachment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	image := filepath.Join(dir, "Acme_Ada.png")
	resume := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(image, []byte("png-bytes"), 0o600))
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0o600))

	raw, err := mailer.Compose(&mailer.Email{
		From:    "ada@example.com",
		To:      []string{"grace@example.com"},
		Subject: "Hello",
		HTML:    `<img src="cid:my_dynamic_image">`,
		Text:    "Hello Grace",
		Attachments: []mailer.Attachment{
			mailer.InlineAttachment(image, "my_dynamic_image"),
			mailer.FileAttachment(resume),
		},
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	mixed := readParts(t, msg.Header.Get("Content-Type"), msg.Body)
	require.Len(t, mixed, 2)
	assert.True(t, strings.HasPrefix(mixed[0].contentType, "multipart/alternative"))
	assert.Equal(t, "application/pdf", mixed[1].contentType)
	assert.Equal(t, "%PDF-1.4", mixed[1].body)
	assert.Contains(t, mixed[1].disposition, `filename=resume.pdf`)

	alt := readParts(t, mixed[0].contentType, strings.NewReader(mixed[0].raw))
	require.Len(t, alt, 2)
	assert.Equal(t, "Hello Grace", alt[0].body)
	assert.True(t, strings.HasPrefix(alt[1].contentType, "multipart/related"))

	related := readParts(t, alt[1].contentType, strings.NewReader(alt[1].raw))
	require.Len(t, related, 2)
	assert.Equal(t, `<img src="cid:my_dynamic_image">`, related[0].body)
	assert.Equal(t, "<my_dynamic_image>", related[1].contentID)
	assert.Equal(t, "image/png", related[1].contentType)
	assert.Equal(t, "png-bytes", related[1].body)
	assert.True(t, strings.HasPrefix(related[1].disposition, "inline"))
}

func TestCompose_UnreadableAttachment(t *testing.T) {
	t.Parallel()

	_, err := mailer.Compose(&mailer.Email{
		To:          []string{"grace@example.com"},
		Subject:     "Hello",
		HTML:        "<p>x</p>",
		Attachments: []mailer.Attachment{mailer.FileAttachment(filepath.Join(t.TempDir(), "gone.pdf"))},
	})
	require.ErrorIs(t, err, mailer.ErrAttachmentUnreadable)
}

func TestAddressOnly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ada@example.com", mailer.AddressOnly("Ada Lovelace <ada@example.com>"))
	assert.Equal(t, "ada@example.com", mailer.AddressOnly(" ada@example.com "))
}

type part struct {
	contentType string
	contentID   string
	disposition string
	body        string // decoded leaf content
	raw         string // undecoded content, for nested multiparts
}

// readParts splits a multipart body one level deep. multipart.Reader decodes
// quoted-printable transparently; base64 parts are decoded here.
func readParts(t *testing.T, contentType string, body io.Reader) []part {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	if !strings.HasPrefix(mediaType, "multipart/") {
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		return []part{{contentType: contentType, body: decodeQP(t, data)}}
	}

	var out []part
	r := multipart.NewReader(body, params["boundary"])
	for {
		p, err := r.NextRawPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)

		pt := part{
			contentType: p.Header.Get("Content-Type"),
			contentID:   p.Header.Get("Content-ID"),
			disposition: p.Header.Get("Content-Disposition"),
			raw:         string(data),
		}
		switch p.Header.Get("Content-Transfer-Encoding") {
		case "base64":
			pt.body = decodeBase64(t, data)
		case "quoted-printable":
			pt.body = decodeQP(t, data)
		}
		out = append(out, pt)
	}
	return out
}
