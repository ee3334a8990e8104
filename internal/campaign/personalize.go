package campaign

import (
	"fmt"
	"html"
	"strings"

	"github.com/dmitrymomot/outreach/pkg/mailer"
	"github.com/dmitrymomot/outreach/pkg/recipient"
	"github.com/dmitrymomot/outreach/pkg/sanitizer"
)

// InlineImageContentID references the per-recipient picture from the body.
// The same value is handed to the transport as the attachment content-id.
const InlineImageContentID = "my_dynamic_image"

// fallbackFirstName greets recipients whose name is unknown.
const fallbackFirstName = "there"

// Identity is the sender's static personal information.
type Identity struct {
	Name      string `env:"SENDER_NAME"`
	Email     string `env:"SENDER_EMAIL,required,notEmpty"`
	Phone     string `env:"SENDER_PHONE"`
	CityState string `env:"SENDER_CITY_STATE"`
}

// Message is a rendered email for one recipient.
type Message struct {
	Subject   string
	HTML      string
	Text      string
	ImagePath string // empty when no inline picture applies
}

// Personalizer binds recipient data into templates.
type Personalizer struct {
	identity Identity
	images   ImageResolver
}

// NewPersonalizer creates a personalizer for the given sender.
func NewPersonalizer(identity Identity, images ImageResolver) *Personalizer {
	return &Personalizer{identity: identity, images: images}
}

// Placeholders assembles the substitution values for a recipient together
// with the resolved picture path.
func (p *Personalizer) Placeholders(rec recipient.Record) (mailer.Placeholders, string) {
	imagePath, ok := p.images.Resolve(rec.TemplateFile, rec.Company, rec.Name)

	imageTag := ""
	if ok {
		imageTag = fmt.Sprintf(
			`<img src="cid:%s" alt="%s Meeting Summary" style="width:100%%; max-width:600px;">`,
			InlineImageContentID, html.EscapeString(rec.Company),
		)
	}

	return mailer.Placeholders{
		"name":                p.identity.Name,
		"first_name":          FirstName(rec.Name),
		"company":             rec.Company,
		"position":            rec.Position,
		"value_prop_sentence": ValueProposition(rec.Framework, rec.Strength, rec.AudienceValue),
		"your_name":           p.identity.Name,
		"your_phone_number":   p.identity.Phone,
		"your_email":          p.identity.Email,
		"your_city_and_state": p.identity.CityState,
		"dynamic_image_tag":   imageTag,
	}, imagePath
}

// Personalize renders tmpl for rec. Any placeholder the template references
// but the set does not define fails with mailer.ErrBindFailed.
func (p *Personalizer) Personalize(tmpl *mailer.Template, rec recipient.Record) (*Message, error) {
	values, imagePath := p.Placeholders(rec)

	subject, err := mailer.Bind(tmpl.Subject, values)
	if err != nil {
		return nil, fmt.Errorf("subject of %s: %w", tmpl.Name, err)
	}
	body, err := mailer.Bind(tmpl.Body, values)
	if err != nil {
		return nil, fmt.Errorf("body of %s: %w", tmpl.Name, err)
	}

	if tmpl.Format == mailer.FormatMarkdown {
		if body, err = mailer.RenderMarkdown(body); err != nil {
			return nil, fmt.Errorf("body of %s: %w", tmpl.Name, err)
		}
	}

	return &Message{
		Subject:   subject,
		HTML:      body,
		Text:      sanitizer.PlainText(body),
		ImagePath: imagePath,
	}, nil
}

// FirstName returns the first word of a full name, or "there".
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fallbackFirstName
	}
	return fields[0]
}
