package mailer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers     map[string]string // Custom headers
	Subject     string            // Email subject
	HTML        string            // HTML body content
	Text        string            // Plain text alternative
	From        string            // Sender address, "Name <email>" allowed
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	CC          []string          // Carbon copy recipients
	BCC         []string          // Blind carbon copy recipients
	Attachments []Attachment      // File attachments and inline parts
}

// Validate reports whether the email carries the minimum a transport needs.
func (e *Email) Validate() error {
	if len(e.To) == 0 || e.To[0] == "" {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.HTML == "" {
		return ErrNoContent
	}
	return nil
}

// Inline returns the attachments referenced from the body by content-id.
func (e *Email) Inline() []Attachment {
	var out []Attachment
	for _, a := range e.Attachments {
		if a.Inline {
			out = append(out, a)
		}
	}
	return out
}

// Regular returns the attachments that are not inline.
func (e *Email) Regular() []Attachment {
	var out []Attachment
	for _, a := range e.Attachments {
		if !a.Inline {
			out = append(out, a)
		}
	}
	return out
}

// Attachment represents an email attachment.
// Content takes precedence over Path; Path is read lazily by the transport.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Content-ID for inline attachments
	Path        string // Source file on disk
	Content     []byte // Raw file content
	Inline      bool   // Referenced from the HTML body via cid:
}

// FileAttachment builds an attachment for a file on disk.
// The content type is guessed from the extension.
func FileAttachment(path string) Attachment {
	return Attachment{
		Filename:    filepath.Base(path),
		ContentType: DetectContentType(path),
		Path:        path,
	}
}

// InlineAttachment builds an inline attachment referenced by contentID.
func InlineAttachment(path, contentID string) Attachment {
	a := FileAttachment(path)
	a.ContentID = contentID
	a.Inline = true
	return a
}

// Bytes returns the attachment content, reading Path when Content is empty.
func (a Attachment) Bytes() ([]byte, error) {
	if len(a.Content) > 0 {
		return a.Content, nil
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAttachment, a.Filename)
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAttachmentUnreadable, a.Path, err)
	}
	return data, nil
}
