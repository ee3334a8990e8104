package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// base64LineLength is the RFC 2045 limit for encoded lines.
const base64LineLength = 76

// Compose renders email as an RFC 5322 message with MIME parts:
// multipart/mixed{ multipart/alternative{ text, multipart/related{ html, inline... } }, attachments... }.
// Empty branches collapse to their single child.
func Compose(email *Email) ([]byte, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mixed := multipart.NewWriter(&body)

	content, contentType, err := composeContent(email)
	if err != nil {
		return nil, err
	}
	if err := writePart(mixed, textproto.MIMEHeader{"Content-Type": {contentType}}, content); err != nil {
		return nil, err
	}

	for _, a := range email.Regular() {
		if err := writeAttachment(mixed, a); err != nil {
			return nil, err
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	writeHeaders(&msg, email, "multipart/mixed; boundary="+mixed.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// composeContent builds the body part: HTML with its inline images, plus the
// plain-text alternative when present.
func composeContent(email *Email) ([]byte, string, error) {
	htmlPart, htmlType, err := composeHTML(email)
	if err != nil {
		return nil, "", err
	}
	if email.Text == "" {
		return htmlPart, htmlType, nil
	}

	var buf bytes.Buffer
	alt := multipart.NewWriter(&buf)
	if err := writeQuotedPrintable(alt, "text/plain; charset=utf-8", email.Text); err != nil {
		return nil, "", err
	}
	if err := writePart(alt, textproto.MIMEHeader{"Content-Type": {htmlType}}, htmlPart); err != nil {
		return nil, "", err
	}
	if err := alt.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "multipart/alternative; boundary=" + alt.Boundary(), nil
}

func composeHTML(email *Email) ([]byte, string, error) {
	inline := email.Inline()

	var buf bytes.Buffer
	if len(inline) == 0 {
		if err := encodeQuotedPrintable(&buf, email.HTML); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/html; charset=utf-8", nil
	}

	related := multipart.NewWriter(&buf)
	if err := writeQuotedPrintable(related, "text/html; charset=utf-8", email.HTML); err != nil {
		return nil, "", err
	}
	for _, a := range inline {
		if err := writeAttachment(related, a); err != nil {
			return nil, "", err
		}
	}
	if err := related.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "multipart/related; type=\"text/html\"; boundary=" + related.Boundary(), nil
}

// writePart writes an already-encoded child entity. Nested multipart content
// is written verbatim, leaf content is expected to be quoted-printable.
func writePart(w *multipart.Writer, header textproto.MIMEHeader, content []byte) error {
	if !strings.HasPrefix(header.Get("Content-Type"), "multipart/") {
		header.Set("Content-Transfer-Encoding", "quoted-printable")
	}
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(content)
	return err
}

func writeQuotedPrintable(w *multipart.Writer, contentType, text string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	return encodeQuotedPrintable(part, text)
}

func encodeQuotedPrintable(w io.Writer, text string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(text)); err != nil {
		return err
	}
	return qp.Close()
}

func writeAttachment(w *multipart.Writer, a Attachment) error {
	data, err := a.Bytes()
	if err != nil {
		return err
	}

	contentType := a.ContentType
	if contentType == "" {
		contentType = DetectContentType(a.Filename)
	}
	disposition := "attachment"
	if a.Inline {
		disposition = "inline"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": a.Filename}))
	if a.ContentID != "" {
		header.Set("Content-ID", "<"+a.ContentID+">")
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	return writeBase64(part, data)
}

func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > base64LineLength {
		if _, err := io.WriteString(w, encoded[:base64LineLength]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[base64LineLength:]
	}
	_, err := io.WriteString(w, encoded+"\r\n")
	return err
}

func writeHeaders(buf *bytes.Buffer, email *Email, contentType string) {
	h := func(k, v string) {
		if v != "" {
			fmt.Fprintf(buf, "%s: %s\r\n", k, v)
		}
	}

	h("From", formatAddress(email.From))
	h("To", formatAddressList(email.To))
	h("Cc", formatAddressList(email.CC))
	h("Reply-To", formatAddress(email.ReplyTo))
	h("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	h("Date", time.Now().Format(time.RFC1123Z))
	h("Message-ID", messageID(email.From))
	h("MIME-Version", "1.0")

	keys := make([]string, 0, len(email.Headers))
	for k := range email.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h(textproto.CanonicalMIMEHeaderKey(k), email.Headers[k])
	}

	h("Content-Type", contentType)
}

// AddressOnly extracts the bare address from "Name <email>" forms.
func AddressOnly(s string) string {
	if addr, err := mail.ParseAddress(s); err == nil {
		return addr.Address
	}
	return strings.TrimSpace(s)
}

func formatAddress(s string) string {
	if s == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(s); err == nil {
		return addr.String()
	}
	return s
}

func formatAddressList(list []string) string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != "" {
			out = append(out, formatAddress(s))
		}
	}
	return strings.Join(out, ", ")
}

func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndexByte(AddressOnly(from), '@'); at >= 0 {
		domain = AddressOnly(from)[at+1:]
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}
