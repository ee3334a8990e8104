// Package mailer holds the transport-neutral pieces of outgoing mail:
// message templates, placeholder binding, MIME composition and the
// Sender/Session/Dialer interfaces that transports implement.
//
// # Templates
//
// A template is a text file with a subject section and a body section
// separated by a single "---" line:
//
//	Subject: Following up on {company}
//	---
//	<p>Hi {first_name},</p>
//	<p>{value_prop_sentence}</p>
//
// The "Subject: " prefix is optional. Files ending in .md or .markdown are
// rendered to HTML with goldmark after binding, and may use call-to-action
// links:
//
//	[!cta|Book a call](https://cal.example.com/ada)
//
// TemplateStore reads templates from any fs.FS and caches parsed results.
//
// # Placeholders
//
// Bind replaces {name} with the matching value. Doubled braces ({{ and }})
// produce literal braces, which keeps inline CSS in HTML templates usable.
// Any placeholder without a value fails with ErrUnresolvedPlaceholder so a
// message is never sent half-filled.
//
// # Transports
//
// A Dialer opens a Session that is reused for a whole run and closed once:
//
//	session, err := dialer.Dial(ctx)
//	if err != nil {
//		return err // ErrAuthFailed or ErrConnectFailed
//	}
//	defer session.Close()
//
//	err = session.Send(ctx, &mailer.Email{
//		From:    mailer.Recipient("Ada Lovelace", "ada@example.com"),
//		To:      []string{"grace@example.com"},
//		Subject: "Hello",
//		HTML:    "<p>Hi</p>",
//	})
//
// Implementations live in subpackages: smtp (persistent SMTP session),
// resend (HTTP API) and devsender (writes .eml files for local runs).
// Compose produces the RFC 5322 bytes shared by smtp and devsender.
package mailer
