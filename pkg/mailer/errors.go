package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMalformedTemplate indicates the template does not split into subject and body.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrBindFailed indicates placeholder substitution failed.
	ErrBindFailed = errors.New("failed to bind placeholders")

	// ErrUnresolvedPlaceholder indicates a pattern references an unknown placeholder.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrMalformedPattern indicates a stray brace in a pattern.
	ErrMalformedPattern = errors.New("malformed placeholder pattern")

	// ErrRenderFailed indicates markdown rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrAuthFailed indicates the transport rejected the credentials.
	ErrAuthFailed = errors.New("mail transport authentication failed")

	// ErrConnectFailed indicates the transport could not be reached.
	ErrConnectFailed = errors.New("mail transport connection failed")

	// ErrEmptyAttachment indicates an attachment has neither content nor path.
	ErrEmptyAttachment = errors.New("attachment has no content")

	// ErrAttachmentUnreadable indicates an attachment file could not be read.
	ErrAttachmentUnreadable = errors.New("attachment unreadable")
)
