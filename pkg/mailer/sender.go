package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message.
	// The Email must have To, Subject, and HTML already set.
	// Returns an error if delivery fails.
	Send(ctx context.Context, email *Email) error
}

// Session is an open, exclusively owned connection to a mail transport.
// A session is reused for every message of a run and closed exactly once.
type Session interface {
	Sender

	// Close releases the underlying connection.
	Close() error
}

// Dialer opens transport sessions.
// Implementations return ErrAuthFailed or ErrConnectFailed so callers can
// tell credential problems from network problems.
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Session, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(ctx context.Context) (Session, error) {
	return f(ctx)
}

// NopCloser turns a Sender into a Session whose Close does nothing.
// Useful for stateless API providers.
func NopCloser(s Sender) Session {
	return nopCloser{s}
}

type nopCloser struct {
	Sender
}

func (nopCloser) Close() error { return nil }
