package campaign

import "errors"

var (
	// ErrLoadRecipients wraps a failure to read the recipients sheet. Fatal.
	ErrLoadRecipients = errors.New("campaign: failed to load recipients")

	// ErrOpenSession wraps a failure to dial the mail transport. Fatal.
	ErrOpenSession = errors.New("campaign: failed to open mail session")

	// ErrPersist wraps a failure to save the updated recipients sheet.
	ErrPersist = errors.New("campaign: failed to save recipients")

	// ErrDeliveryFailed indicates at least one row ended in StatusFailed.
	ErrDeliveryFailed = errors.New("campaign: one or more emails failed to send")
)
