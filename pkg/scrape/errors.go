package scrape

import "errors"

var (
	// ErrUnknownProfile indicates no embedded profile has the requested name.
	ErrUnknownProfile = errors.New("scrape: unknown profile")

	// ErrInvalidProfile indicates a profile definition cannot be used.
	ErrInvalidProfile = errors.New("scrape: invalid profile")

	// ErrParse indicates the page could not be parsed as HTML.
	ErrParse = errors.New("scrape: failed to parse page")

	// ErrContainerNotFound indicates the profile's container selector matched nothing.
	ErrContainerNotFound = errors.New("scrape: container not found")
)
