package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnknownReport    = errors.New("unknown report")
)
