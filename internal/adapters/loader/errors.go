package loader

import "errors"

// Sentinel kinds for loader errors. Both are fatal at startup.
var (
	ErrLoad          = errors.New("load data file failed")
	ErrMissingColumn = errors.New("required column missing")
)
