package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotLoaded = errors.New("match table not loaded")
	ErrNoSink    = errors.New("no report sink configured")
)
