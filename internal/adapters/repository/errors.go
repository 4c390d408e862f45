package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("table not found")
	ErrInvalidTable = errors.New("invalid table name")
	ErrPersist      = errors.New("persist table failed")
)
