package chart

import "errors"

// Sentinel kinds for render failures.
var (
	ErrRender      = errors.New("render chart failed")
	ErrEmptyResult = errors.New("nothing to plot")
)
