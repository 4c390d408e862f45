package menu

import (
	"io"

	"github.com/okian/iplstats/pkg/logger"
)

// Option applies a configuration option to the Shell.
type Option func(*Shell)

// WithInput sets the reader choices are read from.
func WithInput(r io.Reader) Option {
	return func(s *Shell) {
		if r != nil {
			s.in = r
		}
	}
}

// WithOutput sets the writer the menu is printed to.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets a custom logger for the shell.
func WithLogger(l logger.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}
