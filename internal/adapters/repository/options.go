package repository

import "time"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithPingTimeout bounds the connectivity check done by Open.
func WithPingTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.pingTimeout = d
		}
	}
}

// WithDateLayout sets the text layout dates are stored in.
func WithDateLayout(layout string) Option {
	return func(s *SQLiteStore) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}
