package service

import (
	"context"
	"errors"

	"github.com/okian/iplstats/internal/domain/report"
)

// Sink receives computed reports. Publish returns the path of the written
// artifact, or "" when the sink produces none.
type Sink interface {
	Publish(ctx context.Context, def report.Definition, res report.Result) (string, error)
}

// MultiSink publishes to every sink in order. It returns the first non-empty
// path and the joined errors of all sinks.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(ctx context.Context, def report.Definition, res report.Result) (string, error) {
	var (
		path string
		errs []error
	)
	for _, sink := range m {
		p, err := sink.Publish(ctx, def, res)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if path == "" {
			path = p
		}
	}
	return path, errors.Join(errs...)
}
