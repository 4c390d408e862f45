package service

import (
	"github.com/okian/iplstats/internal/adapters/loader"
	"github.com/okian/iplstats/internal/adapters/repository"
	"github.com/okian/iplstats/internal/domain/derive"
	"github.com/okian/iplstats/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSink sets where report results are published.
func WithSink(sink Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithStore enables persistence of the loaded table.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTableName sets the table the matches are stored under.
func WithTableName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.tableName = name
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.sessionID = id
		}
	}
}

// WithLoaderOptions passes options to the CSV loader.
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(s *Service) {
		s.loaderOpts = append(s.loaderOpts, opts...)
	}
}

// WithDerivers replaces the derivations applied after loading.
func WithDerivers(derivers ...derive.Deriver) Option {
	return func(s *Service) {
		s.derivers = derivers
	}
}
