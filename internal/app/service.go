// Package service wires the loader, derivations, store and report sinks into
// the operations the menu drives.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/iplstats/internal/adapters/chart"
	"github.com/okian/iplstats/internal/adapters/loader"
	"github.com/okian/iplstats/internal/adapters/repository"
	"github.com/okian/iplstats/internal/domain/derive"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/report"
	"github.com/okian/iplstats/pkg/logger"
	"github.com/okian/iplstats/pkg/metrics"
)

const defaultTableName = "matches"

// Service holds the loaded table for one session.
type Service struct {
	// mu guards table and stats, which a repeated Bootstrap replaces.
	mu sync.RWMutex

	// Collaborators
	sink   Sink
	store  repository.Store
	logger logger.Logger

	// Configuration
	tableName  string
	sessionID  string
	loaderOpts []loader.Option
	derivers   []derive.Deriver

	// State
	table *model.Table
	stats loader.Stats
}

// New constructs a Service. Without WithStore the table is not persisted.
func New(opts ...Option) *Service {
	s := &Service{
		tableName: defaultTableName,
		derivers:  derive.Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionID == "" {
		s.sessionID = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.With(logger.String("session_id", s.sessionID))
	return s
}

// SessionID returns the id attached to every log line of the session.
func (s *Service) SessionID() string { return s.sessionID }

// Bootstrap loads path, applies the derivations and persists the result
// when a store is configured. A load or persistence failure is returned and
// leaves any previously loaded table in place.
func (s *Service) Bootstrap(ctx context.Context, path string) error {
	start := time.Now()
	s.logger.Info(ctx, "loading matches", logger.String("path", path))

	t, stats, err := loader.LoadFile(ctx, path, s.loaderOpts...)
	if err != nil {
		s.logger.Error(ctx, "loading matches failed", logger.String("path", path), logger.Error(err))
		return fmt.Errorf("bootstrap: %w", err)
	}
	t = derive.Apply(t, s.derivers...)

	elapsed := time.Since(start)
	metrics.RecordLoadDuration(elapsed.Seconds())
	metrics.UpdateTableRecords(t.Len())
	metrics.UpdateUnparsedDates(stats.UnparsedDates)
	metrics.UpdateUnparsedNumbers(stats.UnparsedNumbers)

	if len(stats.DroppedColumns) > 0 {
		s.logger.Warn(ctx, "input columns shadow derived or schema columns and were ignored",
			logger.Any("columns", stats.DroppedColumns),
		)
	}
	if stats.UnparsedDates > 0 {
		s.logger.Warn(ctx, "some dates could not be parsed and were left empty",
			logger.Int("count", stats.UnparsedDates),
		)
	}
	if stats.UnparsedNumbers > 0 {
		s.logger.Warn(ctx, "some numeric cells could not be parsed and were left empty",
			logger.Int("count", stats.UnparsedNumbers),
		)
	}
	s.logger.Info(ctx, "matches loaded",
		logger.Int("records", t.Len()),
		logger.Any("extra_columns", stats.ExtraColumns),
		logger.Duration("took", elapsed),
	)

	if s.store != nil {
		n, err := s.store.Replace(ctx, s.tableName, t)
		if err != nil {
			s.logger.Error(ctx, "persisting matches failed", logger.String("table", s.tableName), logger.Error(err))
			return fmt.Errorf("bootstrap: %w", err)
		}
		metrics.UpdatePersistedRows(n)
		s.logger.Info(ctx, "matches persisted",
			logger.String("table", s.tableName),
			logger.Int64("rows", n),
		)
	}

	s.mu.Lock()
	s.table = t
	s.stats = stats
	s.mu.Unlock()
	return nil
}

// Table returns the loaded table, or nil before Bootstrap succeeded.
func (s *Service) Table() *model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Stats returns the statistics of the last successful load.
func (s *Service) Stats() loader.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// RunReport computes report id over the loaded table and publishes it.
// It returns the artifact path reported by the sink.
func (s *Service) RunReport(ctx context.Context, id report.ID) (string, error) {
	def, ok := report.Lookup(id)
	if !ok {
		metrics.RecordInvalidSelection()
		return "", fmt.Errorf("%w: %d", report.ErrInvalidSelection, int(id))
	}
	t := s.Table()
	if t == nil {
		return "", ErrNotLoaded
	}
	if s.sink == nil {
		return "", ErrNoSink
	}

	start := time.Now()
	path, err := s.run(ctx, def, t)
	elapsed := time.Since(start)
	metrics.RecordReportDuration(def.OutputName, elapsed.Seconds())

	if err != nil {
		metrics.RecordReportRun(def.OutputName, metrics.StatusError)
		if errors.Is(err, chart.ErrRender) || errors.Is(err, chart.ErrEmptyResult) {
			metrics.RecordRenderFailure()
		}
		s.logger.Warn(ctx, "report failed",
			logger.String("report", def.OutputName),
			logger.Error(err),
		)
		return "", err
	}

	metrics.RecordReportRun(def.OutputName, metrics.StatusOK)
	s.logger.Info(ctx, "report published",
		logger.String("report", def.OutputName),
		logger.String("path", path),
		logger.Duration("took", elapsed),
	)
	return path, nil
}

func (s *Service) run(ctx context.Context, def report.Definition, t *model.Table) (string, error) {
	res, err := report.Run(def.ID, t)
	if err != nil {
		return "", err
	}
	return s.sink.Publish(ctx, def, res)
}

// Close releases the store, if any.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
