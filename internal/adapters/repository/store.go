// Package repository persists match tables into a queryable store.
package repository

import (
	"context"

	"github.com/okian/iplstats/internal/domain/model"
)

// Store saves and reads back named match tables.
type Store interface {
	// Replace drops any table called name and stores t in its place.
	// It returns the number of rows written.
	Replace(ctx context.Context, name string, t *model.Table) (int64, error)

	// Count returns the number of rows stored under name.
	// Returns ErrNotFound if the table does not exist.
	Count(ctx context.Context, name string) (int, error)

	// Columns returns the stored column names in order.
	// Returns ErrNotFound if the table does not exist.
	Columns(ctx context.Context, name string) ([]string, error)

	// Load reads a stored table back into memory.
	Load(ctx context.Context, name string) (*model.Table, error)

	Close() error
}
