package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/iplstats/internal/domain/model"
)

// Default store settings.
const (
	defaultPingTimeout = 5 * time.Second
	defaultDateLayout  = "2006-01-02"
	timestampLayout    = "2006-01-02T15:04:05Z07:00"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// column kinds, mapped to SQLite affinities by sqlType.
const (
	kindText  = "text"
	kindFloat = "float"
	kindInt   = "int"
	kindDate  = "date"
)

var schemaKinds = map[string]string{
	model.ColDate:             kindDate,
	model.ColTeams:            kindText,
	model.ColTossWinner:       kindText,
	model.ColMatchWinner:      kindText,
	model.ColPlayerOfMatch:    kindText,
	model.ColVenue:            kindText,
	model.ColWinType:          kindText,
	model.ColWinMargin:        kindFloat,
	model.ColPowerplayScores:  kindFloat,
	model.ColDeathOversScores: kindFloat,
	model.ColSeason:           kindInt,
}

// sqlType maps a column kind to a SQLite column type. Dates are stored as
// ISO-8601 text.
func sqlType(kind string) string {
	switch kind {
	case kindInt:
		return "INTEGER"
	case kindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db          *sql.DB
	pingTimeout time.Duration
	dateLayout  string
}

// Open connects to the SQLite database at dsn (a file path or ":memory:").
func Open(ctx context.Context, dsn string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: sqlite: DSN must not be empty", ErrPersist)
	}
	s := &SQLiteStore{
		pingTimeout: defaultPingTimeout,
		dateLayout:  defaultDateLayout,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: open: %w", ErrPersist, err)
	}
	// One connection: ":memory:" databases are per connection and the
	// application never writes concurrently.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: sqlite: ping: %w", ErrPersist, err)
	}
	s.db = db
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Replace drops name and recreates it from t inside one transaction.
func (s *SQLiteStore) Replace(ctx context.Context, name string, t *model.Table) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	columns := t.Columns()

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col) + " " + sqlType(schemaKinds[col])
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: sqlite: begin tx: %w", ErrPersist, err)
	}
	defer func() { _ = tx.Rollback() }()

	ddl := []string{
		"DROP TABLE IF EXISTS " + quoteIdent(name),
		fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", ")),
	}
	for _, stmt := range ddl {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("%w: sqlite: exec %q: %w", ErrPersist, stmt, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(quoted, ", "), placeholders,
	))
	if err != nil {
		return 0, fmt.Errorf("%w: sqlite: prepare insert: %w", ErrPersist, err)
	}
	defer stmt.Close()

	extras := t.ExtraColumns()
	var inserted int64
	for _, m := range t.All() {
		if _, err := stmt.ExecContext(ctx, s.row(m, extras)...); err != nil {
			return inserted, fmt.Errorf("%w: sqlite: insert row %d: %w", ErrPersist, inserted, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: sqlite: commit: %w", ErrPersist, err)
	}
	return inserted, nil
}

// row renders m in Table.Columns order. Absent values become NULL.
func (s *SQLiteStore) row(m model.Match, extras []string) []any {
	out := []any{
		s.dateArg(m.Date),
		stringArg(m.Teams),
		stringArg(m.TossWinner),
		stringArg(m.MatchWinner),
		stringArg(m.PlayerOfMatch),
		stringArg(m.Venue),
		stringArg(m.WinType),
		floatArg(m.WinMargin),
		floatArg(m.PowerplayScores),
		floatArg(m.DeathOversScores),
		intArg(m.Season),
	}
	for _, col := range extras {
		if v, ok := m.Extra[col]; ok {
			out = append(out, v)
		} else {
			out = append(out, nil)
		}
	}
	return out
}

// Count returns the number of rows in name.
func (s *SQLiteStore) Count(ctx context.Context, name string) (int, error) {
	if _, err := s.Columns(ctx, name); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", name, err)
	}
	return n, nil
}

// Columns returns the column names of name in declaration order.
func (s *SQLiteStore) Columns(ctx context.Context, name string) ([]string, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", name)
	if err != nil {
		return nil, fmt.Errorf("sqlite: table info %s: %w", name, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("sqlite: scan column name: %w", err)
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: table info %s: %w", name, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return cols, nil
}

// Load reads name back into a table. Columns outside the match schema
// become extra columns.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*model.Table, error) {
	cols, err := s.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	var extras []string
	for _, col := range cols {
		if _, ok := schemaKinds[col]; !ok {
			extras = append(extras, col)
		}
	}

	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = quoteIdent(col)
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY rowid", strings.Join(quoted, ", "), quoteIdent(name),
	))
	if err != nil {
		return nil, fmt.Errorf("sqlite: select %s: %w", name, err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		m, err := s.decode(cols, cells)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: select %s: %w", name, err)
	}
	return model.NewTable(matches, extras), nil
}

// decode rebuilds a match from text cells.
func (s *SQLiteStore) decode(cols []string, cells []sql.NullString) (model.Match, error) {
	var m model.Match
	for i, col := range cols {
		cell := cells[i]
		if !cell.Valid {
			continue
		}
		v := cell.String
		switch col {
		case model.ColDate:
			d, err := s.parseDate(v)
			if err != nil {
				return m, fmt.Errorf("sqlite: decode %s: %w", col, err)
			}
			m.Date = model.Some(d)
		case model.ColTeams:
			m.Teams = model.Some(v)
		case model.ColTossWinner:
			m.TossWinner = model.Some(v)
		case model.ColMatchWinner:
			m.MatchWinner = model.Some(v)
		case model.ColPlayerOfMatch:
			m.PlayerOfMatch = model.Some(v)
		case model.ColVenue:
			m.Venue = model.Some(v)
		case model.ColWinType:
			m.WinType = model.Some(v)
		case model.ColWinMargin, model.ColPowerplayScores, model.ColDeathOversScores:
			var f float64
			if _, err := fmt.Sscan(v, &f); err != nil {
				return m, fmt.Errorf("sqlite: decode %s: %w", col, err)
			}
			setFloat(&m, col, f)
		case model.ColSeason:
			var n int
			if _, err := fmt.Sscan(v, &n); err != nil {
				return m, fmt.Errorf("sqlite: decode %s: %w", col, err)
			}
			m.Season = model.Some(n)
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[col] = v
		}
	}
	return m, nil
}

func setFloat(m *model.Match, col string, f float64) {
	switch col {
	case model.ColWinMargin:
		m.WinMargin = model.Some(f)
	case model.ColPowerplayScores:
		m.PowerplayScores = model.Some(f)
	case model.ColDeathOversScores:
		m.DeathOversScores = model.Some(f)
	}
}

func (s *SQLiteStore) parseDate(v string) (time.Time, error) {
	var errs []error
	for _, layout := range []string{s.dateLayout, timestampLayout} {
		d, err := time.Parse(layout, v)
		if err == nil {
			return d, nil
		}
		errs = append(errs, err)
	}
	return time.Time{}, errors.Join(errs...)
}

// dateArg stores midnight dates in the configured layout and anything with a
// clock component as a full timestamp.
func (s *SQLiteStore) dateArg(o model.Optional[time.Time]) any {
	d, ok := o.Get()
	if !ok {
		return nil
	}
	if d.Equal(d.Truncate(24 * time.Hour)) {
		return d.Format(s.dateLayout)
	}
	return d.Format(timestampLayout)
}

func stringArg(o model.Optional[string]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

func floatArg(o model.Optional[float64]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

func intArg(o model.Optional[int]) any {
	if v, ok := o.Get(); ok {
		return int64(v)
	}
	return nil
}

func validateName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var _ Store = (*SQLiteStore)(nil)

