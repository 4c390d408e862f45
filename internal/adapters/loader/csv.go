// Package loader reads a match data file into a model.Table.
//
// The file is parsed with gota into string columns; each known column is
// then coerced on its own. Values that do not parse become absent instead of
// failing the load, and are tallied in Stats.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/unicode/norm"

	"github.com/okian/iplstats/internal/domain/model"
)

// Stats describes a completed load.
type Stats struct {
	Rows            int
	UnparsedDates   int
	UnparsedNumbers int
	ExtraColumns    []string

	// DroppedColumns are input headers that shadow a schema column (an input
	// Season, or Date when another column is the date) and were ignored.
	DroppedColumns []string
}

// LoadFile opens path and reads it with Read.
func LoadFile(ctx context.Context, path string, opts ...Option) (*model.Table, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Read(ctx, f, opts...)
}

// Read parses a delimited file with a header row.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	o := newOptions(opts...)

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithDelimiter(o.delimiter),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(gotaNullLiterals(o.nullLiterals)),
	)
	if df.Err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrLoad, df.Err)
	}

	names := df.Names()
	required := requiredColumns(o.dateColumn)
	var missing []string
	for _, col := range required {
		if !slices.Contains(names, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, Stats{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	c := &coercer{opts: o}
	stats := Stats{Rows: df.Nrow()}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if slices.Contains(required, name) {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup || model.IsSchemaColumn(name) || strings.EqualFold(name, o.dateColumn) {
			stats.DroppedColumns = append(stats.DroppedColumns, name)
			continue
		}
		seen[key] = struct{}{}
		stats.ExtraColumns = append(stats.ExtraColumns, name)
	}

	cols := make(map[string]series.Series, len(names))
	for _, name := range names {
		cols[name] = df.Col(name)
	}
	cell := func(col string, i int) (string, bool) {
		e := cols[col].Elem(i)
		if e.IsNA() {
			return "", false
		}
		return c.text(e.String())
	}

	matches := make([]model.Match, stats.Rows)
	for i := range matches {
		m := &matches[i]
		m.Date = c.date(cell(o.dateColumn, i))
		m.Teams = c.str(cell(model.ColTeams, i))
		m.TossWinner = c.str(cell(model.ColTossWinner, i))
		m.MatchWinner = c.str(cell(model.ColMatchWinner, i))
		m.PlayerOfMatch = c.str(cell(model.ColPlayerOfMatch, i))
		m.Venue = c.str(cell(model.ColVenue, i))
		m.WinType = c.str(cell(model.ColWinType, i))
		m.WinMargin = c.number(cell(model.ColWinMargin, i))
		m.PowerplayScores = c.number(cell(model.ColPowerplayScores, i))
		m.DeathOversScores = c.number(cell(model.ColDeathOversScores, i))
		if len(stats.ExtraColumns) > 0 {
			m.Extra = make(map[string]string, len(stats.ExtraColumns))
			for _, col := range stats.ExtraColumns {
				if v, ok := cell(col, i); ok {
					m.Extra[col] = v
				}
			}
		}
	}
	stats.UnparsedDates = c.badDates
	stats.UnparsedNumbers = c.badNumbers

	return model.NewTable(matches, stats.ExtraColumns), stats, nil
}

// requiredColumns is the schema with the date column swapped for the
// designated one.
func requiredColumns(dateColumn string) []string {
	out := slices.Clone(model.RequiredColumns)
	for i, col := range out {
		if col == model.ColDate {
			out[i] = dateColumn
		}
	}
	return out
}

// gotaNullLiterals expands the literals into the exact-case variants gota
// compares against.
func gotaNullLiterals(literals []string) []string {
	out := make([]string, 0, len(literals)*3)
	for _, l := range literals {
		out = append(out, l, strings.ToUpper(l))
		if l != "" {
			out = append(out, strings.ToUpper(l[:1])+l[1:])
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// coercer converts raw cells and counts the ones it had to drop.
type coercer struct {
	opts       options
	badDates   int
	badNumbers int
}

// text trims and NFC-normalizes a raw cell; null literals are absent.
func (c *coercer) text(raw string) (string, bool) {
	s := norm.NFC.String(strings.TrimSpace(raw))
	for _, l := range c.opts.nullLiterals {
		if strings.EqualFold(s, l) {
			return "", false
		}
	}
	return s, true
}

func (c *coercer) str(s string, ok bool) model.Optional[string] {
	if !ok {
		return model.None[string]()
	}
	return model.Some(s)
}

func (c *coercer) date(s string, ok bool) model.Optional[time.Time] {
	if !ok {
		return model.None[time.Time]()
	}
	for _, layout := range c.opts.dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Some(t)
		}
	}
	c.badDates++
	return model.None[time.Time]()
}

func (c *coercer) number(s string, ok bool) model.Optional[float64] {
	if !ok {
		return model.None[float64]()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.badNumbers++
		return model.None[float64]()
	}
	return model.Some(v)
}

// IsLoadError reports whether err is fatal to startup.
func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad) || errors.Is(err, ErrMissingColumn)
}
