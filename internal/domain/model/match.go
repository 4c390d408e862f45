// Package model contains domain models passed between layers.
package model

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"time"
)

// Column names of the match table, as found in the input header.
const (
	ColDate             = "Date"
	ColTeams            = "Teams"
	ColTossWinner       = "Toss_Winner"
	ColMatchWinner      = "Match_Winner"
	ColPlayerOfMatch    = "Player_of_Match"
	ColVenue            = "Venue"
	ColWinType          = "Win_Type"
	ColWinMargin        = "Win_Margin"
	ColPowerplayScores  = "Powerplay_Scores"
	ColDeathOversScores = "Death_Overs_Scores"
	ColSeason           = "Season"
)

// TeamsSeparator joins the two team names in the Teams field.
const TeamsSeparator = " vs "

// RequiredColumns lists the input columns every data file must carry.
// Season is derived and therefore not required.
var RequiredColumns = []string{
	ColDate,
	ColTeams,
	ColTossWinner,
	ColMatchWinner,
	ColPlayerOfMatch,
	ColVenue,
	ColWinType,
	ColWinMargin,
	ColPowerplayScores,
	ColDeathOversScores,
}

// IsSchemaColumn reports whether name is a schema column or Season.
// Names compare case-insensitively, as SQLite identifiers do.
func IsSchemaColumn(name string) bool {
	if strings.EqualFold(name, ColSeason) {
		return true
	}
	for _, col := range RequiredColumns {
		if strings.EqualFold(name, col) {
			return true
		}
	}
	return false
}

// Match is one historical match record. Every field may be absent.
type Match struct {
	Date             Optional[time.Time]
	Teams            Optional[string] // "A vs B"
	TossWinner       Optional[string]
	MatchWinner      Optional[string]
	PlayerOfMatch    Optional[string]
	Venue            Optional[string]
	WinType          Optional[string]  // "runs" or "wickets"
	WinMargin        Optional[float64] // unit depends on WinType
	PowerplayScores  Optional[float64]
	DeathOversScores Optional[float64]
	Season           Optional[int] // derived from Date

	// Extra holds input columns outside the known schema, keyed by header name.
	Extra map[string]string
}

// clone returns a copy that shares no mutable state with m.
func (m Match) clone() Match {
	if m.Extra != nil {
		m.Extra = maps.Clone(m.Extra)
	}
	return m
}

// Table is an ordered, read-only sequence of matches. Build it once with
// NewTable; derivations produce new tables instead of editing this one.
type Table struct {
	matches      []Match
	extraColumns []string
}

// NewTable copies matches into a new Table. extraColumns names the
// non-schema columns carried in Match.Extra, in input order. Names that
// collide with the schema, or repeat an earlier extra ignoring case, are
// left out so Columns never lists a name twice.
func NewTable(matches []Match, extraColumns []string) *Table {
	t := &Table{
		matches:      make([]Match, len(matches)),
		extraColumns: distinctExtras(extraColumns),
	}
	for i, m := range matches {
		t.matches[i] = m.clone()
	}
	return t
}

func distinctExtras(names []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup || IsSchemaColumn(name) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.matches)
}

// At returns a copy of the i-th record.
func (t *Table) At(i int) Match {
	return t.matches[i].clone()
}

// All iterates over copies of the records in order.
func (t *Table) All() iter.Seq2[int, Match] {
	return func(yield func(int, Match) bool) {
		if t == nil {
			return
		}
		for i := range t.matches {
			if !yield(i, t.matches[i].clone()) {
				return
			}
		}
	}
}

// ExtraColumns returns the non-schema column names in input order.
func (t *Table) ExtraColumns() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.extraColumns)
}

// Columns returns the full column set: schema columns, Season, then extras.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(RequiredColumns)+1+len(t.ExtraColumns()))
	cols = append(cols, RequiredColumns...)
	cols = append(cols, ColSeason)
	return append(cols, t.ExtraColumns()...)
}

// Map returns a new table with fn applied to a copy of every record.
func (t *Table) Map(fn func(Match) Match) *Table {
	out := &Table{
		matches:      make([]Match, t.Len()),
		extraColumns: t.ExtraColumns(),
	}
	for i, m := range t.All() {
		out.matches[i] = fn(m).clone()
	}
	return out
}
