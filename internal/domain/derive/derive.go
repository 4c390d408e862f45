// Package derive computes calculated columns from a loaded match table.
package derive

import "github.com/okian/iplstats/internal/domain/model"

// Deriver turns a table into a new table carrying additional fields.
type Deriver func(*model.Table) *model.Table

// Season returns a new table whose records carry the year of Date as Season.
// Records without a Date get an absent Season.
func Season(t *model.Table) *model.Table {
	return t.Map(func(m model.Match) model.Match {
		if d, ok := m.Date.Get(); ok {
			m.Season = model.Some(d.Year())
		} else {
			m.Season = model.None[int]()
		}
		return m
	})
}

// Apply runs derivers in order. With none it returns t unchanged.
func Apply(t *model.Table, derivers ...Deriver) *model.Table {
	for _, d := range derivers {
		t = d(t)
	}
	return t
}

// Defaults is the derivation chain applied after load.
func Defaults() []Deriver {
	return []Deriver{Season}
}
