package report

import "github.com/okian/iplstats/internal/domain/model"

// Result is the summary produced by a report. The set of implementations is
// closed: LabeledCounts, GroupedTrend, ScalarPair and Distribution.
type Result interface {
	// Empty reports whether the result has nothing to draw.
	Empty() bool
	isResult()
}

// Entry is one labeled value. Count is the raw number of records behind the
// entry; Value is what gets plotted (the count, a percentage or a ratio).
type Entry struct {
	Label string
	Count int
	Value float64
}

// LabeledCounts maps category labels to values, in display order.
type LabeledCounts struct {
	Entries []Entry
}

func (r LabeledCounts) Empty() bool { return len(r.Entries) == 0 }
func (LabeledCounts) isResult()     {}

// Labels returns the entry labels in order.
func (r LabeledCounts) Labels() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Label
	}
	return out
}

// Values returns the entry values in order.
func (r LabeledCounts) Values() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Value
	}
	return out
}

// GroupedTrend is a pivot table: one row per Rows key, one column per Columns
// key. Values[i][j] is the value for Rows[i] and Columns[j]; missing
// combinations hold 0.
type GroupedTrend struct {
	Rows    []string
	Columns []string
	Values  [][]float64
}

func (r GroupedTrend) Empty() bool { return len(r.Rows) == 0 || len(r.Columns) == 0 }
func (GroupedTrend) isResult()     {}

// Column returns the values of column j across all rows.
func (r GroupedTrend) Column(j int) []float64 {
	out := make([]float64, len(r.Rows))
	for i := range r.Rows {
		out[i] = r.Values[i][j]
	}
	return out
}

// NamedScalar is a labeled value that may be undefined.
type NamedScalar struct {
	Name  string
	Value model.Optional[float64]
}

// ScalarPair holds two named scalars.
type ScalarPair struct {
	First  NamedScalar
	Second NamedScalar
}

func (r ScalarPair) Empty() bool { return !r.First.Value.Valid && !r.Second.Value.Valid }
func (ScalarPair) isResult()     {}

// Bin is a histogram bucket covering [Lower, Upper); the last bin of a
// distribution also includes Upper.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Distribution holds the raw values of one column and their histogram.
type Distribution struct {
	Values []float64
	Bins   []Bin
}

func (r Distribution) Empty() bool { return len(r.Values) == 0 }
func (Distribution) isResult()     {}
