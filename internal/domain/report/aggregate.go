package report

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/okian/iplstats/internal/domain/model"
)

// counter counts keys and remembers the order in which they were first seen.
type counter[K comparable] struct {
	order  []K
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter[K]) total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// countStrings counts the present values of field across the table.
func countStrings(t *model.Table, field func(model.Match) model.Optional[string]) *counter[string] {
	c := newCounter[string]()
	for _, m := range t.All() {
		if v, ok := field(m).Get(); ok {
			c.add(v)
		}
	}
	return c
}

// countEntries turns a string counter into entries in first-seen order,
// with Value equal to the count.
func countEntries(c *counter[string]) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		n := c.counts[k]
		entries = append(entries, Entry{Label: k, Count: n, Value: float64(n)})
	}
	return entries
}

// sortByValueDesc orders entries by Value, largest first. The sort is stable,
// so ties keep first-seen order.
func sortByValueDesc(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Value, a.Value)
	})
}

// topN returns at most n entries ordered by value descending.
func topN(entries []Entry, n int) []Entry {
	sortByValueDesc(entries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// splitTeams splits "A vs B" into its two team names. It reports false
// unless the value is present and yields exactly two non-empty names.
func splitTeams(teams model.Optional[string]) (string, string, bool) {
	s, ok := teams.Get()
	if !ok {
		return "", "", false
	}
	parts := strings.Split(s, model.TeamsSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// mean accumulates an arithmetic mean.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

// value is absent when nothing was added.
func (m mean) value() model.Optional[float64] {
	if m.n == 0 {
		return model.None[float64]()
	}
	return model.Some(m.sum / float64(m.n))
}

// histogram buckets values into n equal-width bins spanning [min, max].
// The last bin is closed on the right. When every value is equal the range
// is widened to [v-0.5, v+0.5].
func histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(n)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[n-1].Upper = hi

	for _, v := range values {
		idx := int(math.Floor((v - lo) / width))
		idx = min(max(idx, 0), n-1)
		bins[idx].Count++
	}
	return bins
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
