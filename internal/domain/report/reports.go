package report

import (
	"slices"
	"strconv"

	"github.com/okian/iplstats/internal/domain/model"
)

// Fixed report parameters.
const (
	PowerplayThreshold = 70.0
	HistogramBins      = 20
	TopVenueLimit      = 10
	TopPlayerLimit     = 10
	TopTrendTeams      = 5
	TopPowerplayLimit  = 5
)

// Labels used by the toss impact report.
const (
	TossWinLabel  = "Toss Win -> Match Win"
	TossLossLabel = "Toss Loss -> Match Win"
)

// Win types and the scalar names of the average margin report.
const (
	WinTypeRuns    = "runs"
	WinTypeWickets = "wickets"

	RunsLabel    = "Runs"
	WicketsLabel = "Wickets"
)

// TeamWinPercentage divides each team's wins by the matches it played, in
// percent. Participation comes from splitting Teams; records whose Teams does
// not split into two names are skipped. Teams with no wins, or with wins but
// no counted participation, have no defined ratio and are left out.
// Sorted by percentage, highest first.
func TeamWinPercentage(t *model.Table) LabeledCounts {
	wins := newCounter[string]()
	played := newCounter[string]()
	for _, m := range t.All() {
		if w, ok := m.MatchWinner.Get(); ok {
			wins.add(w)
		}
		if a, b, ok := splitTeams(m.Teams); ok {
			played.add(a)
			played.add(b)
		}
	}

	entries := make([]Entry, 0, len(played.order))
	for _, team := range played.order {
		w := wins.counts[team]
		if w == 0 {
			continue
		}
		entries = append(entries, Entry{
			Label: team,
			Count: w,
			Value: float64(w) / float64(played.counts[team]) * 100,
		})
	}
	sortByValueDesc(entries)
	return LabeledCounts{Entries: entries}
}

// MatchesPerSeason counts records per Season, oldest season first.
// Records without a Season are not counted.
func MatchesPerSeason(t *model.Table) LabeledCounts {
	seasons := newCounter[int]()
	for _, m := range t.All() {
		if s, ok := m.Season.Get(); ok {
			seasons.add(s)
		}
	}
	keys := slices.Sorted(slices.Values(seasons.order))

	entries := make([]Entry, 0, len(keys))
	for _, s := range keys {
		n := seasons.counts[s]
		entries = append(entries, Entry{Label: strconv.Itoa(s), Count: n, Value: float64(n)})
	}
	return LabeledCounts{Entries: entries}
}

// TossWinImpact splits records into those where the toss winner also won the
// match and all others. A record missing either winner counts as not equal.
func TossWinImpact(t *model.Table) LabeledCounts {
	var same, differ int
	for _, m := range t.All() {
		toss, ok1 := m.TossWinner.Get()
		winner, ok2 := m.MatchWinner.Get()
		if ok1 && ok2 && toss == winner {
			same++
		} else {
			differ++
		}
	}
	return LabeledCounts{Entries: []Entry{
		{Label: TossWinLabel, Count: same, Value: float64(same)},
		{Label: TossLossLabel, Count: differ, Value: float64(differ)},
	}}
}

// TopVenues returns the ten venues hosting the most matches.
func TopVenues(t *model.Table) LabeledCounts {
	c := countStrings(t, func(m model.Match) model.Optional[string] { return m.Venue })
	return LabeledCounts{Entries: topN(countEntries(c), TopVenueLimit)}
}

// PlayerOfMatchLeaders returns the ten players with the most awards.
func PlayerOfMatchLeaders(t *model.Table) LabeledCounts {
	c := countStrings(t, func(m model.Match) model.Optional[string] { return m.PlayerOfMatch })
	return LabeledCounts{Entries: topN(countEntries(c), TopPlayerLimit)}
}

// TeamPerformanceTrend counts wins per season for the five teams with the
// most wins overall. Rows are seasons in ascending order; a team without a
// win in a season gets 0 there.
func TeamPerformanceTrend(t *model.Table) GroupedTrend {
	totals := newCounter[string]()
	seasons := newCounter[int]()
	cells := make(map[int]map[string]int)
	for _, m := range t.All() {
		s, ok1 := m.Season.Get()
		w, ok2 := m.MatchWinner.Get()
		if !ok1 || !ok2 {
			continue
		}
		totals.add(w)
		seasons.add(s)
		if cells[s] == nil {
			cells[s] = make(map[string]int)
		}
		cells[s][w]++
	}
	if len(seasons.order) == 0 {
		return GroupedTrend{}
	}

	leaders := topN(countEntries(totals), TopTrendTeams)
	keys := slices.Sorted(slices.Values(seasons.order))

	out := GroupedTrend{
		Rows:    make([]string, len(keys)),
		Columns: make([]string, len(leaders)),
		Values:  make([][]float64, len(keys)),
	}
	for j, e := range leaders {
		out.Columns[j] = e.Label
	}
	for i, s := range keys {
		out.Rows[i] = strconv.Itoa(s)
		out.Values[i] = make([]float64, len(leaders))
		for j, team := range out.Columns {
			out.Values[i][j] = float64(cells[s][team])
		}
	}
	return out
}

// WinTypeDistribution gives each Win_Type's share of records in percent,
// most frequent first. Records without a Win_Type are not counted.
func WinTypeDistribution(t *model.Table) LabeledCounts {
	c := countStrings(t, func(m model.Match) model.Optional[string] { return m.WinType })
	total := c.total()
	entries := countEntries(c)
	sortByValueDesc(entries)
	for i := range entries {
		entries[i].Value = float64(entries[i].Count) / float64(total) * 100
	}
	return LabeledCounts{Entries: entries}
}

// AverageWinMargin averages Win_Margin separately for wins by runs and wins
// by wickets. A category with no margins yields an absent mean.
func AverageWinMargin(t *model.Table) ScalarPair {
	var runs, wickets mean
	for _, m := range t.All() {
		wt, ok1 := m.WinType.Get()
		margin, ok2 := m.WinMargin.Get()
		if !ok1 || !ok2 {
			continue
		}
		switch wt {
		case WinTypeRuns:
			runs.add(margin)
		case WinTypeWickets:
			wickets.add(margin)
		}
	}
	return ScalarPair{
		First:  NamedScalar{Name: RunsLabel, Value: runs.value()},
		Second: NamedScalar{Name: WicketsLabel, Value: wickets.value()},
	}
}

// HighPowerplayTeams counts the Teams value of records whose powerplay score
// exceeds PowerplayThreshold and returns the five most frequent.
//
// Unlike TeamWinPercentage, the fixture string "A vs B" is counted as is and
// not split into teams.
func HighPowerplayTeams(t *model.Table) LabeledCounts {
	c := newCounter[string]()
	for _, m := range t.All() {
		pp, ok1 := m.PowerplayScores.Get()
		teams, ok2 := m.Teams.Get()
		if ok1 && ok2 && pp > PowerplayThreshold {
			c.add(teams)
		}
	}
	return LabeledCounts{Entries: topN(countEntries(c), TopPowerplayLimit)}
}

// DeathOversDistribution collects every present death overs score and
// buckets them into HistogramBins equal-width bins.
func DeathOversDistribution(t *model.Table) Distribution {
	values := make([]float64, 0, t.Len())
	for _, m := range t.All() {
		if v, ok := m.DeathOversScores.Get(); ok && isFinite(v) {
			values = append(values, v)
		}
	}
	return Distribution{Values: values, Bins: histogram(values, HistogramBins)}
}
