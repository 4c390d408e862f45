// Package report is the aggregation engine: a closed catalog of pure
// functions turning a match table into chart-ready summaries.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/iplstats/internal/domain/model"
)

// ID identifies a report in the catalog. Values match the menu numbers.
type ID int

// Catalog entries.
const (
	IDTeamWinPercentage ID = iota + 1
	IDMatchesPerSeason
	IDTossWinImpact
	IDTopVenues
	IDPlayerOfMatch
	IDTeamPerformanceTrend
	IDWinTypeDistribution
	IDAverageWinMargin
	IDHighPowerplayTeams
	IDDeathOversDistribution
)

// ChartKind is the chart a report is drawn as.
type ChartKind string

// Supported chart kinds.
const (
	ChartBar       ChartKind = "bar"
	ChartPie       ChartKind = "pie"
	ChartLine      ChartKind = "line"
	ChartHistogram ChartKind = "histogram"
)

// Definition describes how a report is listed and rendered.
type Definition struct {
	ID         ID
	MenuLabel  string
	Title      string
	Chart      ChartKind
	XLabel     string
	YLabel     string
	OutputName string // artifact base name, without extension
}

var definitions = []Definition{
	{ID: IDTeamWinPercentage, MenuLabel: "Team Win Percentage", Title: "Team-wise Win Percentage", Chart: ChartBar, YLabel: "Win Percentage", OutputName: "team_win_percentage"},
	{ID: IDMatchesPerSeason, MenuLabel: "Matches Per Season", Title: "Matches Per Season", Chart: ChartBar, XLabel: "Season", YLabel: "Number of Matches", OutputName: "matches_per_season"},
	{ID: IDTossWinImpact, MenuLabel: "Toss Win Impact", Title: "Impact of Toss on Match Win", Chart: ChartPie, OutputName: "toss_win_impact"},
	{ID: IDTopVenues, MenuLabel: "Top 10 IPL Venues", Title: "Top 10 Most Frequent IPL Venues", Chart: ChartBar, YLabel: "Match Count", OutputName: "top_venues"},
	{ID: IDPlayerOfMatch, MenuLabel: "Top 10 Player of the Match Awards", Title: "Top 10 Players of the Match", Chart: ChartBar, YLabel: "Count", OutputName: "player_of_match"},
	{ID: IDTeamPerformanceTrend, MenuLabel: "Team Performance Trend Over Seasons", Title: "Top 5 Teams Performance Over Seasons", Chart: ChartLine, XLabel: "Season", YLabel: "Number of Wins", OutputName: "team_performance_trend"},
	{ID: IDWinTypeDistribution, MenuLabel: "Win Type Distribution", Title: "Win Type Distribution", Chart: ChartPie, OutputName: "win_type_distribution"},
	{ID: IDAverageWinMargin, MenuLabel: "Average Win Margin", Title: "Average Win Margin", Chart: ChartBar, YLabel: "Margin", OutputName: "avg_win_margin"},
	{ID: IDHighPowerplayTeams, MenuLabel: "High Powerplay Scores", Title: "Top 5 Teams With Powerplays >70", Chart: ChartBar, YLabel: "Count", OutputName: "high_powerplay_teams"},
	{ID: IDDeathOversDistribution, MenuLabel: "Death Overs Score Distribution", Title: "Death Overs Score Distribution", Chart: ChartHistogram, XLabel: "Runs in Death Overs", YLabel: "Frequency", OutputName: "death_overs_distribution"},
}

// All returns every definition in menu order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition of id.
func Lookup(id ID) (Definition, bool) {
	if id < IDTeamWinPercentage || id > IDDeathOversDistribution {
		return Definition{}, false
	}
	return definitions[id-1], true
}

// String returns the artifact name of the report, or "report(N)" when unknown.
func (id ID) String() string {
	if d, ok := Lookup(id); ok {
		return d.OutputName
	}
	return fmt.Sprintf("report(%d)", int(id))
}

// ParseSelection converts a menu token such as "3" into a report ID.
// The exit token "0" is not a report and is rejected like any other token.
func ParseSelection(token string) (ID, error) {
	trimmed := strings.TrimSpace(token)
	n, err := strconv.Atoi(trimmed)
	if err != nil || strconv.Itoa(n) != trimmed {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, token)
	}
	id := ID(n)
	if _, ok := Lookup(id); !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, token)
	}
	return id, nil
}

// Run computes report id over t.
func Run(id ID, t *model.Table) (Result, error) {
	switch id {
	case IDTeamWinPercentage:
		return TeamWinPercentage(t), nil
	case IDMatchesPerSeason:
		return MatchesPerSeason(t), nil
	case IDTossWinImpact:
		return TossWinImpact(t), nil
	case IDTopVenues:
		return TopVenues(t), nil
	case IDPlayerOfMatch:
		return PlayerOfMatchLeaders(t), nil
	case IDTeamPerformanceTrend:
		return TeamPerformanceTrend(t), nil
	case IDWinTypeDistribution:
		return WinTypeDistribution(t), nil
	case IDAverageWinMargin:
		return AverageWinMargin(t), nil
	case IDHighPowerplayTeams:
		return HighPowerplayTeams(t), nil
	case IDDeathOversDistribution:
		return DeathOversDistribution(t), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownReport, int(id))
	}
}
