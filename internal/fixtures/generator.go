// Package fixtures builds deterministic synthetic match data for tests,
// demos and the gen-matches tool.
package fixtures

import (
	"math/rand"
	"time"

	"github.com/okian/iplstats/internal/domain/model"
)

// Default generator settings.
const (
	defaultMatches     = 500
	defaultSeed        = 42
	defaultFirstSeason = 2008
	defaultLastSeason  = 2025
	seasonStartMonth   = time.March
	seasonLengthDays   = 60
	maxRunsMargin      = 120
	maxWicketsMargin   = 10
	powerplayMin       = 25
	powerplayRange     = 70
	deathOversMin      = 20
	deathOversRange    = 60
)

// Teams, venues and players the generator draws from.
var (
	Teams = []string{
		"Chennai Super Kings", "Mumbai Indians", "Kolkata Knight Riders",
		"Royal Challengers Bangalore", "Sunrisers Hyderabad", "Rajasthan Royals",
		"Delhi Capitals", "Punjab Kings",
	}
	Venues = []string{
		"Wankhede Stadium", "Eden Gardens", "M. Chinnaswamy Stadium",
		"MA Chidambaram Stadium", "Arun Jaitley Stadium", "Sawai Mansingh Stadium",
		"Rajiv Gandhi International Stadium", "Punjab Cricket Association Stadium",
		"Narendra Modi Stadium", "Brabourne Stadium", "DY Patil Stadium",
		"Ekana Cricket Stadium",
	}
	Players = []string{
		"AB de Villiers", "CH Gayle", "RG Sharma", "MS Dhoni", "DA Warner",
		"V Kohli", "SR Watson", "YK Pathan", "KA Pollard", "AD Russell",
		"JC Buttler", "SA Yadav",
	}
)

// Config controls the generator. Zero fields take defaults.
type Config struct {
	Matches     int
	Seed        int64
	FirstSeason int
	LastSeason  int
	// MissingEvery blanks a field on every n-th record, rotating through the
	// columns so every column sees absent values. 0 disables it.
	MissingEvery int
}

// Option applies a configuration option to Config.
type Option func(*Config)

// WithMatches sets the number of generated records.
func WithMatches(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Matches = n
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithSeasons sets the inclusive season range.
func WithSeasons(first, last int) Option {
	return func(c *Config) {
		if first > 0 && last >= first {
			c.FirstSeason = first
			c.LastSeason = last
		}
	}
}

// WithMissingEvery blanks one field on every n-th record.
func WithMissingEvery(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MissingEvery = n
		}
	}
}

// NewConfig builds a Config from defaults and options.
func NewConfig(opts ...Option) Config {
	c := Config{
		Matches:     defaultMatches,
		Seed:        defaultSeed,
		FirstSeason: defaultFirstSeason,
		LastSeason:  defaultLastSeason,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Generate returns synthetic matches. Equal configs give equal output.
func Generate(cfg Config) []model.Match {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic fixtures
	seasons := cfg.LastSeason - cfg.FirstSeason + 1

	out := make([]model.Match, cfg.Matches)
	for i := range out {
		home := rng.Intn(len(Teams))
		away := (home + 1 + rng.Intn(len(Teams)-1)) % len(Teams)
		a, b := Teams[home], Teams[away]

		season := cfg.FirstSeason + rng.Intn(seasons)
		date := time.Date(season, seasonStartMonth, 20, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, rng.Intn(seasonLengthDays))

		toss, winner := a, a
		if rng.Intn(2) == 1 {
			toss = b
		}
		if rng.Intn(2) == 1 {
			winner = b
		}

		winType, margin := "runs", float64(1+rng.Intn(maxRunsMargin))
		if rng.Intn(2) == 1 {
			winType, margin = "wickets", float64(1+rng.Intn(maxWicketsMargin))
		}

		m := model.Match{
			Date:             model.Some(date),
			Teams:            model.Some(a + model.TeamsSeparator + b),
			TossWinner:       model.Some(toss),
			MatchWinner:      model.Some(winner),
			PlayerOfMatch:    model.Some(Players[rng.Intn(len(Players))]),
			Venue:            model.Some(Venues[rng.Intn(len(Venues))]),
			WinType:          model.Some(winType),
			WinMargin:        model.Some(margin),
			PowerplayScores:  model.Some(float64(powerplayMin + rng.Intn(powerplayRange))),
			DeathOversScores: model.Some(float64(deathOversMin + rng.Intn(deathOversRange))),
		}
		if cfg.MissingEvery > 0 && i%cfg.MissingEvery == 0 {
			m = blank(m, i/cfg.MissingEvery)
		}
		out[i] = m
	}
	return out
}

// Table generates a table of n matches with the default seed.
func Table(n int) *model.Table {
	return model.NewTable(Generate(NewConfig(WithMatches(n))), nil)
}

// blank clears the k-th column (mod the column count) of m.
func blank(m model.Match, k int) model.Match {
	switch k % len(model.RequiredColumns) {
	case 0:
		m.Date = model.None[time.Time]()
	case 1:
		m.Teams = model.None[string]()
	case 2:
		m.TossWinner = model.None[string]()
	case 3:
		m.MatchWinner = model.None[string]()
	case 4:
		m.PlayerOfMatch = model.None[string]()
	case 5:
		m.Venue = model.None[string]()
	case 6:
		m.WinType = model.None[string]()
	case 7:
		m.WinMargin = model.None[float64]()
	case 8:
		m.PowerplayScores = model.None[float64]()
	case 9:
		m.DeathOversScores = model.None[float64]()
	}
	return m
}
