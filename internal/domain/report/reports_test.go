package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/okian/iplstats/internal/domain/derive"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/report"
	"github.com/okian/iplstats/internal/fixtures"
	. "github.com/smartystreets/goconvey/convey"
)

func str(s string) model.Optional[string] { return model.Some(s) }
func num(v float64) model.Optional[float64] { return model.Some(v) }

func date(s string) model.Optional[time.Time] {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return model.Some(d)
}

func table(matches ...model.Match) *model.Table {
	return derive.Season(model.NewTable(matches, nil))
}

func TestTeamWinPercentage(t *testing.T) {
	Convey("Given A winning 3 of 4 and B winning 1 of 2", t, func() {
		tbl := table(
			model.Match{Teams: str("A vs B"), MatchWinner: str("A")},
			model.Match{Teams: str("A vs B"), MatchWinner: str("B")},
			model.Match{Teams: str("A vs X"), MatchWinner: str("A")},
			model.Match{Teams: str("X vs A"), MatchWinner: str("A")},
		)

		Convey("When computing win percentages", func() {
			res := report.TeamWinPercentage(tbl)

			Convey("Then A is 75 and B is 50, A first", func() {
				So(res.Labels(), ShouldResemble, []string{"A", "B"})
				So(res.Values(), ShouldResemble, []float64{75, 50})
				So(res.Entries[0].Count, ShouldEqual, 3)
			})

			Convey("And a team without wins is left out rather than shown as 0", func() {
				So(res.Labels(), ShouldNotContain, "X")
			})
		})
	})

	Convey("Given records with malformed Teams values", t, func() {
		tbl := table(
			model.Match{Teams: str("A vs B"), MatchWinner: str("A")},
			model.Match{Teams: str("A vs "), MatchWinner: str("A")},
			model.Match{Teams: str("A vs B vs C"), MatchWinner: str("A")},
			model.Match{Teams: str("A versus B"), MatchWinner: str("B")},
			model.Match{MatchWinner: str("A")},
		)

		Convey("When computing win percentages", func() {
			res := report.TeamWinPercentage(tbl)

			Convey("Then only well-formed records count towards participation", func() {
				So(res.Entries, ShouldHaveLength, 2)
				So(res.Entries[0].Label, ShouldEqual, "A")
				So(res.Entries[0].Value, ShouldEqual, 400)
				So(res.Entries[1].Label, ShouldEqual, "B")
				So(res.Entries[1].Value, ShouldEqual, 100)
			})
		})
	})

	Convey("Given a winner that never appears in Teams", t, func() {
		tbl := table(model.Match{Teams: str("A vs B"), MatchWinner: str("Z")})

		Convey("Then it has no defined ratio and is dropped", func() {
			So(report.TeamWinPercentage(tbl).Empty(), ShouldBeTrue)
		})
	})

	Convey("Given an empty table", t, func() {
		Convey("Then the result is empty", func() {
			So(report.TeamWinPercentage(table()).Empty(), ShouldBeTrue)
		})
	})
}

func TestMatchesPerSeason(t *testing.T) {
	Convey("Given records across two seasons and one undated record", t, func() {
		tbl := table(
			model.Match{Date: date("2021-03-01")},
			model.Match{Date: date("2020-01-01")},
			model.Match{Date: model.None[time.Time]()},
			model.Match{Date: date("2020-06-01")},
		)

		Convey("When counting matches per season", func() {
			res := report.MatchesPerSeason(tbl)

			Convey("Then seasons are ascending with their counts", func() {
				So(res.Labels(), ShouldResemble, []string{"2020", "2021"})
				So(res.Values(), ShouldResemble, []float64{2, 1})
			})

			Convey("And the undated record is excluded", func() {
				total := 0
				for _, e := range res.Entries {
					total += e.Count
				}
				So(total, ShouldEqual, 3)
			})
		})
	})
}

func TestTossWinImpact(t *testing.T) {
	Convey("Given 3 toss winners who won and 2 who did not", t, func() {
		tbl := table(
			model.Match{TossWinner: str("A"), MatchWinner: str("A")},
			model.Match{TossWinner: str("B"), MatchWinner: str("B")},
			model.Match{TossWinner: str("C"), MatchWinner: str("C")},
			model.Match{TossWinner: str("A"), MatchWinner: str("B")},
			model.Match{},
		)

		Convey("When computing toss impact", func() {
			res := report.TossWinImpact(tbl)

			Convey("Then the categories hold 3 and 2 and sum to the record count", func() {
				So(res.Labels(), ShouldResemble, []string{report.TossWinLabel, report.TossLossLabel})
				So(res.Entries[0].Count, ShouldEqual, 3)
				So(res.Entries[1].Count, ShouldEqual, 2)
				So(res.Entries[0].Count+res.Entries[1].Count, ShouldEqual, tbl.Len())
			})
		})
	})

	Convey("Given a record with only one winner present", t, func() {
		tbl := table(model.Match{TossWinner: str("A")})

		Convey("Then it counts as not equal", func() {
			res := report.TossWinImpact(tbl)
			So(res.Entries[0].Count, ShouldEqual, 0)
			So(res.Entries[1].Count, ShouldEqual, 1)
		})
	})
}

func TestTopVenuesAndPlayers(t *testing.T) {
	Convey("Given 12 distinct venues with one dominant venue", t, func() {
		var matches []model.Match
		for i := 0; i < 11; i++ {
			v := fmt.Sprintf("Venue %02d", i)
			matches = append(matches, model.Match{Venue: str(v), PlayerOfMatch: str(v)})
		}
		for i := 0; i < 50; i++ {
			matches = append(matches, model.Match{Venue: str("Dominant"), PlayerOfMatch: str("Dominant")})
		}
		matches = append(matches, model.Match{})
		tbl := table(matches...)

		Convey("When ranking venues", func() {
			res := report.TopVenues(tbl)

			Convey("Then exactly 10 entries are returned with the dominant venue first", func() {
				So(res.Entries, ShouldHaveLength, 10)
				So(res.Entries[0].Label, ShouldEqual, "Dominant")
				So(res.Entries[0].Value, ShouldEqual, 50)
			})

			Convey("And ties keep first-encountered order", func() {
				So(res.Labels()[1:4], ShouldResemble, []string{"Venue 00", "Venue 01", "Venue 02"})
				So(res.Labels(), ShouldNotContain, "Venue 10")
			})
		})

		Convey("When ranking players of the match", func() {
			res := report.PlayerOfMatchLeaders(tbl)

			Convey("Then the same short-list policy applies", func() {
				So(res.Entries, ShouldHaveLength, 10)
				So(res.Entries[0].Label, ShouldEqual, "Dominant")
			})
		})
	})

	Convey("Given fewer than 10 distinct venues", t, func() {
		tbl := table(
			model.Match{Venue: str("Eden Gardens")},
			model.Match{Venue: str("Wankhede Stadium")},
			model.Match{Venue: str("Wankhede Stadium")},
		)

		Convey("Then every venue is shown", func() {
			res := report.TopVenues(tbl)
			So(res.Labels(), ShouldResemble, []string{"Wankhede Stadium", "Eden Gardens"})
		})
	})
}

func TestTeamPerformanceTrend(t *testing.T) {
	Convey("Given wins of six teams over two seasons", t, func() {
		win := func(d, team string) model.Match {
			return model.Match{Date: date(d), MatchWinner: str(team)}
		}
		tbl := table(
			win("2020-04-01", "A"), win("2020-04-02", "A"), win("2020-04-03", "A"),
			win("2021-04-01", "A"),
			win("2020-04-04", "B"), win("2020-04-05", "B"), win("2021-04-02", "B"),
			win("2021-04-03", "C"), win("2021-04-04", "C"),
			win("2020-04-06", "D"), win("2021-04-05", "D"),
			win("2021-04-06", "E"), win("2021-04-07", "E"),
			win("2020-04-07", "F"),
			model.Match{Date: model.None[time.Time](), MatchWinner: str("F")},
			model.Match{Date: date("2020-05-01")},
		)

		Convey("When building the trend", func() {
			res := report.TeamPerformanceTrend(tbl)

			Convey("Then rows are seasons ascending", func() {
				So(res.Rows, ShouldResemble, []string{"2020", "2021"})
			})

			Convey("And only the top five teams appear, ordered by total wins", func() {
				So(res.Columns, ShouldResemble, []string{"A", "B", "C", "D", "E"})
				So(res.Columns, ShouldNotContain, "F")
			})

			Convey("And season/team combinations without wins are 0", func() {
				So(res.Column(0), ShouldResemble, []float64{3, 1})
				So(res.Column(2), ShouldResemble, []float64{0, 2})
				So(res.Column(4), ShouldResemble, []float64{0, 2})
			})
		})
	})

	Convey("Given no season with a winner", t, func() {
		tbl := table(model.Match{MatchWinner: str("A")})

		Convey("Then the trend is empty", func() {
			So(report.TeamPerformanceTrend(tbl).Empty(), ShouldBeTrue)
		})
	})
}

func TestWinTypeDistribution(t *testing.T) {
	Convey("Given three runs wins, one wickets win and one without a type", t, func() {
		tbl := table(
			model.Match{WinType: str("wickets")},
			model.Match{WinType: str("runs")},
			model.Match{WinType: str("runs")},
			model.Match{WinType: str("runs")},
			model.Match{},
		)

		Convey("When computing the distribution", func() {
			res := report.WinTypeDistribution(tbl)

			Convey("Then shares are percentages of typed records, most frequent first", func() {
				So(res.Labels(), ShouldResemble, []string{"runs", "wickets"})
				So(res.Values(), ShouldResemble, []float64{75, 25})
				So(res.Entries[0].Count, ShouldEqual, 3)
			})
		})
	})
}

func TestAverageWinMargin(t *testing.T) {
	Convey("Given runs margins 10, 20, 30 and wickets margins 4, 6", t, func() {
		tbl := table(
			model.Match{WinType: str("runs"), WinMargin: num(10)},
			model.Match{WinType: str("runs"), WinMargin: num(20)},
			model.Match{WinType: str("runs"), WinMargin: num(30)},
			model.Match{WinType: str("wickets"), WinMargin: num(4)},
			model.Match{WinType: str("wickets"), WinMargin: num(6)},
			model.Match{WinType: str("runs")},
			model.Match{WinMargin: num(1000)},
			model.Match{WinType: str("tie"), WinMargin: num(0)},
		)

		Convey("When averaging", func() {
			res := report.AverageWinMargin(tbl)

			Convey("Then each type is averaged on its own", func() {
				So(res.First.Name, ShouldEqual, report.RunsLabel)
				So(res.First.Value, ShouldResemble, model.Some(20.0))
				So(res.Second.Name, ShouldEqual, report.WicketsLabel)
				So(res.Second.Value, ShouldResemble, model.Some(5.0))
			})
		})
	})

	Convey("Given no wickets wins", t, func() {
		tbl := table(model.Match{WinType: str("runs"), WinMargin: num(12)})

		Convey("Then the wickets mean is absent", func() {
			res := report.AverageWinMargin(tbl)
			So(res.First.Value.Valid, ShouldBeTrue)
			So(res.Second.Value.Valid, ShouldBeFalse)
			So(res.Empty(), ShouldBeFalse)
		})
	})

	Convey("Given an empty table", t, func() {
		Convey("Then both means are absent", func() {
			So(report.AverageWinMargin(table()).Empty(), ShouldBeTrue)
		})
	})
}

func TestHighPowerplayTeams(t *testing.T) {
	Convey("Given powerplay scores around the threshold", t, func() {
		pp := func(teams string, score float64) model.Match {
			return model.Match{Teams: str(teams), PowerplayScores: num(score)}
		}
		tbl := table(
			pp("A vs B", 71), pp("A vs B", 90), pp("B vs A", 75),
			pp("C vs D", 70), pp("C vs D", 10),
			model.Match{Teams: str("E vs F")},
			model.Match{PowerplayScores: num(99)},
		)

		Convey("When counting high powerplay fixtures", func() {
			res := report.HighPowerplayTeams(tbl)

			Convey("Then only scores strictly above 70 count", func() {
				So(res.Labels(), ShouldNotContain, "C vs D")
			})

			// Counted by the undivided Teams string: "A vs B" and "B vs A"
			// stay separate, unlike the per-team split of TeamWinPercentage.
			Convey("And fixtures are counted by their raw Teams string", func() {
				So(res.Labels(), ShouldResemble, []string{"A vs B", "B vs A"})
				So(res.Values(), ShouldResemble, []float64{2, 1})
			})
		})
	})

	Convey("Given more than five qualifying fixtures", t, func() {
		var matches []model.Match
		for i := 0; i < 7; i++ {
			matches = append(matches, model.Match{Teams: str(fmt.Sprintf("T%d vs U%d", i, i)), PowerplayScores: num(80)})
		}
		tbl := table(matches...)

		Convey("Then the top five are returned", func() {
			res := report.HighPowerplayTeams(tbl)
			So(res.Entries, ShouldHaveLength, report.TopPowerplayLimit)
			So(res.Entries[0].Label, ShouldEqual, "T0 vs U0")
		})
	})
}

func TestDeathOversDistribution(t *testing.T) {
	Convey("Given death overs scores with some absent", t, func() {
		var matches []model.Match
		for i := 0; i <= 40; i++ {
			matches = append(matches, model.Match{DeathOversScores: num(float64(20 + i))})
		}
		matches = append(matches, model.Match{}, model.Match{})
		tbl := table(matches...)

		Convey("When building the distribution", func() {
			res := report.DeathOversDistribution(tbl)

			Convey("Then absent values are excluded", func() {
				So(res.Values, ShouldHaveLength, 41)
			})

			Convey("And the values fall into 20 equal-width bins covering the range", func() {
				So(res.Bins, ShouldHaveLength, report.HistogramBins)
				So(res.Bins[0].Lower, ShouldEqual, 20)
				So(res.Bins[len(res.Bins)-1].Upper, ShouldEqual, 60)
				total := 0
				for _, b := range res.Bins {
					total += b.Count
					So(b.Upper-b.Lower, ShouldAlmostEqual, 2.0, 1e-9)
				}
				So(total, ShouldEqual, 41)
			})

			Convey("And the maximum lands in the last bin", func() {
				So(res.Bins[len(res.Bins)-1].Count, ShouldEqual, 3)
			})
		})
	})

	Convey("Given a single repeated value", t, func() {
		tbl := table(model.Match{DeathOversScores: num(45)}, model.Match{DeathOversScores: num(45)})

		Convey("Then the range is widened around it", func() {
			res := report.DeathOversDistribution(tbl)
			So(res.Bins[0].Lower, ShouldEqual, 44.5)
			So(res.Bins[len(res.Bins)-1].Upper, ShouldEqual, 45.5)
		})
	})

	Convey("Given no scores", t, func() {
		Convey("Then the distribution is empty", func() {
			res := report.DeathOversDistribution(table(model.Match{}))
			So(res.Empty(), ShouldBeTrue)
			So(res.Bins, ShouldBeNil)
		})
	})
}

func TestReportsAreDeterministic(t *testing.T) {
	Convey("Given a synthetic table with missing values", t, func() {
		tbl := derive.Season(model.NewTable(fixtures.Generate(fixtures.NewConfig(
			fixtures.WithMatches(300),
			fixtures.WithMissingEvery(7),
		)), nil))

		Convey("When every report runs twice", func() {
			for _, def := range report.All() {
				first, err1 := report.Run(def.ID, tbl)
				second, err2 := report.Run(def.ID, tbl)

				Convey("Then "+def.OutputName+" gives identical results", func() {
					So(err1, ShouldBeNil)
					So(err2, ShouldBeNil)
					So(second, ShouldResemble, first)
				})
			}
		})
	})
}
