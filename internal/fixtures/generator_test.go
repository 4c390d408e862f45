package fixtures_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/fixtures"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generator config", t, func() {
		cfg := fixtures.NewConfig(fixtures.WithMatches(200), fixtures.WithSeed(9), fixtures.WithSeasons(2010, 2012))

		Convey("When generating twice", func() {
			a := fixtures.Generate(cfg)
			b := fixtures.Generate(cfg)

			Convey("Then the output is identical", func() {
				So(a, ShouldResemble, b)
				So(len(a), ShouldEqual, 200)
			})

			Convey("And every record is complete and within the season range", func() {
				for _, m := range a {
					d, ok := m.Date.Get()
					So(ok, ShouldBeTrue)
					So(d.Year(), ShouldBeBetweenOrEqual, 2010, 2012)

					teams := strings.Split(m.Teams.Value, model.TeamsSeparator)
					So(len(teams), ShouldEqual, 2)
					So(teams[0], ShouldNotEqual, teams[1])
					So(teams, ShouldContain, m.MatchWinner.Value)
					So(teams, ShouldContain, m.TossWinner.Value)
					So([]string{"runs", "wickets"}, ShouldContain, m.WinType.Value)
				}
			})
		})

		Convey("When a different seed is used", func() {
			other := fixtures.Generate(fixtures.NewConfig(fixtures.WithMatches(200), fixtures.WithSeed(10)))

			Convey("Then the output differs", func() {
				So(other, ShouldNotResemble, fixtures.Generate(cfg))
			})
		})

		Convey("When every third record loses a column", func() {
			out := fixtures.Generate(fixtures.NewConfig(fixtures.WithMatches(30), fixtures.WithMissingEvery(3)))

			Convey("Then the blanked column rotates", func() {
				So(out[0].Date.Valid, ShouldBeFalse)
				So(out[3].Teams.Valid, ShouldBeFalse)
				So(out[6].TossWinner.Valid, ShouldBeFalse)
				So(out[1].Date.Valid, ShouldBeTrue)
			})
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given generated matches with gaps", t, func() {
		matches := fixtures.Generate(fixtures.NewConfig(fixtures.WithMatches(12), fixtures.WithMissingEvery(4)))

		Convey("When writing them as CSV", func() {
			var buf bytes.Buffer
			So(fixtures.WriteCSV(&buf, matches), ShouldBeNil)
			records, err := csv.NewReader(&buf).ReadAll()
			So(err, ShouldBeNil)

			Convey("Then the header is the required column list", func() {
				So(records[0], ShouldResemble, model.RequiredColumns)
				So(len(records), ShouldEqual, 13)
			})

			Convey("And absent values are empty cells", func() {
				So(records[1][0], ShouldBeEmpty)
				So(records[2][0], ShouldNotBeEmpty)
			})
		})
	})
}
