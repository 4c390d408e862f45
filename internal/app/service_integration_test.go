package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/iplstats/internal/adapters/chart"
	"github.com/okian/iplstats/internal/adapters/repository"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a SQLite store and a chart renderer", t, func() {
		dir := t.TempDir()
		store, err := repository.Open(ctx, filepath.Join(dir, "ipl_analysis.db"))
		So(err, ShouldBeNil)

		svc := service.New(
			service.WithStore(store),
			service.WithTableName("matches"),
			service.WithSink(chart.New(chart.WithOutputDir(dir), chart.WithSize(640, 400))),
		)
		defer svc.Close()

		Convey("When bootstrapping from a fixture file", func() {
			err := svc.Bootstrap(ctx, writeFixture(t, 250))

			Convey("Then the stored table matches the loaded one", func() {
				So(err, ShouldBeNil)
				count, err := store.Count(ctx, "matches")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, svc.Table().Len())

				cols, err := store.Columns(ctx, "matches")
				So(err, ShouldBeNil)
				So(cols, ShouldResemble, svc.Table().Columns())
			})

			Convey("And every report renders to its own file", func() {
				for _, def := range report.All() {
					path, err := svc.RunReport(ctx, def.ID)
					So(err, ShouldBeNil)
					So(path, ShouldEqual, filepath.Join(dir, def.OutputName+".png"))
					_, statErr := os.Stat(path)
					So(statErr, ShouldBeNil)
				}
			})
		})

		Convey("When the file has no usable rows for a report", func() {
			path := filepath.Join(dir, "sparse.csv")
			data := "Date,Teams,Toss_Winner,Match_Winner,Player_of_Match,Venue,Win_Type,Win_Margin,Powerplay_Scores,Death_Overs_Scores\n" +
				"2010-04-01,CSK vs MI,CSK,CSK,MS Dhoni,Chepauk,runs,10,40,\n"
			So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)
			So(svc.Bootstrap(ctx, path), ShouldBeNil)

			_, err := svc.RunReport(ctx, report.IDDeathOversDistribution)

			Convey("Then the render failure is returned", func() {
				So(errors.Is(err, chart.ErrEmptyResult), ShouldBeTrue)
			})
		})
	})
}
