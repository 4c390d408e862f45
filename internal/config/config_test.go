package config_test

import (
	"errors"
	"testing"

	"github.com/okian/iplstats/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should reproduce the fixed file names", func() {
			convey.So(cfg.DataPath, convey.ShouldEqual, "ipl_2008_to_2025.csv")
			convey.So(cfg.DBPath, convey.ShouldEqual, "ipl_analysis.db")
			convey.So(cfg.TableName, convey.ShouldEqual, "matches")
			convey.So(cfg.OutputDir, convey.ShouldEqual, ".")
			convey.So(cfg.DateColumn, convey.ShouldEqual, "Date")
			convey.So(cfg.Persist, convey.ShouldBeTrue)
			convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
		})

		convey.Convey("And it should be valid", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with a single bad field", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"unknown log level", func(c *config.Config) { c.LogLevel = "loud" }},
			{"empty data path", func(c *config.Config) { c.DataPath = " " }},
			{"empty date column", func(c *config.Config) { c.DateColumn = "" }},
			{"empty db path", func(c *config.Config) { c.DBPath = "" }},
			{"quoted table name", func(c *config.Config) { c.TableName = `"matches"` }},
			{"empty output dir", func(c *config.Config) { c.OutputDir = "" }},
			{"zero chart width", func(c *config.Config) { c.ChartWidth = 0 }},
			{"negative chart height", func(c *config.Config) { c.ChartHeight = -1 }},
		}

		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				cfg := config.New()
				tc.mutate(cfg)

				convey.Convey("Then Validate returns ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When persistence is off", func() {
			cfg := config.New()
			cfg.Persist = false
			cfg.DBPath = ""

			convey.Convey("Then an empty db path is accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
