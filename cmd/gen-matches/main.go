package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/iplstats/internal/fixtures"
	"github.com/okian/iplstats/pkg/logger"
)

// Default generator flags.
const (
	defaultOutput  = "ipl_2008_to_2025.csv"
	defaultMatches = 1000
	defaultSeed    = 42
)

func main() {
	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := run(os.Args[1:], os.Stderr); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// run parses args and writes the synthetic data file.
func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen-matches", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		out     = fs.String("out", defaultOutput, "Output CSV file")
		n       = fs.Int("n", defaultMatches, "Number of matches to generate")
		seed    = fs.Int64("seed", defaultSeed, "Random seed; equal seeds give equal files")
		first   = fs.Int("first-season", 2008, "First season")
		last    = fs.Int("last-season", 2025, "Last season")
		missing = fs.Int("missing-every", 0, "Blank one column in every n-th match (0 disables)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n <= 0 {
		return fmt.Errorf("-n must be positive, got %d", *n)
	}
	if *first > *last {
		return fmt.Errorf("-first-season %d is after -last-season %d", *first, *last)
	}

	cfg := fixtures.NewConfig(
		fixtures.WithMatches(*n),
		fixtures.WithSeed(*seed),
		fixtures.WithSeasons(*first, *last),
		fixtures.WithMissingEvery(*missing),
	)
	if err := fixtures.WriteFile(*out, fixtures.Generate(cfg)); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	logger.Get().Info(context.Background(), "matches generated",
		logger.String("path", *out),
		logger.Int("matches", *n),
		logger.Int64("seed", *seed),
	)
	return nil
}
