// Package menu is the interactive numbered menu that drives the reports.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/okian/iplstats/internal/domain/report"
	"github.com/okian/iplstats/pkg/logger"
	"github.com/okian/iplstats/pkg/metrics"
)

// Menu texts.
const (
	Banner         = "--- IPL Analysis Menu ---"
	ExitToken      = "0"
	ExitLabel      = "Exit"
	Prompt         = "Enter option number: "
	FarewellText   = "Exiting program."
	InvalidText    = "Invalid input. Please choose a number from 0-10."
	SavedTemplate  = "Plot saved as: %s\n"
	FailedTemplate = "Report failed: %v\n"
)

// Runner computes and publishes one report, returning the artifact path.
type Runner interface {
	RunReport(ctx context.Context, id report.ID) (string, error)
}

// Shell reads menu choices and dispatches them to a Runner until the user
// exits, input ends, or the context is cancelled.
type Shell struct {
	runner Runner
	in     io.Reader
	out    io.Writer
	logger logger.Logger

	heading *color.Color
	success *color.Color
	failure *color.Color
}

// New creates a shell over runner. Input and output default to the process
// stdin and stdout.
func New(runner Runner, opts ...Option) *Shell {
	s := &Shell{
		runner:  runner,
		in:      os.Stdin,
		out:     os.Stdout,
		heading: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run loops until "0", end of input or cancellation. It returns nil in each
// of those cases and only fails when the output cannot be written.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		if ctx.Err() != nil {
			s.logger.Info(ctx, "menu cancelled")
			return nil
		}
		if err := s.printMenu(); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				s.logger.Warn(ctx, "reading menu input failed", logger.Error(err))
			}
			_, err := s.success.Fprintln(s.out, "\n"+FarewellText)
			return err
		}

		choice := strings.TrimSpace(scanner.Text())
		if choice == ExitToken {
			_, err := s.success.Fprintln(s.out, FarewellText)
			return err
		}
		if err := s.dispatch(ctx, choice); err != nil {
			return err
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	id, err := report.ParseSelection(choice)
	if err != nil {
		metrics.RecordInvalidSelection()
		s.logger.Debug(ctx, "invalid menu selection", logger.String("input", choice))
		_, werr := s.failure.Fprintln(s.out, InvalidText)
		return werr
	}

	path, err := s.runner.RunReport(ctx, id)
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		return nil
	case err != nil:
		_, werr := s.failure.Fprintf(s.out, FailedTemplate, err)
		return werr
	case path != "":
		_, werr := s.success.Fprintf(s.out, SavedTemplate, path)
		return werr
	}
	return nil
}

func (s *Shell) printMenu() error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.heading.Sprint(Banner))
	b.WriteString("\n")
	for _, def := range report.All() {
		fmt.Fprintf(&b, "%d. %s\n", int(def.ID), def.MenuLabel)
	}
	fmt.Fprintf(&b, "%s. %s\n\n%s", ExitToken, ExitLabel, Prompt)
	_, err := io.WriteString(s.out, b.String())
	return err
}
