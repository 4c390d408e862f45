package fixtures

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/okian/iplstats/internal/domain/model"
)

// DateLayout is the date format written to generated files.
const DateLayout = "2006-01-02"

const filePermission = 0o644

// WriteCSV writes matches as a data file with the required header.
// Absent values are written as empty cells.
func WriteCSV(w io.Writer, matches []model.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.RequiredColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, m := range matches {
		if err := cw.Write(Row(m)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes matches to path, replacing any existing file.
func WriteFile(path string, matches []model.Match) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, matches)
}

// Row renders m in RequiredColumns order.
func Row(m model.Match) []string {
	return []string{
		formatDate(m.Date),
		m.Teams.Value,
		m.TossWinner.Value,
		m.MatchWinner.Value,
		m.PlayerOfMatch.Value,
		m.Venue.Value,
		m.WinType.Value,
		formatFloat(m.WinMargin),
		formatFloat(m.PowerplayScores),
		formatFloat(m.DeathOversScores),
	}
}

func formatDate(d model.Optional[time.Time]) string {
	if v, ok := d.Get(); ok {
		return v.Format(DateLayout)
	}
	return ""
}

func formatFloat(f model.Optional[float64]) string {
	if v, ok := f.Get(); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
