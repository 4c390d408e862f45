// Package console prints report results as text tables.
package console

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/okian/iplstats/internal/domain/report"
)

// NotAvailable is printed for an absent scalar.
const NotAvailable = "n/a"

// Printer writes a titled table per published result.
type Printer struct {
	w     io.Writer
	title *color.Color
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		title: color.New(color.FgYellow, color.Bold),
	}
}

// Publish prints res. It produces no artifact, so the returned path is empty.
func (p *Printer) Publish(ctx context.Context, def report.Definition, res report.Result) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := p.title.Fprintf(p.w, "\n%s\n", def.Title); err != nil {
		return "", err
	}
	if res == nil || res.Empty() {
		_, err := fmt.Fprintln(p.w, "No data.")
		return "", err
	}

	header, rows := tabulate(def, res)
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
	return "", nil
}

func tabulate(def report.Definition, res report.Result) ([]string, [][]string) {
	switch v := res.(type) {
	case report.LabeledCounts:
		rows := make([][]string, len(v.Entries))
		for i, e := range v.Entries {
			rows[i] = []string{e.Label, strconv.Itoa(e.Count), formatFloat(e.Value)}
		}
		return []string{orDefault(def.XLabel, "Label"), "Count", orDefault(def.YLabel, "Value")}, rows

	case report.GroupedTrend:
		header := append([]string{orDefault(def.XLabel, "Row")}, v.Columns...)
		rows := make([][]string, len(v.Rows))
		for i, key := range v.Rows {
			row := make([]string, 0, len(v.Columns)+1)
			row = append(row, key)
			for _, x := range v.Values[i] {
				row = append(row, formatFloat(x))
			}
			rows[i] = row
		}
		return header, rows

	case report.ScalarPair:
		rows := make([][]string, 0, 2)
		for _, s := range []report.NamedScalar{v.First, v.Second} {
			value := NotAvailable
			if x, ok := s.Value.Get(); ok {
				value = formatFloat(x)
			}
			rows = append(rows, []string{s.Name, value})
		}
		return []string{"Name", orDefault(def.YLabel, "Value")}, rows

	case report.Distribution:
		rows := make([][]string, len(v.Bins))
		for i, b := range v.Bins {
			closing := ")"
			if i == len(v.Bins)-1 {
				closing = "]"
			}
			rows[i] = []string{
				fmt.Sprintf("[%s, %s%s", formatFloat(b.Lower), formatFloat(b.Upper), closing),
				strconv.Itoa(b.Count),
			}
		}
		return []string{orDefault(def.XLabel, "Range"), orDefault(def.YLabel, "Count")}, rows
	}
	return nil, nil
}

// formatFloat rounds to two decimals and drops trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
