// Package batch designs a schedule of members from a spreadsheet: one member
// per row, headed by the input field names, with the outcome written to a
// results sheet.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/engine"
)

// ResultsSheet is the sheet the outcomes are written to. It is replaced
// when it already exists.
const ResultsSheet = "Results"

// MarkColumn names the optional identifier column of a schedule.
const MarkColumn = "mark"

var resultHeader = []any{
	"Mark", "Member", "Code", "Pass", "Failure", "Combination",
	"Reinforcement", "Provided (mm²)", "Governing check", "Utilization", "Warnings", "Error",
}

// Options selects what to design.
type Options struct {
	Member design.Member
	Code   code.ID
	Sheet  string // schedule sheet; the first sheet when empty
	Logger *slog.Logger
}

// Outcome is the design of one schedule row.
type Outcome struct {
	Line   int // spreadsheet row number
	Mark   string
	Result *design.Result
	Err    error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Outcomes []Outcome
	Passed   int
	Failed   int
	Errors   int
}

// Run designs every row of src and saves the workbook with a results sheet
// to dst. src and dst may be the same file.
func Run(ctx context.Context, src, dst string, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f, err := excelize.OpenFile(src)
	if err != nil {
		return Summary{}, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Summary{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return Summary{}, fmt.Errorf("sheet %q has no schedule rows under its header", sheet)
	}

	header := normalize(rows[0])
	var sum Summary
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if blank(row) {
			continue
		}
		o := designRow(header, row, opts)
		o.Line = i + 2
		switch {
		case o.Err != nil:
			sum.Errors++
			logger.Warn("schedule row rejected", "line", o.Line, "mark", o.Mark, "err", o.Err)
		case o.Result.Pass:
			sum.Passed++
		default:
			sum.Failed++
			logger.Info("schedule row fails", "line", o.Line, "mark", o.Mark, "reason", o.Result.FailureReason)
		}
		sum.Outcomes = append(sum.Outcomes, o)
	}

	if err := writeResults(f, sum.Outcomes); err != nil {
		return sum, err
	}
	if err := f.SaveAs(dst); err != nil {
		return sum, fmt.Errorf("save results: %w", err)
	}
	logger.Debug("schedule designed", "rows", len(sum.Outcomes), "passed", sum.Passed, "failed", sum.Failed, "errors", sum.Errors)
	return sum, nil
}

func normalize(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// designRow maps the row onto the member input by header name and runs it.
// Cells are plain YAML scalars, so "420" fills a grade and "1500" a load.
func designRow(header, row []string, opts Options) Outcome {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	var o Outcome
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if i >= len(header) || header[i] == "" || cell == "" {
			continue
		}
		if strings.EqualFold(header[i], MarkColumn) {
			o.Mark = cell
			continue
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: header[i]},
			&yaml.Node{Kind: yaml.ScalarNode, Value: cell},
		)
	}
	if len(doc.Content) == 0 {
		o.Err = errors.New("row has no input values")
		return o
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		o.Err = err
		return o
	}
	in, err := engine.Decode(opts.Member, data, engine.YAML)
	if err != nil {
		o.Err = err
		return o
	}
	o.Result, o.Err = engine.Run(opts.Code, in)
	return o
}

func writeResults(f *excelize.File, outcomes []Outcome) error {
	if idx, err := f.GetSheetIndex(ResultsSheet); err == nil && idx >= 0 {
		if err := f.DeleteSheet(ResultsSheet); err != nil {
			return fmt.Errorf("replace results sheet: %w", err)
		}
	}
	if _, err := f.NewSheet(ResultsSheet); err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &resultHeader); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}
	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := resultRow(o)
		if err := f.SetSheetRow(ResultsSheet, cell, &values); err != nil {
			return fmt.Errorf("write results row %d: %w", o.Line, err)
		}
	}
	return nil
}

func resultRow(o Outcome) []any {
	mark := o.Mark
	if mark == "" {
		mark = fmt.Sprintf("row %d", o.Line)
	}
	if o.Err != nil {
		return []any{mark, "", "", "", "", "", "", "", "", "", "", o.Err.Error()}
	}
	r := o.Result
	bars := make([]string, len(r.Reinforcement))
	for i, g := range r.Reinforcement {
		bars[i] = g.Zone + ": " + g.String()
	}
	warnings := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = string(w.Code)
	}
	name, util := governing(r.Utilization)
	return []any{
		mark, string(r.Member), string(r.Code), r.Pass, string(r.FailureReason), r.Combination,
		strings.Join(bars, "; "), round(r.ProvidedArea, 1), name, round(util, 4),
		strings.Join(warnings, ", "), "",
	}
}

// governing returns the highest utilization; ties go to the first name in
// sorted order.
func governing(util map[string]float64) (string, float64) {
	names := make([]string, 0, len(util))
	for k := range util {
		names = append(names, k)
	}
	sort.Strings(names)
	var best string
	var top float64
	for _, n := range names {
		if best == "" || util[n] > top {
			best, top = n, util[n]
		}
	}
	return best, top
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
