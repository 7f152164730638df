// Package output provides output formatting for calculation results.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mileage/core/engine"
	"mileage/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Report is one calculation with the context it was made in
type Report struct {
	Profile types.Profile   `json:"region"`
	Input   types.TripInput `json:"input"`
	Result  *types.Result   `json:"result"`
	Labels  types.Labels    `json:"labels"`
}

// BatchReport is a batch calculation
type BatchReport struct {
	Profile types.Profile      `json:"region"`
	Items   []engine.BatchItem `json:"-"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes a single calculation
	Render(w io.Writer, report *Report) error

	// RenderBatch writes a batch calculation
	RenderBatch(w io.Writer, report *BatchReport) error

	// RenderRegions writes the region catalog
	RenderRegions(w io.Writer, profiles []types.Profile, defaultCode string) error
}

// New returns the formatter for format with the given decimal precision
func New(format Format, precision int) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &cliFormatter{numbers: NewNumberFormatter(precision)}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// NumberFormatter renders numbers with thousand separators
type NumberFormatter struct {
	printer *message.Printer
	verb    string
}

// NewNumberFormatter creates a formatter rounding to precision decimals
func NewNumberFormatter(precision int) *NumberFormatter {
	if precision < 0 {
		precision = 0
	}
	return &NumberFormatter{
		printer: message.NewPrinter(language.English),
		verb:    fmt.Sprintf("%%.%df", precision),
	}
}

// Float formats f, for example 1234.567 as "1,234.57"
func (n *NumberFormatter) Float(f float64) string {
	return n.printer.Sprintf(n.verb, f)
}

const boxWidth = 60

type cliFormatter struct {
	numbers *NumberFormatter
}

func (c *cliFormatter) Format() Format { return FormatCLI }

func (c *cliFormatter) Render(w io.Writer, report *Report) error {
	res := report.Result
	rows := [][2]string{
		{"Region", fmt.Sprintf("%s (%s)", report.Profile.Name, report.Profile.Code)},
		{"Fuel type", string(res.FuelType)},
		{"Efficiency", c.numbers.Float(res.Efficiency) + " " + res.EfficiencyUnit},
		{"Cost per distance", c.numbers.Float(res.CostPerDistance.InexactFloat64()) + " " + report.Profile.CostPerDistanceUnit},
		{"Total cost", report.Profile.Currency + c.numbers.Float(res.TotalCost.InexactFloat64())},
		{"Rating", res.Rating.Tier.String()},
	}

	var b strings.Builder
	c.header(&b, "MILEAGE SUMMARY")
	for _, row := range rows {
		c.row(&b, row[0], row[1])
	}
	c.footer(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *cliFormatter) RenderBatch(w io.Writer, report *BatchReport) error {
	var b strings.Builder
	c.header(&b, fmt.Sprintf("BATCH SUMMARY - %s", report.Profile.Name))
	for _, it := range report.Items {
		label := fmt.Sprintf("#%d", it.Index+1)
		if it.Err != nil {
			c.row(&b, label, "rejected: "+firstLine(it.Err.Error()))
			continue
		}
		c.row(&b, label, fmt.Sprintf("%s %s  %s",
			c.numbers.Float(it.Result.Efficiency), it.Result.EfficiencyUnit, it.Result.Rating.Tier))
	}

	s := engine.Summarize(report.Items)
	fmt.Fprintf(&b, "├%s┤\n", strings.Repeat("─", boxWidth+2))
	c.row(&b, "Computed", fmt.Sprintf("%d", s.Trips))
	c.row(&b, "Rejected", fmt.Sprintf("%d", s.Rejected))
	if s.Best != nil {
		c.row(&b, "Best", fmt.Sprintf("#%d (%s)", s.Best.Index+1, s.Best.Result.Rating.Tier))
		c.row(&b, "Worst", fmt.Sprintf("#%d (%s)", s.Worst.Index+1, s.Worst.Result.Rating.Tier))
	}
	c.footer(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *cliFormatter) RenderRegions(w io.Writer, profiles []types.Profile, defaultCode string) error {
	var b strings.Builder
	c.header(&b, "REGIONS")
	for _, p := range profiles {
		name := p.Name
		if p.Code == defaultCode {
			name += " *"
		}
		c.row(&b, p.Code+" "+name, fmt.Sprintf("%s, %s, %s", p.DistanceUnit, p.EfficiencyUnit, p.Currency))
	}
	c.footer(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *cliFormatter) header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "┌%s┐\n", strings.Repeat("─", boxWidth+2))
	fmt.Fprintf(b, "│ %-*s │\n", boxWidth, title)
	fmt.Fprintf(b, "├%s┤\n", strings.Repeat("─", boxWidth+2))
}

func (c *cliFormatter) row(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "│ %-22s %37s │\n", truncate(key, 22), truncate(value, 37))
}

func (c *cliFormatter) footer(b *strings.Builder) {
	fmt.Fprintf(b, "└%s┘\n", strings.Repeat("─", boxWidth+2))
}

type jsonFormatter struct{}

func (j *jsonFormatter) Format() Format { return FormatJSON }

func (j *jsonFormatter) Render(w io.Writer, report *Report) error {
	return encode(w, report)
}

type batchEntry struct {
	Index  int             `json:"index"`
	Input  types.TripInput `json:"input"`
	Result *types.Result   `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (j *jsonFormatter) RenderBatch(w io.Writer, report *BatchReport) error {
	entries := make([]batchEntry, 0, len(report.Items))
	for _, it := range report.Items {
		e := batchEntry{Index: it.Index, Input: it.Input, Result: it.Result}
		if it.Err != nil {
			e.Error = it.Err.Error()
		}
		entries = append(entries, e)
	}
	return encode(w, map[string]interface{}{
		"region": report.Profile,
		"trips":  entries,
	})
}

func (j *jsonFormatter) RenderRegions(w io.Writer, profiles []types.Profile, defaultCode string) error {
	return encode(w, map[string]interface{}{
		"default": defaultCode,
		"regions": profiles,
	})
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
