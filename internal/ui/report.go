package ui

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/theme"
)

const (
	labelWidth  = 14
	numberWidth = 16
	ruleWidth   = 48
)

// Printer renders usage reports to a writer
type Printer struct {
	breakdown bool
	styles    theme.Styles
	w         io.Writer
}

// NewPrinter creates a Printer. Colors are used only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		styles: theme.NewStyles(lipgloss.NewRenderer(w)),
		w:      w,
	}
}

// WithBreakdown makes day rows also print input, output and cache token counts
func (p *Printer) WithBreakdown(on bool) *Printer {
	p.breakdown = on
	return p
}

// Summary prints one row per day, newest first, followed by total, day count and average
func (p *Printer) Summary(summary domain.UsageSummary, days int) error {
	var sb strings.Builder

	sb.WriteString(p.styles.Title.Render(fmt.Sprintf("Token usage, last %d days", days)))
	sb.WriteString("\n")
	p.rule(&sb, "=")
	p.header(&sb)

	if len(summary.Records) == 0 {
		sb.WriteString(p.styles.Label.Render("No usage reported for this window"))
		sb.WriteString("\n")
	}
	for _, r := range summary.Records {
		p.row(&sb, r)
	}

	p.rule(&sb, "-")
	p.total(&sb, "Total", summary.Total)
	sb.WriteString(p.styles.Label.Render(pad("Days", labelWidth)))
	sb.WriteString(fmt.Sprintf("%*d\n", numberWidth, summary.Days))
	p.total(&sb, "Average", summary.Average)

	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Status prints the contents summary of the local store
func (p *Printer) Status(status domain.StoreStatus, dbPath string) error {
	var sb strings.Builder

	sb.WriteString(p.styles.Title.Render("Usage store"))
	sb.WriteString("\n")
	p.rule(&sb, "=")
	p.field(&sb, "Database", dbPath)
	p.field(&sb, "Days stored", FormatNumber(status.Count))

	if status.Earliest == nil || status.Latest == nil {
		p.field(&sb, "Date range", p.styles.Zero.Render("none"))
	} else {
		p.field(&sb, "Date range",
			status.Earliest.Format(domain.DateLayout)+" .. "+status.Latest.Format(domain.DateLayout))
	}
	p.field(&sb, "Total tokens",
		FormatNumber(status.TotalTokens)+" "+p.styles.Compact.Render("("+FormatTokens(status.TotalTokens)+")"))

	_, err := io.WriteString(p.w, sb.String())
	return err
}

// List streams every record of seq, oldest first, and returns how many rows were printed.
// Rows already printed stay printed when the sequence fails midway.
func (p *Printer) List(seq iter.Seq2[domain.UsageRecord, error]) (int, error) {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Stored usage"))
	sb.WriteString("\n")
	p.rule(&sb, "=")
	p.header(&sb)
	if _, err := io.WriteString(p.w, sb.String()); err != nil {
		return 0, err
	}

	count := 0
	var total int64
	for r, err := range seq {
		if err != nil {
			return count, err
		}
		sb.Reset()
		p.row(&sb, r)
		if _, err := io.WriteString(p.w, sb.String()); err != nil {
			return count, err
		}
		count++
		total += r.TokenCount
	}

	sb.Reset()
	if count == 0 {
		sb.WriteString(p.styles.Label.Render("No usage stored yet"))
		sb.WriteString("\n")
	}
	p.rule(&sb, "-")
	p.total(&sb, "Total", total)
	_, err := io.WriteString(p.w, sb.String())
	return count, err
}

// Saved prints the outcome of a persist
func (p *Printer) Saved(result domain.PersistResult, dbPath string) error {
	msg := fmt.Sprintf("Saved %d days (%d new, %d updated) to %s",
		result.Written(), result.Inserted, result.Updated, dbPath)
	if n := len(result.Failed); n > 0 {
		msg += p.styles.Error.Render(fmt.Sprintf(", %d failed", n))
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p *Printer) header(sb *strings.Builder) {
	sb.WriteString(p.styles.Label.Render(pad("Date", labelWidth) + fmt.Sprintf("%*s", numberWidth, "Tokens")))
	sb.WriteString("\n")
}

func (p *Printer) row(sb *strings.Builder, r domain.UsageRecord) {
	style := p.styles.Normal
	if r.TokenCount == 0 {
		style = p.styles.Zero
	}
	sb.WriteString(style.Render(pad(r.DateString(), labelWidth) + fmt.Sprintf("%*s", numberWidth, FormatNumber(r.TokenCount))))
	sb.WriteString("  ")
	sb.WriteString(p.styles.Compact.Render(FormatTokens(r.TokenCount)))
	sb.WriteString("\n")

	if p.breakdown {
		p.breakdownRow(sb, r)
	}
}

// breakdownRow is skipped for days the gateway reported only as a total
func (p *Printer) breakdownRow(sb *strings.Builder, r domain.UsageRecord) {
	if r.InputTokens == 0 && r.OutputTokens == 0 && r.CacheReadTokens == 0 && r.CacheWriteTokens == 0 {
		return
	}
	sb.WriteString(p.styles.Breakdown.Render(fmt.Sprintf("  input %s  output %s  cache read %s  cache write %s",
		FormatNumber(r.InputTokens), FormatNumber(r.OutputTokens),
		FormatNumber(r.CacheReadTokens), FormatNumber(r.CacheWriteTokens))))
	sb.WriteString("\n")
}

func (p *Printer) total(sb *strings.Builder, label string, n int64) {
	sb.WriteString(p.styles.Total.Render(pad(label, labelWidth) + fmt.Sprintf("%*s", numberWidth, FormatNumber(n))))
	sb.WriteString("  ")
	sb.WriteString(p.styles.Compact.Render(FormatTokens(n)))
	sb.WriteString("\n")
}

func (p *Printer) field(sb *strings.Builder, label, value string) {
	sb.WriteString(p.styles.Label.Render(pad(label, labelWidth)))
	sb.WriteString(value)
	sb.WriteString("\n")
}

func (p *Printer) rule(sb *strings.Builder, char string) {
	sb.WriteString(p.styles.Rule.Render(strings.Repeat(char, ruleWidth)))
	sb.WriteString("\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
