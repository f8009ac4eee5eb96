package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

const (
	yangGlyph = "━━━━━━━━━"
	yinGlyph  = "━━━━ ━━━━"
)

// renderReading draws the hexagram top line first, the way it is read.
func renderReading(w io.Writer, rec domain.ReadingRecord) {
	r := rec.Reading
	if rec.Question != "" {
		fmt.Fprintf(w, "Question: %s\n\n", rec.Question)
	}

	for i := len(r.Lines) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "  %d  %s  %s\n", i+1, lineGlyph(r.Lines[i]), describeLine(r.Lines[i]))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Primary:     %s %s\n", r.Primary.Symbol(), r.Primary)
	if r.Transformed != nil {
		fmt.Fprintf(w, "Transformed: %s %s\n", r.Transformed.Symbol(), *r.Transformed)
		fmt.Fprintf(w, "Changing:    %s\n", joinInts(r.ChangingLines))
	} else {
		fmt.Fprintln(w, "No changing lines.")
	}
	if rec.ID != "" {
		fmt.Fprintf(w, "Reading:     %s\n", rec.ID)
	}
}

func renderInterpretation(w io.Writer, out ports.InterpretOutput) {
	fmt.Fprintf(w, "\n%s\n", out.Text)
	if out.Disclaimer != "" {
		fmt.Fprintf(w, "\n(%s)\n", out.Disclaimer)
	}
}

func lineGlyph(l domain.Line) string {
	if l.IsYang() {
		return yangGlyph
	}
	return yinGlyph
}

func describeLine(l domain.Line) string {
	coins := make([]string, len(l.Coins))
	for i, c := range l.Coins {
		coins[i] = c.String()
	}
	desc := fmt.Sprintf("%d %-10s %s", l.Value, l.Type, strings.Join(coins, " "))
	if l.Changing {
		desc += "  changing"
	}
	return desc
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
