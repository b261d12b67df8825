package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
)

// ProgressBar draws done out of total as a bar width cells wide followed by
// the percentage. An empty list reads as 0%.
func ProgressBar(done, total, width int) string {
	width = max(width, 5)
	pct := 0
	if total > 0 {
		pct = min(done*100/total, 100)
	}
	filled := pct * width / 100
	t := Current()
	return fmt.Sprintf("%s%s %3d%%",
		strings.Repeat(t.BarFull, filled), strings.Repeat(t.BarEmpty, width-filled), pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := ansi.PrintableRuneWidth(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := ansi.PrintableRuneWidth(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(Out, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(Out, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(Out, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
