package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent                   *color.Color
	Success, Error, Pending                *color.Color
	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymDone, SymUnchecked                  string
	BarFull, BarEmpty                      string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: color.New(color.Bold), Muted: color.New(color.FgHiBlack), Accent: color.New(color.FgBlue),
		Success: color.New(color.FgGreen), Error: color.New(color.FgRed), Pending: color.New(color.FgYellow),
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
		BarFull: "█", BarEmpty: "░",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: color.New(color.FgHiMagenta), Muted: color.New(color.FgHiBlack), Accent: color.New(color.FgHiCyan),
			Success: color.New(color.FgGreen), Error: color.New(color.FgRed), Pending: color.New(color.FgHiYellow),
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
			BarFull: "▰", BarEmpty: "▱",
		}
	case "mono":
		color.NoColor = true
		plain := color.New(color.Reset)
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-",
			BarFull: "#", BarEmpty: ".",
		}
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
