// Package ui prints command-line output: status lines, framed panels and the
// notification sink the one-shot commands use.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/idilsaglam/todolists/internal/notify"
)

var (
	// Out and Err are where ui prints. Tests swap them.
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr

	symCheck = "✔"
	symCross = "✖"
)

// SetColorForcing overrides terminal detection.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		color.NoColor = true
	case force:
		color.NoColor = false
	default:
		color.NoColor = !isTTY()
	}
}

func isTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// C colors s unless color output is off.
func C(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func OK(msg string)   { fmt.Fprintln(Out, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Err, C(current.Error, symCross+" "+msg)) }

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) { fmt.Fprintln(Err, C(current.Muted, msg)) }

// Sink reports store notifications as status lines.
type Sink struct{}

func (Sink) Notify(n notify.Notification) {
	if n.Severity == notify.Error {
		Fail(n.Text)
		return
	}
	OK(n.Text)
}
