// Package cli is the todo command line. Store operations report their outcome
// through the ui sink; Run turns the returned error into an exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/errs"
	"github.com/idilsaglam/todolists/internal/ui"
)

// usageError marks bad arguments (exit code 2).
type usageError struct{ error }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	return RunContext(context.Background(), args)
}

func RunContext(ctx context.Context, args []string) int {
	root := New()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// Store failures were already reported by the sink.
	if errs.KindOf(err) != 0 {
		return 1
	}
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") ||
		strings.HasPrefix(err.Error(), "unknown flag") || strings.Contains(err.Error(), "arg(s)") {
		ui.Fail(err.Error())
		ui.Hint("Run `todo --help` for usage")
		return 2
	}
	ui.Fail(err.Error())
	return 1
}

// New builds the command tree.
func New() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Manage todo lists kept on a todo list server.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	e.addFlags(cmd)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	addLists(cmd, e)
	addTasks(cmd, e)
	addAuth(cmd, e)
	addUI(cmd, e)
	return cmd
}
