package cli

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

func addLists(root *cobra.Command, e *env) {
	lists := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"ls"},
		Short:   "Show todo lists",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := e.workspace(ui.Sink{})
			all, err := ws.Lists.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(ui.Out, ui.C(ui.Current().Muted, "no todo lists"))
				ui.Hint("Tip: add one with `todo lists add \"Groceries\"`")
				return nil
			}
			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("ID", "NAME")
			for _, l := range all {
				table.AddRow(l.ID.String(), l.Name)
			}
			fmt.Fprintln(ui.Out, table)
			return nil
		},
	}

	lists.AddCommand(&cobra.Command{
		Use:   "add <name...>",
		Short: "Create a todo list",
		Args:  minArgs(1, "todo lists add <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := e.workspace(ui.Sink{})
			_, err := ws.Lists.Create(cmd.Context(), strings.Join(args, " "))
			return err
		},
	})

	lists.AddCommand(&cobra.Command{
		Use:   "rename <id> <name...>",
		Short: "Rename a todo list",
		Args:  minArgs(2, "todo lists rename <id> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return usageError{err}
			}
			ws := e.workspace(ui.Sink{})
			if _, err := ws.Lists.LoadAll(cmd.Context()); err != nil {
				return err
			}
			_, err = ws.Lists.Update(cmd.Context(), id, strings.Join(args[1:], " "))
			return err
		},
	})

	lists.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo list and its tasks",
		Args:    exactArgs(1, "todo lists rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return usageError{err}
			}
			ws := e.workspace(ui.Sink{})
			if _, err := ws.Lists.LoadAll(cmd.Context()); err != nil {
				return err
			}
			_, err = ws.Lists.Delete(cmd.Context(), id)
			return err
		},
	})

	root.AddCommand(lists)
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
