package cli

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/edit"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

func addTasks(root *cobra.Command, e *env) {
	tasks := &cobra.Command{
		Use:   "tasks <list-id>",
		Short: "Show the tasks of a todo list",
		Args:  exactArgs(1, "todo tasks <list-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := e.workspace(ui.Sink{})
			l, err := e.openList(cmd.Context(), ws, args[0])
			if err != nil {
				return err
			}
			printTasks(l, ws.Tasks.All())
			return nil
		},
	}

	tasks.AddCommand(&cobra.Command{
		Use:   "add <list-id> <name...>",
		Short: "Add a task to a todo list",
		Args:  minArgs(2, "todo tasks add <list-id> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := e.workspace(ui.Sink{})
			if _, err := e.openList(cmd.Context(), ws, args[0]); err != nil {
				return err
			}
			_, err := ws.Tasks.Create(cmd.Context(), strings.Join(args[1:], " "))
			return err
		},
	})

	tasks.AddCommand(&cobra.Command{
		Use:   "done <list-id> <task-id>",
		Short: "Toggle a task's completed flag",
		Args:  exactArgs(2, "todo tasks done <list-id> <task-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := e.workspace(ui.Sink{})
			if _, err := e.openList(cmd.Context(), ws, args[0]); err != nil {
				return err
			}
			t, err := ws.Tasks.Lookup(args[1])
			if err != nil {
				return err
			}
			_, err = ws.Tasks.ToggleComplete(cmd.Context(), t.ID)
			return err
		},
	})

	var name, notes string
	editCmd := &cobra.Command{
		Use:   "edit <list-id> <task-id>",
		Short: "Change a task's name or notes",
		Args:  exactArgs(2, "todo tasks edit <list-id> <task-id> [--name NAME] [--notes NOTES]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("notes") {
				return usagef("edit: nothing to change, pass --name or --notes")
			}
			ws := e.workspace(ui.Sink{})
			if _, err := e.openList(cmd.Context(), ws, args[0]); err != nil {
				return err
			}
			t, err := ws.Tasks.Lookup(args[1])
			if err != nil {
				return err
			}
			s := edit.NewSessions(ws, edit.NewOverlay()).EditTask(t, ws.Tasks)
			if cmd.Flags().Changed("name") {
				s.Set("name", name)
			}
			if cmd.Flags().Changed("notes") {
				s.Set("notes", notes)
			}
			return s.Commit(cmd.Context())
		},
	}
	editCmd.Flags().StringVar(&name, "name", "", "new task name")
	editCmd.Flags().StringVar(&notes, "notes", "", "new task notes")
	tasks.AddCommand(editCmd)

	tasks.AddCommand(&cobra.Command{
		Use:     "rm <list-id> <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    exactArgs(2, "todo tasks rm <list-id> <task-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := e.workspace(ui.Sink{})
			if _, err := e.openList(cmd.Context(), ws, args[0]); err != nil {
				return err
			}
			id, err := model.ParseID(args[1])
			if err != nil {
				return usageError{err}
			}
			_, err = ws.Tasks.Delete(cmd.Context(), id)
			return err
		},
	})

	root.AddCommand(tasks)
}

// printTasks draws the list's tasks in a panel with live counts.
func printTasks(l *model.TodoList, tasks []*model.Task) {
	t := ui.Current()
	var done int
	for _, task := range tasks {
		if task.Completed {
			done++
		}
	}
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, l.Name),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Pending, t.SymUnchecked), len(tasks)-done,
		ui.C(t.Accent, "Total"), len(tasks),
	)
	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(done, len(tasks), 28)), ""}
	if len(tasks) == 0 {
		lines = append(lines, ui.C(t.Muted, "no tasks"))
	}
	for _, task := range tasks {
		box, c := t.BoxUnchecked, t.Muted
		if task.Completed {
			box, c = t.BoxChecked, t.Success
		}
		name := truncate.StringWithTail(task.Name, 80, "...")
		lines = append(lines, fmt.Sprintf("%5s %s %s", ui.C(t.Muted, task.ID.String()), ui.C(c, box), name))
		if task.Notes != "" {
			lines = append(lines, "        "+ui.C(t.Muted, task.Notes))
		}
	}
	lines = append(lines, "", ui.C(t.Muted, fmt.Sprintf("Tip: add with `todo tasks add %s \"Buy milk\"`", l.ID)))
	ui.Panel(lines)
}
