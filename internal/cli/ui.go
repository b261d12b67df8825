package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/tui"
)

func addUI(root *cobra.Command, e *env) {
	root.AddCommand(&cobra.Command{
		Use:   "ui",
		Short: "Open the interactive client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toast := notify.NewToast(e.cfg.NotifyDelay, notify.WithoutTimer())
			ws := e.workspace(toast)
			return tui.Run(cmd.Context(), ws, toast)
		},
	})
}
