package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/auth"
	"github.com/idilsaglam/todolists/internal/ui"
)

func addAuth(root *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Token authentication",
		RunE: func(cmd *cobra.Command, args []string) error {
			return usagef("usage: todo auth <login|logout|status|whoami>")
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login [token]",
		Short: "Store a bearer token (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				fmt.Fprint(ui.Out, "Paste your token: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if err := e.creds.Set(token, nil); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK("logged in")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, _ := e.creds.Get()
			if ti != nil && ti.Source == "env" {
				ui.OK("token is provided by " + auth.EnvVar + " env var (nothing to delete)")
				return nil
			}
			if err := e.creds.Delete(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK("logged out")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := e.creds.Get()
			if err != nil {
				return err
			}
			if ti == nil {
				fmt.Fprintln(ui.Out, ui.C(ui.Current().Muted, "not logged in"))
				fmt.Fprintln(ui.Out, "Run: todo auth login")
				return nil
			}
			fmt.Fprintf(ui.Out, "source: %s\n", ti.Source)
			if ti.ExpiresAt != nil {
				fmt.Fprintf(ui.Out, "expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
			} else {
				fmt.Fprintln(ui.Out, "expires: (unknown)")
			}
			fmt.Fprintln(ui.Out, "env override: "+auth.EnvVar)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Decode the token locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, _ := e.creds.Get()
			if ti == nil {
				return usagef("not logged in. Run: todo auth login")
			}
			if payload, ok := auth.Claims(ti.Token); ok {
				fmt.Fprintln(ui.Out, "JWT payload:")
				fmt.Fprintln(ui.Out, payload)
				return nil
			}
			fmt.Fprintln(ui.Out, "Opaque token (cannot introspect locally).")
			fmt.Fprintln(ui.Out, "source:", ti.Source)
			return nil
		},
	})

	root.AddCommand(cmd)
}

