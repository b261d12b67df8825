package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/auth"
	"github.com/idilsaglam/todolists/internal/config"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/store"
	"github.com/idilsaglam/todolists/internal/ui"
)

// env is what every subcommand shares: settings, credentials and the client.
type env struct {
	v       *viper.Viper
	cfg     config.Config
	creds   *auth.Store
	client  *api.Client
	logFile io.Closer
	noColor bool
}

func (e *env) addFlags(cmd *cobra.Command) {
	e.v = config.New()
	f := cmd.PersistentFlags()
	f.String("base-url", "", "todo list server (default http://localhost:3000)")
	f.String("theme", "", "classic | neon | mono")
	f.Bool("debug", false, "log requests")
	f.BoolVar(&e.noColor, "no-color", false, "disable colored output")
	_ = e.v.BindPFlag(config.KeyBaseURL, f.Lookup("base-url"))
	_ = e.v.BindPFlag(config.KeyTheme, f.Lookup("theme"))
	_ = e.v.BindPFlag(config.KeyDebug, f.Lookup("debug"))
}

func (e *env) init(cmd *cobra.Command) error {
	cfg, err := config.Load(e.v)
	if err != nil {
		return err
	}
	e.cfg = cfg
	ui.SetColorForcing(false, e.noColor)
	ui.SetTheme(cfg.Theme)

	if cmd.Name() == "ui" {
		err = e.logToFile()
	} else {
		e.logToStderr()
	}
	if err != nil {
		return err
	}

	e.creds = auth.Open(cfg.AuthDir)
	e.client, err = api.New(cfg.BaseURL, api.WithCredentials(e.creds), api.WithLogger(slog.Default()))
	return err
}

func (e *env) level() slog.Level {
	if e.cfg.Debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func (e *env) logToStderr() {
	slog.SetDefault(slog.New(slog.NewTextHandler(ui.Err, &slog.HandlerOptions{Level: e.level()})))
}

// logToFile keeps logs off the terminal the interactive client draws on.
func (e *env) logToFile() error {
	if !e.cfg.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}
	f, err := os.OpenFile("todo-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	e.logFile = f
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}

func (e *env) close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// workspace builds the stores reporting to sink.
func (e *env) workspace(sink notify.Sink) *store.Workspace {
	return store.New(e.client, sink)
}

// openList loads the lists and selects id, leaving its tasks resident.
func (e *env) openList(ctx context.Context, ws *store.Workspace, raw string) (*model.TodoList, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		return nil, usageError{err}
	}
	if _, err := ws.Lists.LoadAll(ctx); err != nil {
		return nil, err
	}
	return ws.Selection.SelectID(ctx, id)
}
