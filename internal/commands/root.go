// Package commands is the kakeibo command line: a development front end
// driving the same screen controllers a UI would.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"kakeibo/internal/cli"
	"kakeibo/internal/config"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
	"kakeibo/internal/screens"
)

// App holds the wired dependencies shared by every subcommand. Fields left
// nil are built from the environment before the first command runs.
type App struct {
	Store     *ledger.Store
	Logger    *log.Logger
	Location  *time.Location
	Now       func() time.Time
	CacheSize int

	ui      *screens.Set
	cleanup func()
}

// Close releases the backend opened during setup.
func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
		a.Logger.Debug("backend closed", log.FieldOperation, log.OpShutdown)
	}
}

type rootFlags struct {
	backend string
	dbPath  string
	envFile string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(app *App) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "kakeibo",
		Short: "Personal income and expense ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := log.WithTraceID(cmd.Context(), log.NewTraceID())
			cmd.SetContext(ctx)
			if err := app.setup(ctx, flags); err != nil {
				return err
			}
			app.Logger.DebugContext(ctx, "command started", log.FieldOperation, log.OpStartup, "command", cmd.CommandPath())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "data backend (sqlite or memory); overrides DATA_BACKEND")
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path; overrides SQLITE_DB_PATH")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "environment file to load if present")

	rootCmd.AddCommand(
		newAddCommand(app),
		newListCommand(app),
		newMemoCommand(app),
		newDeleteCommand(app),
		newResetCommand(app),
		newChartCommand(app),
		newItemsCommand(app),
	)

	return rootCmd
}

func (a *App) setup(ctx context.Context, flags rootFlags) error {
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Store != nil {
		if a.Logger == nil {
			a.Logger = log.Discard()
		}
		if a.Location == nil {
			a.Location = time.Local
		}
		a.wire()
		return nil
	}

	cli.LoadEnvFile(flags.envFile)
	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if flags.backend != "" {
			c.DataBackend = flags.backend
		}
		if flags.dbPath != "" {
			c.SQLiteDBPath = flags.dbPath
		}
	})
	if err != nil {
		return err
	}
	if a.Logger == nil {
		if a.Logger, err = cli.SetupLogger(cfg); err != nil {
			return err
		}
	}
	if a.Location == nil {
		if a.Location, err = cfg.Location(); err != nil {
			return err
		}
	}
	if a.CacheSize == 0 {
		a.CacheSize = cfg.ChartCacheSize
	}

	store, cleanup, err := cli.OpenStore(ctx, cfg, a.Logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	a.Store, a.cleanup = store, cleanup
	a.wire()
	return nil
}

// wire builds the screen controllers once per App.
func (a *App) wire() {
	if a.ui != nil {
		return
	}
	f := screens.DefaultFormatter()
	f.Location = a.Location
	a.ui = screens.NewSet(a.Store, f, a.CacheSize, a.Now, a.Logger)
}

type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Reported reports whether err has already been shown to the user.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// report prints the notice for err and returns it marked as reported.
func report(w io.Writer, err error) error {
	n, ok := screens.NoticeFor(err)
	if !ok {
		return nil
	}
	fmt.Fprintf(w, "%s: %s (%v)\n", n.Severity, n.Message, err)
	return reportedError{err}
}
