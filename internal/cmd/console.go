package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/liftdesk/liftdesk/internal/config"
	"github.com/liftdesk/liftdesk/internal/errors"
	"github.com/liftdesk/liftdesk/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive workout console",
	Long: `Open the full-screen workout console.

The console fetches the workout list, narrows it live while you type in
the search bar, and lets you edit or delete records in place. All
destructive actions ask for confirmation first.

Keys:
  /        focus the search bar
  j/k      move the selection
  e/enter  edit the selected workout
  d        delete the selected workout (asks y/n)
  r        refresh the current search
  q        quit`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	manager := newManager(logger)
	if _, err := manager.AuthHeader(); err != nil {
		return errors.New(`Not logged in. Run "liftdesk login" first.`)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(`the console needs an interactive terminal; use "liftdesk workouts" for scripted access`)
	}

	client := newClient(cfg, manager, logger)
	logger.Info("console starting", "base_url", client.BaseURL())

	return tui.Run(client,
		tui.WithLogger(logger),
		tui.WithPageSize(cfg.TUI.ResolvePageSize()),
	)
}
