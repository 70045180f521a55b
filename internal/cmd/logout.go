package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftdesk/liftdesk/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the saved session",
	Long: `Discard the persisted session token.

Logging out is local only: the token is removed from this machine, the
server is not called. Running logout without an active session is not an
error.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	manager := newManager(logger)

	// A corrupted slot still gets cleared; only report what we knew.
	sess, err := manager.Current()
	if err != nil {
		sess = nil
	}

	if err := manager.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	out := cmd.OutOrStdout()
	if sess == nil {
		fmt.Fprintln(out, "No active session.")
		return nil
	}
	fmt.Fprintf(out, "Logged out %s\n", sess.Email)
	return nil
}
