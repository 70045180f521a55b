package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/liftdesk/liftdesk/internal/config"
	"github.com/liftdesk/liftdesk/internal/errors"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the workout service",
	Long: `Authenticate against the workout service and persist the session token.

The email can be passed with --email; the password is always prompted and
read with terminal echo disabled. Logging in replaces any existing
session.

Examples:
  # Prompt for both email and password
  liftdesk login

  # Prompt for the password only
  liftdesk login --email admin@example.com`,
	RunE: runLogin,
}

var loginEmail string

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "admin account email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	manager := newManager(logger)
	client := newClient(cfg, manager, logger)

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	email := strings.TrimSpace(loginEmail)
	if email == "" {
		fmt.Fprint(out, "Email: ")
		line, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = line
	}
	if email == "" {
		return errors.NewValidationError("Email is required").WithField("email")
	}

	fmt.Fprint(out, "Password: ")
	password, err := readPassword(cmd.InOrStdin(), reader)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return errors.NewValidationError("Password is required").WithField("password")
	}

	if _, err := manager.Login(cmd.Context(), client, email, password); err != nil {
		return errors.New(errors.UserMessage(err))
	}

	fmt.Fprintf(out, "Logged in as %s\n", email)
	return nil
}

// readLine reads one line and trims surrounding whitespace. A final
// unterminated line still counts.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads the password with echo disabled when stdin is a
// terminal, and falls back to a plain line read otherwise (pipes, tests).
func readPassword(stdin io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return readLine(reader)
}
