package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftdesk/liftdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify LiftDesk configuration",
	Long: `View or modify LiftDesk configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  liftdesk config set api.base_url https://fitness.example.com
  liftdesk config set tui.page_size 25
  liftdesk config set logging.level debug

Valid keys:
  api.base_url        - Root URL of the workout service API
  tui.page_size       - Workout rows per page in the console table
  logging.enabled     - Write a debug log file (true/false)
  logging.level       - Log level: debug, info, warn, error
  logging.file        - Log file path (empty for the default location)
  logging.max_size_mb - Log size in MB before rotation
  logging.max_backups - Rotated log files to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/liftdesk/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "api:")
	fmt.Fprintf(out, "  base_url: %s\n", cfg.API.BaseURL)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  page_size: %d\n", cfg.TUI.ResolvePageSize())

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  file: %s\n", cfg.Logging.ResolveLogFile())
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"api.base_url":        "string",
		"tui.page_size":       "int",
		"logging.enabled":     "bool",
		"logging.level":       "string",
		"logging.file":        "string",
		"logging.max_size_mb": "int",
		"logging.max_backups": "int",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'liftdesk config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue any
	switch keyType {
	case "string":
		if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'liftdesk config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# LiftDesk Configuration

# Workout service API
api:
  # Root URL of the backend. Can also be set with LIFTDESK_API_BASE_URL.
  base_url: http://localhost:8080

# Terminal UI settings
tui:
  # Workout rows per page in the console table
  page_size: 15

# Debug logging (file only; the console never logs to the terminal)
logging:
  enabled: true
  # debug, info, warn, error
  level: info
  # Log file path; empty means <config dir>/liftdesk.log
  file: ""
  # Rotate the log once it reaches this size
  max_size_mb: 10
  # Rotated files to keep
  max_backups: 3
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit it directly or use 'liftdesk config set' to change values.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}
