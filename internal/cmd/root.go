package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftdesk/liftdesk/internal/api"
	"github.com/liftdesk/liftdesk/internal/config"
	"github.com/liftdesk/liftdesk/internal/logging"
	"github.com/liftdesk/liftdesk/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "liftdesk",
	Short: "Terminal admin console for workout records",
	Long: `LiftDesk is a terminal admin console for the workout service.

Log in once with an admin account, then browse, search, edit, and delete
workout records in the interactive console, or script against the same
API with the one-shot subcommands.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/liftdesk/config.yaml)")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/liftdesk")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LIFTDESK")
	// Replace dots with underscores for nested keys in env vars
	// e.g., LIFTDESK_API_BASE_URL for api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger builds the file logger from the resolved config. A disabled or
// unopenable log file degrades to the no-op logger rather than blocking
// the command.
func newLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	logger, err := logging.NewLoggerWithRotation(
		cfg.Logging.ResolveLogFile(),
		cfg.Logging.Level,
		logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	)
	if err != nil {
		return logging.NopLogger()
	}
	return logger
}

// newManager builds the session manager over the persisted session slot.
func newManager(logger *logging.Logger) *session.Manager {
	store := session.NewStore(config.SessionFile())
	return session.NewManager(store, session.WithLogger(logger))
}

// newClient builds the API client with the session manager as its
// credential source.
func newClient(cfg *config.Config, manager *session.Manager, logger *logging.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL, manager, api.WithLogger(logger))
}
