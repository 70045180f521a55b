package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftdesk/liftdesk/internal/config"
	"github.com/liftdesk/liftdesk/internal/errors"
)

var workoutsCmd = &cobra.Command{
	Use:   "workouts [query]",
	Short: "List workout records",
	Long: `Fetch and print workout records once, without opening the console.

An optional query narrows the list by user name or email, matching the
search bar in the interactive console.

Examples:
  # All workouts
  liftdesk workouts

  # Workouts whose user matches "alice"
  liftdesk workouts alice

  # Raw JSON for scripting
  liftdesk workouts --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWorkouts,
}

var workoutsJSON bool

func init() {
	rootCmd.AddCommand(workoutsCmd)

	workoutsCmd.Flags().BoolVar(&workoutsJSON, "json", false, "print raw JSON instead of a table")
}

func runWorkouts(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	manager := newManager(logger)
	client := newClient(cfg, manager, logger)

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	records, err := client.ListWorkouts(cmd.Context(), query)
	if err != nil {
		return errors.New(errors.UserMessage(err))
	}

	out := cmd.OutOrStdout()
	if workoutsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No workouts found.")
		return nil
	}

	fmt.Fprintf(out, "%-5s %-22s %-28s %-18s %6s %6s\n",
		"ID", "USER", "EMAIL", "TYPE", "MIN", "KCAL")
	for _, rec := range records {
		fmt.Fprintf(out, "%-5d %-22s %-28s %-18s %6d %6d\n",
			rec.ID, rec.UserName, rec.UserEmail, rec.WorkoutType,
			rec.Duration, rec.CaloriesBurned)
	}
	fmt.Fprintf(out, "\n%d workouts\n", len(records))
	return nil
}
