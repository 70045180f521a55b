package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/liftdesk/liftdesk/internal/config"
	"github.com/liftdesk/liftdesk/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View console debug logs",
	Long: `View and filter the LiftDesk debug log.

By default, shows the last 50 entries from the log file and its rotated
backups. Use flags to filter and format the output.

Examples:
  # Show the last 50 entries
  liftdesk logs

  # Show all entries
  liftdesk logs -n 0

  # Follow new entries in real time
  liftdesk logs -f

  # Filter by log level
  liftdesk logs --level warn

  # Show entries from the last hour
  liftdesk logs --since 1h

  # Search for specific patterns
  liftdesk logs --grep "fetch|timeout"

  # Trace a single request across components
  liftdesk logs --request 9f3c21aa

  # Export matching entries for a bug report
  liftdesk logs --level error --export errors.csv --format csv`,
	RunE: runLogs,
}

var (
	logsTail      int
	logsFollow    bool
	logsLevel     string
	logsSince     string
	logsGrep      string
	logsComponent string
	logsRequest   string
	logsOp        string
	logsExport    string
	logsFormat    string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component (session, api, console, tui)")
	logsCmd.Flags().StringVar(&logsRequest, "request", "", "Filter by request ID")
	logsCmd.Flags().StringVar(&logsOp, "op", "", "Filter by operation name")
	logsCmd.Flags().StringVar(&logsExport, "export", "", "Write matching entries to a file instead of the terminal")
	logsCmd.Flags().StringVar(&logsFormat, "format", "json", "Export format: json, text, csv")
}

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// levelColor returns the ANSI color code for a log level
func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry logging.LogEntry) string {
	var sb strings.Builder

	// Timestamp
	sb.WriteString(colorGray)
	sb.WriteString("[")
	sb.WriteString(entry.Timestamp.Format("15:04:05.000"))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	// Level with color
	sb.WriteString(" ")
	sb.WriteString(levelColor(entry.Level))
	sb.WriteString("[")
	sb.WriteString(strings.ToUpper(entry.Level))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	// Message
	sb.WriteString(" ")
	sb.WriteString(entry.Message)

	// Context fields (component, request_id, op)
	if entry.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("component=")
		sb.WriteString(entry.Component)
		sb.WriteString(colorReset)
	}
	if entry.RequestID != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("request_id=")
		sb.WriteString(entry.RequestID)
		sb.WriteString(colorReset)
	}
	if entry.Op != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("op=")
		sb.WriteString(entry.Op)
		sb.WriteString(colorReset)
	}

	// Extra fields
	for key, value := range entry.Attrs {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(colorReset)
		sb.WriteString(fmt.Sprintf("%v", value))
	}

	return sb.String()
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logPath := cfg.Logging.ResolveLogFile()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "No log file found at %s\n", logPath)
		fmt.Fprintln(out, "Enable logging with: liftdesk config set logging.enabled true")
		return nil
	}

	// Parse filter options
	filter := logging.LogFilter{
		Component: logsComponent,
		RequestID: logsRequest,
		Op:        logsOp,
	}

	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}

	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.StartTime = time.Now().Add(-duration)
	}

	var grepRegex *regexp.Regexp
	if logsGrep != "" {
		var err error
		grepRegex, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	// Follow mode tails the live file; filters apply but tail/export do not.
	if logsFollow {
		return followLogs(cmd, logPath, filter, grepRegex)
	}

	return displayLogs(cmd, logPath, filter, grepRegex)
}

// displayLogs reads the log file and displays (or exports) filtered entries
func displayLogs(cmd *cobra.Command, logPath string, filter logging.LogFilter, grepRegex *regexp.Regexp) error {
	entries, err := logging.ReadLogs(logPath)
	if err != nil {
		return err
	}

	entries = logging.FilterLogs(entries, filter)
	if grepRegex != nil {
		entries = grepEntries(entries, grepRegex)
	}

	// Apply tail limit
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	out := cmd.OutOrStdout()

	// Export mode writes to a file instead of the terminal
	if logsExport != "" {
		if err := logging.ExportLogEntries(entries, logsExport, logsFormat); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d entries to %s\n", len(entries), logsExport)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintln(out, formatLogEntry(entry))
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}

	return nil
}

// followLogs implements tail -f behavior for the log file
func followLogs(cmd *cobra.Command, logPath string, filter logging.LogFilter, grepRegex *regexp.Regexp) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Seek to end of file
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Following %s... (Ctrl+C to stop)\n\n", logPath)

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// No new data, wait briefly and try again
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("error reading log file: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, err := logging.ParseLogLine(line)
		if err != nil {
			// Not JSON, display the raw line
			fmt.Fprintln(out, line)
			continue
		}

		if !matchesFollowFilters(entry, filter, grepRegex) {
			continue
		}

		fmt.Fprintln(out, formatLogEntry(entry))
	}
}

// matchesFollowFilters applies the display filters to a single tailed entry.
func matchesFollowFilters(entry logging.LogEntry, filter logging.LogFilter, grepRegex *regexp.Regexp) bool {
	if len(logging.FilterLogs([]logging.LogEntry{entry}, filter)) == 0 {
		return false
	}
	if grepRegex != nil && len(grepEntries([]logging.LogEntry{entry}, grepRegex)) == 0 {
		return false
	}
	return true
}

// grepEntries keeps entries whose message or attribute values match the pattern.
func grepEntries(entries []logging.LogEntry, pattern *regexp.Regexp) []logging.LogEntry {
	var matched []logging.LogEntry
	for _, entry := range entries {
		searchText := entry.Message
		for _, v := range entry.Attrs {
			searchText += " " + fmt.Sprintf("%v", v)
		}
		if pattern.MatchString(searchText) {
			matched = append(matched, entry)
		}
	}
	return matched
}
