package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftdesk/liftdesk/internal/api"
	"github.com/liftdesk/liftdesk/internal/config"
	"github.com/liftdesk/liftdesk/internal/session"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	return executeCommandWithInput(root, "", args...)
}

// executeCommandWithInput runs a cobra command with args and the given stdin
func executeCommandWithInput(root *cobra.Command, input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// setupTestEnvironment points the config, session, and log paths at a
// scratch directory and resets state shared between command invocations.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	viper.Reset()
	resetFlags()

	return dir
}

// resetFlags restores package-level flag values. Cobra leaves a flag's
// variable untouched when an invocation omits it, so values would otherwise
// leak between tests in the same process.
func resetFlags() {
	loginEmail = ""
	workoutsJSON = false
	logsTail = 50
	logsFollow = false
	logsLevel = ""
	logsSince = ""
	logsGrep = ""
	logsComponent = ""
	logsRequest = ""
	logsOp = ""
	logsExport = ""
	logsFormat = "json"
}

// saveSession writes a session slot the way a successful login would.
func saveSession(t *testing.T, token, email string) {
	t.Helper()

	store := session.NewStore(config.SessionFile())
	err := store.Save(&session.Session{Token: token, Email: email, SavedAt: time.Now()})
	if err != nil {
		t.Fatalf("failed to save session: %v", err)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Use != "liftdesk" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "liftdesk")
	}

	// Check for expected subcommands (compare by Name(), not Use which includes args)
	expectedCmds := []string{"login", "logout", "whoami", "console", "workouts", "config", "logs"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestWhoamiNotLoggedIn(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	if !strings.Contains(output, "Not logged in.") {
		t.Errorf("output = %q, want it to mention not being logged in", output)
	}
}

func TestWhoamiShowsSession(t *testing.T) {
	setupTestEnvironment(t)

	claims := jwt.MapClaims{
		"sub": "42",
		"exp": float64(time.Now().Add(time.Hour).Unix()),
		"iat": float64(time.Now().Unix()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	saveSession(t, token, "admin@example.com")

	output, err := executeCommand(rootCmd, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	if !strings.Contains(output, "admin@example.com") {
		t.Errorf("output should contain the session email, got %q", output)
	}
	if !strings.Contains(output, config.SessionFile()) {
		t.Errorf("output should contain the session path, got %q", output)
	}
	if !strings.Contains(output, "Token:    sha256:") {
		t.Errorf("output should contain the token fingerprint, got %q", output)
	}
	if strings.Contains(output, token) {
		t.Error("output must never contain the raw token")
	}
	if !strings.Contains(output, "Subject:  42") {
		t.Errorf("output should contain the token subject, got %q", output)
	}
	if !strings.Contains(output, "Expires:") {
		t.Errorf("output should contain the token expiry, got %q", output)
	}
}

func TestWhoamiOpaqueToken(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "not-a-jwt", "admin@example.com")

	output, err := executeCommand(rootCmd, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	if !strings.Contains(output, "admin@example.com") {
		t.Errorf("output should contain the session email, got %q", output)
	}
	if strings.Contains(output, "Subject:") {
		t.Errorf("opaque token should not produce claim lines, got %q", output)
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if !strings.Contains(output, "No active session.") {
		t.Errorf("output = %q, want it to mention no active session", output)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "tok-1", "admin@example.com")

	output, err := executeCommand(rootCmd, "logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if !strings.Contains(output, "Logged out admin@example.com") {
		t.Errorf("output = %q, want it to name the logged-out user", output)
	}
	if _, err := os.Stat(config.SessionFile()); !os.IsNotExist(err) {
		t.Error("session file should be removed after logout")
	}

	// A second logout is a no-op, not an error
	output, err = executeCommand(rootCmd, "logout")
	if err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
	if !strings.Contains(output, "No active session.") {
		t.Errorf("second logout output = %q, want no active session", output)
	}
}

func TestLoginSavesSession(t *testing.T) {
	setupTestEnvironment(t)

	var gotEmail, gotPassword string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode login body: %v", err)
		}
		gotEmail = body.Email
		gotPassword = body.Password
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "tok-1"}`))
	}))
	defer server.Close()
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	output, err := executeCommandWithInput(rootCmd, "secret123\n", "login", "--email", "admin@example.com")
	if err != nil {
		t.Fatalf("login failed: %v\nOutput: %s", err, output)
	}

	if gotEmail != "admin@example.com" || gotPassword != "secret123" {
		t.Errorf("server received %q/%q, want admin@example.com/secret123", gotEmail, gotPassword)
	}
	if !strings.Contains(output, "Logged in as admin@example.com") {
		t.Errorf("output = %q, want login confirmation", output)
	}

	sess, err := session.NewStore(config.SessionFile()).Load()
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	if sess == nil || sess.Token != "tok-1" || sess.Email != "admin@example.com" {
		t.Errorf("persisted session = %+v, want token tok-1 for admin@example.com", sess)
	}
}

func TestLoginPromptsForEmail(t *testing.T) {
	setupTestEnvironment(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "tok-1"}`))
	}))
	defer server.Close()
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	// Both prompts read from the same stdin, one line each
	output, err := executeCommandWithInput(rootCmd, "admin@example.com\nsecret123\n", "login")
	if err != nil {
		t.Fatalf("login failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Email: ") {
		t.Errorf("output = %q, want an email prompt", output)
	}
	if !strings.Contains(output, "Logged in as admin@example.com") {
		t.Errorf("output = %q, want login confirmation", output)
	}
}

func TestLoginEmptyEmail(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommandWithInput(rootCmd, "\n", "login")
	if err == nil {
		t.Fatal("login with empty email should fail")
	}
	if !strings.Contains(err.Error(), "Email is required") {
		t.Errorf("error = %q, want it to mention the missing email", err)
	}
}

func TestLoginEmptyPassword(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommandWithInput(rootCmd, "\n", "login", "--email", "admin@example.com")
	if err == nil {
		t.Fatal("login with empty password should fail")
	}
	if !strings.Contains(err.Error(), "Password is required") {
		t.Errorf("error = %q, want it to mention the missing password", err)
	}
}

func TestLoginRejected(t *testing.T) {
	setupTestEnvironment(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	defer server.Close()
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	_, err := executeCommandWithInput(rootCmd, "wrong\n", "login", "--email", "admin@example.com")
	if err == nil {
		t.Fatal("rejected login should fail")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("error = %q, want the server message verbatim", err)
	}

	// No session is left behind
	sess, loadErr := session.NewStore(config.SessionFile()).Load()
	if loadErr != nil {
		t.Fatalf("failed to load session: %v", loadErr)
	}
	if sess != nil {
		t.Errorf("rejected login should not persist a session, got %+v", sess)
	}
}

// workoutServer serves the admin workout collection for command tests.
func workoutServer(t *testing.T, records []api.WorkoutRecord) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "Invalid or expired token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(server.Close)
	return server
}

func testWorkouts() []api.WorkoutRecord {
	return []api.WorkoutRecord{
		{ID: 7, UserName: "Alice", UserEmail: "alice@example.com", WorkoutType: "Running", Duration: 30, CaloriesBurned: 250},
		{ID: 42, UserName: "Bob", UserEmail: "bob@example.com", WorkoutType: "Cycling", Duration: 45, CaloriesBurned: 380},
	}
}

func TestWorkoutsTable(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "tok-1", "admin@example.com")
	server := workoutServer(t, testWorkouts())
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	output, err := executeCommand(rootCmd, "workouts")
	if err != nil {
		t.Fatalf("workouts failed: %v\nOutput: %s", err, output)
	}

	for _, want := range []string{"Alice", "alice@example.com", "Running", "Cycling", "2 workouts"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestWorkoutsQueryForwarded(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "tok-1", "admin@example.com")

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	if _, err := executeCommand(rootCmd, "workouts", "alice"); err != nil {
		t.Fatalf("workouts failed: %v", err)
	}
	if gotQuery != "alice" {
		t.Errorf("server received query %q, want %q", gotQuery, "alice")
	}
}

func TestWorkoutsJSON(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "tok-1", "admin@example.com")
	server := workoutServer(t, testWorkouts())
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	output, err := executeCommand(rootCmd, "workouts", "--json")
	if err != nil {
		t.Fatalf("workouts --json failed: %v", err)
	}

	var records []api.WorkoutRecord
	if err := json.Unmarshal([]byte(output), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	if len(records) != 2 || records[0].UserName != "Alice" {
		t.Errorf("decoded records = %+v, want the two test workouts", records)
	}
}

func TestWorkoutsEmpty(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "tok-1", "admin@example.com")
	server := workoutServer(t, nil)
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	output, err := executeCommand(rootCmd, "workouts")
	if err != nil {
		t.Fatalf("workouts failed: %v", err)
	}
	if !strings.Contains(output, "No workouts found.") {
		t.Errorf("output = %q, want the empty-list message", output)
	}
}

func TestWorkoutsNotLoggedIn(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommand(rootCmd, "workouts")
	if err == nil {
		t.Fatal("workouts without a session should fail")
	}
	if err.Error() != "Not logged in" {
		t.Errorf("error = %q, want %q", err, "Not logged in")
	}
}

func TestWorkoutsServerError(t *testing.T) {
	setupTestEnvironment(t)
	saveSession(t, "tok-1", "admin@example.com")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	t.Setenv("LIFTDESK_API_BASE_URL", server.URL)

	_, err := executeCommand(rootCmd, "workouts")
	if err == nil {
		t.Fatal("workouts against a failing server should fail")
	}
	if err.Error() != "Failed to fetch workouts" {
		t.Errorf("error = %q, want %q", err, "Failed to fetch workouts")
	}
}

func TestConsoleNotLoggedIn(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommand(rootCmd, "console")
	if err == nil {
		t.Fatal("console without a session should fail")
	}
	if !strings.Contains(err.Error(), "Not logged in") {
		t.Errorf("error = %q, want it to mention not being logged in", err)
	}
}

func TestConfigPath(t *testing.T) {
	dir := setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}

	want := filepath.Join(dir, "liftdesk", "config.yaml")
	if strings.TrimSpace(output) != want {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(output), want)
	}
}

func TestConfigShowDefaults(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	for _, want := range []string{
		"(none - using defaults)",
		"base_url: http://localhost:8080",
		"page_size: 15",
		"level: info",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestConfigSetWritesFile(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "set", "tui.page_size", "25")
	if err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	if !strings.Contains(output, "Set tui.page_size = 25") {
		t.Errorf("output = %q, want set confirmation", output)
	}

	data, err := os.ReadFile(config.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "page_size: 25") {
		t.Errorf("config file missing the new value:\n%s", data)
	}

	// A later show picks the value up from the file
	output, err = executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "page_size: 25") {
		t.Errorf("config show should reflect the written value:\n%s", output)
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommand(rootCmd, "config", "set", "api.timeout", "5")
	if err == nil {
		t.Fatal("setting an unknown key should fail")
	}
	if !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("error = %q, want unknown key message", err)
	}
}

func TestConfigSetInvalidValues(t *testing.T) {
	setupTestEnvironment(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad level", []string{"config", "set", "logging.level", "verbose"}, "Valid options"},
		{"bad bool", []string{"config", "set", "logging.enabled", "yes"}, "expected true or false"},
		{"bad int", []string{"config", "set", "tui.page_size", "many"}, "expected integer"},
		{"negative int", []string{"config", "set", "logging.max_backups", "-1"}, "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(rootCmd, tt.args...)
			if err == nil {
				t.Fatal("invalid value should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestConfigInit(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(output, "Created config file") {
		t.Errorf("output = %q, want creation confirmation", output)
	}

	data, err := os.ReadFile(config.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "base_url:") {
		t.Errorf("template missing api section:\n%s", data)
	}

	// Refuses to clobber an existing file
	_, err = executeCommand(rootCmd, "config", "init")
	if err == nil {
		t.Fatal("second init should fail")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %q, want already-exists message", err)
	}
}

func TestLogsNoFile(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(output, "No log file found") {
		t.Errorf("output = %q, want missing-file message", output)
	}
}

// writeLogFile writes JSON log lines where the default config resolves the
// log path.
func writeLogFile(t *testing.T, lines ...string) string {
	t.Helper()

	logPath := config.Default().Logging.ResolveLogFile()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		t.Fatalf("failed to create log dir: %v", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(logPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write log file: %v", err)
	}
	return logPath
}

func TestLogsShowsEntries(t *testing.T) {
	setupTestEnvironment(t)
	writeLogFile(t,
		`{"time":"2026-08-25T10:00:00.000Z","level":"INFO","msg":"console starting","component":"tui"}`,
		`{"time":"2026-08-25T10:00:01.000Z","level":"ERROR","msg":"fetch request failed","component":"api"}`,
	)

	output, err := executeCommand(rootCmd, "logs", "-n", "0")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}

	if !strings.Contains(output, "console starting") {
		t.Errorf("output missing info entry:\n%s", output)
	}
	if !strings.Contains(output, "fetch request failed") {
		t.Errorf("output missing error entry:\n%s", output)
	}
}

func TestLogsLevelFilter(t *testing.T) {
	setupTestEnvironment(t)
	writeLogFile(t,
		`{"time":"2026-08-25T10:00:00.000Z","level":"INFO","msg":"console starting","component":"tui"}`,
		`{"time":"2026-08-25T10:00:01.000Z","level":"ERROR","msg":"fetch request failed","component":"api"}`,
	)

	output, err := executeCommand(rootCmd, "logs", "-n", "0", "--level", "error")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}

	if strings.Contains(output, "console starting") {
		t.Errorf("info entry should be filtered out:\n%s", output)
	}
	if !strings.Contains(output, "fetch request failed") {
		t.Errorf("output missing error entry:\n%s", output)
	}
}

func TestLogsGrep(t *testing.T) {
	setupTestEnvironment(t)
	writeLogFile(t,
		`{"time":"2026-08-25T10:00:00.000Z","level":"INFO","msg":"workout updated","id":42}`,
		`{"time":"2026-08-25T10:00:01.000Z","level":"INFO","msg":"workout deleted","id":7}`,
	)

	output, err := executeCommand(rootCmd, "logs", "-n", "0", "--grep", "deleted")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}

	if strings.Contains(output, "workout updated") {
		t.Errorf("non-matching entry should be filtered out:\n%s", output)
	}
	if !strings.Contains(output, "workout deleted") {
		t.Errorf("output missing matching entry:\n%s", output)
	}
}

func TestLogsExport(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeLogFile(t,
		`{"time":"2026-08-25T10:00:00.000Z","level":"INFO","msg":"console starting","component":"tui"}`,
	)

	exportPath := filepath.Join(dir, "export.csv")
	output, err := executeCommand(rootCmd, "logs", "-n", "0", "--export", exportPath, "--format", "csv")
	if err != nil {
		t.Fatalf("logs --export failed: %v", err)
	}
	if !strings.Contains(output, "Exported 1 entries") {
		t.Errorf("output = %q, want export confirmation", output)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	if !strings.Contains(string(data), "timestamp,level") {
		t.Errorf("export missing CSV header:\n%s", data)
	}
	if !strings.Contains(string(data), "console starting") {
		t.Errorf("export missing entry:\n%s", data)
	}
}
