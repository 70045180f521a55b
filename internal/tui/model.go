package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftdesk/liftdesk/internal/api"
	"github.com/liftdesk/liftdesk/internal/console"
	"github.com/liftdesk/liftdesk/internal/logging"
)

// Model holds the console UI state
type Model struct {
	// Core components
	core   *console.Core
	client *api.Client
	logger *logging.Logger

	// UI state
	searchInput textinput.Model
	fieldInput  textinput.Model
	searching   bool
	cursor      int
	fieldIndex  int
	pageSize    int
	width       int
	height      int
	ready       bool
	quitting    bool
}

// Option configures the console model.
type Option func(*Model)

// WithLogger sets the logger for UI and state transition logging.
func WithLogger(logger *logging.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPageSize sets how many table rows are shown per page.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// NewModel creates the console model. The initial workout fetch is issued
// from Init.
func NewModel(client *api.Client, opts ...Option) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search name or email"
	search.CharLimit = 100
	search.Width = 40

	field := textinput.New()
	field.Prompt = ""
	field.CharLimit = 100
	field.Width = 30

	m := Model{
		client:      client,
		logger:      logging.NopLogger(),
		searchInput: search,
		fieldInput:  field,
		pageSize:    15,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.logger = m.logger.WithComponent("tui")
	m.core = console.New(console.WithLogger(m.logger))
	return m
}

func (m Model) Init() tea.Cmd {
	seq := m.core.StartFetch("")
	return tea.Batch(textinput.Blink, fetchWorkouts(m.client, seq, ""))
}

// selectedRecord returns the record under the cursor.
func (m Model) selectedRecord() (api.WorkoutRecord, bool) {
	records := m.core.Records()
	if len(records) == 0 || m.cursor < 0 || m.cursor >= len(records) {
		return api.WorkoutRecord{}, false
	}
	return records[m.cursor], true
}

// clampCursor keeps the cursor inside the committed list after it changes.
func (m *Model) clampCursor() {
	if n := len(m.core.Records()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// seedFieldInput loads the focused draft field into the shared text input.
func (m *Model) seedFieldInput() {
	d := m.core.Draft()
	if d == nil {
		return
	}
	field := console.DraftFields()[m.fieldIndex]
	m.fieldInput.SetValue(d.Value(field))
	m.fieldInput.CursorEnd()
	m.fieldInput.Focus()
}

// commitFieldInput writes the shared text input back to the focused draft
// field, keeping the core the single source of truth for draft contents.
func (m *Model) commitFieldInput() {
	if !m.core.Editing() {
		return
	}
	m.core.SetDraftField(console.DraftFields()[m.fieldIndex], m.fieldInput.Value())
}
