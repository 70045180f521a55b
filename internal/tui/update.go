package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftdesk/liftdesk/internal/console"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case fetchResultMsg:
		if m.core.ApplyFetch(msg.seq, msg.records, msg.err) {
			m.clampCursor()
		}
		return m, nil

	case saveResultMsg:
		m.core.ApplySave(msg.record, msg.err)
		return m, nil

	case deleteResultMsg:
		m.core.ApplyDelete(msg.id, msg.err)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a keypress to the active mode. The delete gate and
// the edit form take precedence over the search bar and list navigation.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.core.ConfirmingDelete():
		return m.handleConfirmKey(msg)
	case m.core.Editing():
		return m.handleEditKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear messages on any key
	m.core.ClearMessages()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.core.Records())-1 {
			m.cursor++
		}

	case "g", "home":
		m.cursor = 0

	case "G", "end":
		if n := len(m.core.Records()); n > 0 {
			m.cursor = n - 1
		}

	case "ctrl+d", "pgdown":
		m.cursor += m.pageSize
		m.clampCursor()

	case "ctrl+u", "pgup":
		m.cursor -= m.pageSize
		m.clampCursor()

	case "r":
		seq := m.core.StartFetch(m.core.Query())
		return m, fetchWorkouts(m.client, seq, m.core.Query())

	case "e", "enter":
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		if err := m.core.BeginEdit(rec.ID); err != nil {
			return m, nil
		}
		m.fieldIndex = 0
		m.seedFieldInput()
		return m, textinput.Blink

	case "d":
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		if err := m.core.RequestDelete(rec.ID); err != nil {
			return m, nil
		}
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Re-query on every keystroke. The sequence guard in the core keeps a
	// slow response from clobbering the result of a newer search.
	if query := m.searchInput.Value(); query != m.core.Query() {
		seq := m.core.StartFetch(query)
		return m, tea.Batch(cmd, fetchWorkouts(m.client, seq, query))
	}
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.core.CancelEdit()
		m.fieldInput.Blur()
		return m, nil

	case "tab", "down":
		m.commitFieldInput()
		m.fieldIndex = (m.fieldIndex + 1) % len(console.DraftFields())
		m.seedFieldInput()
		return m, nil

	case "shift+tab", "up":
		m.commitFieldInput()
		m.fieldIndex--
		if m.fieldIndex < 0 {
			m.fieldIndex = len(console.DraftFields()) - 1
		}
		m.seedFieldInput()
		return m, nil

	case "enter":
		m.commitFieldInput()
		record, ok := m.core.SubmitDraft()
		if !ok {
			// Validation failed; the rule message is already surfaced and
			// the form stays open. Nothing goes to the network.
			return m, nil
		}
		return m, saveWorkout(m.client, record)
	}

	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	m.commitFieldInput()
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id, ok := m.core.ConfirmDelete()
		if !ok {
			return m, nil
		}
		return m, deleteWorkout(m.client, id)

	case "n", "N", "esc":
		m.core.CancelDelete()
	}

	// Anything else leaves the gate open.
	return m, nil
}
