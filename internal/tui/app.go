// Package tui renders the interactive workout console on top of the state
// core in internal/console. The model follows the usual Bubbletea shape:
// keypresses and network completions flow through Update, View draws the
// search bar, the record table, and the edit and delete overlays from the
// core's current state. All network work runs in commands so the UI loop
// never blocks.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftdesk/liftdesk/internal/api"
)

// Run starts the interactive workout console and blocks until the
// operator quits.
func Run(client *api.Client, opts ...Option) error {
	p := tea.NewProgram(NewModel(client, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
