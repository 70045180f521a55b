package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftdesk/liftdesk/internal/api"
)

// fetchResultMsg carries the completion of a workout list fetch. The seq
// field echoes the sequence number handed out when the fetch was issued;
// the state core uses it to discard results that a newer search has
// already superseded.
type fetchResultMsg struct {
	seq     int
	records []api.WorkoutRecord
	err     error
}

// saveResultMsg carries the completion of a workout update. The record is
// the one that was sent; on success it becomes the committed row.
type saveResultMsg struct {
	record api.WorkoutRecord
	err    error
}

// deleteResultMsg carries the completion of a workout delete.
type deleteResultMsg struct {
	id  int
	err error
}

// Commands

// fetchWorkouts returns a command that lists workouts matching query.
// Runs on the Bubbletea command goroutine so the UI never blocks on the
// network.
func fetchWorkouts(client *api.Client, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		records, err := client.ListWorkouts(context.Background(), query)
		return fetchResultMsg{seq: seq, records: records, err: err}
	}
}

// saveWorkout returns a command that sends an edited record to the server.
func saveWorkout(client *api.Client, record api.WorkoutRecord) tea.Cmd {
	return func() tea.Msg {
		err := client.UpdateWorkout(context.Background(), record)
		return saveResultMsg{record: record, err: err}
	}
}

// deleteWorkout returns a command that deletes the record with the given id.
func deleteWorkout(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteWorkout(context.Background(), id)
		return deleteResultMsg{id: id, err: err}
	}
}
