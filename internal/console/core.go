// Package console implements the state core of the workout admin console.
//
// Core owns the committed record list, the active search query, the
// loading flag, and the edit/delete mutation flow. The terminal UI renders
// this state and drives it through the transition methods; it never writes
// the fields directly. Network completions arrive through the Apply*
// methods as plain values, which keeps the whole flow testable without a
// terminal or a server.
//
// All methods are called from a single goroutine (the UI update loop), so
// Core carries no lock. Fetch completions are matched against a monotonic
// sequence number: only the completion for the most recently issued fetch
// is applied, everything older is discarded.
package console

import (
	"strconv"

	"github.com/liftdesk/liftdesk/internal/api"
	"github.com/liftdesk/liftdesk/internal/errors"
	"github.com/liftdesk/liftdesk/internal/logging"
)

// Core holds the console state between user input and network completions.
type Core struct {
	records []api.WorkoutRecord
	query   string

	loading  bool
	fetchSeq int

	draft        *Draft
	deleteTarget *api.WorkoutRecord

	errorMsg string
	infoMsg  string

	logger *logging.Logger
}

// Option configures a Core.
type Option func(*Core)

// WithLogger sets the logger used for state transition logging.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Core) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty console core.
func New(opts ...Option) *Core {
	c := &Core{
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("console")
	return c
}

// Records returns the committed list in server order.
func (c *Core) Records() []api.WorkoutRecord {
	return c.records
}

// Record returns the committed record with the given id.
func (c *Core) Record(id int) (api.WorkoutRecord, bool) {
	for _, rec := range c.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return api.WorkoutRecord{}, false
}

// Query returns the search query of the most recently issued fetch.
func (c *Core) Query() string {
	return c.query
}

// Loading reports whether the most recently issued fetch is still
// outstanding.
func (c *Core) Loading() bool {
	return c.loading
}

// Editing reports whether an edit draft is open.
func (c *Core) Editing() bool {
	return c.draft != nil
}

// Draft returns the open edit draft, or nil when none is open.
func (c *Core) Draft() *Draft {
	return c.draft
}

// ConfirmingDelete reports whether a delete is awaiting confirmation.
func (c *Core) ConfirmingDelete() bool {
	return c.deleteTarget != nil
}

// DeleteTarget returns the record awaiting delete confirmation.
func (c *Core) DeleteTarget() (api.WorkoutRecord, bool) {
	if c.deleteTarget == nil {
		return api.WorkoutRecord{}, false
	}
	return *c.deleteTarget, true
}

// ErrorMessage returns the current user-facing error, or "".
func (c *Core) ErrorMessage() string {
	return c.errorMsg
}

// InfoMessage returns the current user-facing status note, or "".
func (c *Core) InfoMessage() string {
	return c.infoMsg
}

// ClearMessages drops the current error and info messages. The UI calls
// this on ordinary input so stale notices do not linger across keystrokes.
func (c *Core) ClearMessages() {
	c.errorMsg = ""
	c.infoMsg = ""
}

// StartFetch records the intent to fetch the list for query: it updates
// the active query, enters the loading state, clears any prior messages,
// and returns the sequence number the completion must be applied with.
func (c *Core) StartFetch(query string) int {
	c.query = query
	c.loading = true
	c.errorMsg = ""
	c.infoMsg = ""
	c.fetchSeq++
	c.logger.Debug("fetch started", "seq", c.fetchSeq, "query", query)
	return c.fetchSeq
}

// ApplyFetch applies a fetch completion. A completion whose sequence
// number is not the most recently issued one is discarded without touching
// any state, so a slow response can never overwrite the result of a newer
// search. On success the committed list is replaced wholesale; on failure
// the previous list stays and the error is surfaced. Reports whether the
// completion was applied.
func (c *Core) ApplyFetch(seq int, records []api.WorkoutRecord, fetchErr error) bool {
	if seq != c.fetchSeq {
		c.logger.Debug("stale fetch discarded", "seq", seq, "latest", c.fetchSeq)
		return false
	}
	c.loading = false
	if fetchErr != nil {
		c.errorMsg = errors.UserMessage(fetchErr)
		c.logger.Warn("fetch failed", "seq", seq, "error", fetchErr.Error())
		return true
	}
	c.records = records
	c.logger.Debug("fetch applied", "seq", seq, "count", len(records))
	return true
}

// BeginEdit snapshots the committed record with the given id into a fresh
// draft. Any previously open draft is discarded: at most one draft exists
// at a time.
func (c *Core) BeginEdit(id int) error {
	rec, ok := c.Record(id)
	if !ok {
		return errors.NewNotFoundError("workout", strconv.Itoa(id))
	}
	c.draft = newDraft(rec)
	c.errorMsg = ""
	c.infoMsg = ""
	c.logger.Debug("edit opened", "id", id)
	return nil
}

// CancelEdit discards the open draft. The committed list is untouched no
// matter what the operator typed into the draft.
func (c *Core) CancelEdit() {
	if c.draft == nil {
		return
	}
	c.logger.Debug("edit cancelled", "id", c.draft.ID)
	c.draft = nil
	c.errorMsg = ""
}

// SetDraftField writes one field of the open draft. No effect when no
// draft is open.
func (c *Core) SetDraftField(field DraftField, value string) {
	if c.draft == nil {
		return
	}
	c.draft.Set(field, value)
}

// SubmitDraft validates the open draft and, when it passes, returns the
// record to send to the server. A validation failure surfaces the rule
// message, keeps the draft open, and reports ok=false: the caller must not
// issue a network call in that case.
func (c *Core) SubmitDraft() (api.WorkoutRecord, bool) {
	if c.draft == nil {
		return api.WorkoutRecord{}, false
	}
	c.errorMsg = ""
	c.infoMsg = ""
	rec, err := c.draft.Record()
	if err != nil {
		c.errorMsg = errors.UserMessage(err)
		c.logger.Debug("draft rejected", "id", c.draft.ID, "error", err.Error())
		return api.WorkoutRecord{}, false
	}
	c.logger.Debug("draft submitted", "id", rec.ID)
	return rec, true
}

// ApplySave applies a save completion. Success replaces the matching
// committed record in place, closes the draft, and clears the error;
// failure surfaces the message and keeps the draft open so the operator
// can retry or cancel.
func (c *Core) ApplySave(record api.WorkoutRecord, saveErr error) {
	if saveErr != nil {
		c.errorMsg = errors.UserMessage(saveErr)
		c.logger.Warn("save failed", "id", record.ID, "error", saveErr.Error())
		return
	}
	for i := range c.records {
		if c.records[i].ID == record.ID {
			c.records[i] = record
			break
		}
	}
	if c.draft != nil && c.draft.ID == record.ID {
		c.draft = nil
	}
	c.errorMsg = ""
	c.infoMsg = "Workout updated"
	c.logger.Info("save applied", "id", record.ID)
}

// RequestDelete opens the confirmation gate for the record with the given
// id. Nothing reaches the network until the operator confirms.
func (c *Core) RequestDelete(id int) error {
	rec, ok := c.Record(id)
	if !ok {
		return errors.NewNotFoundError("workout", strconv.Itoa(id))
	}
	c.deleteTarget = &rec
	c.errorMsg = ""
	c.infoMsg = ""
	c.logger.Debug("delete requested", "id", id)
	return nil
}

// CancelDelete closes the confirmation gate. No state changes and no
// network call follows.
func (c *Core) CancelDelete() {
	if c.deleteTarget == nil {
		return
	}
	c.logger.Debug("delete cancelled", "id", c.deleteTarget.ID)
	c.deleteTarget = nil
}

// ConfirmDelete closes the gate and returns the id the caller must now
// delete against the server. ok=false means no delete was pending and
// nothing should be issued.
func (c *Core) ConfirmDelete() (int, bool) {
	if c.deleteTarget == nil {
		return 0, false
	}
	id := c.deleteTarget.ID
	c.deleteTarget = nil
	c.errorMsg = ""
	c.infoMsg = ""
	c.logger.Debug("delete confirmed", "id", id)
	return id, true
}

// ApplyDelete applies a delete completion. Success removes the record with
// the given id from the committed list; failure leaves the list unchanged
// and surfaces the message.
func (c *Core) ApplyDelete(id int, deleteErr error) {
	if deleteErr != nil {
		c.errorMsg = errors.UserMessage(deleteErr)
		c.logger.Warn("delete failed", "id", id, "error", deleteErr.Error())
		return
	}
	records := make([]api.WorkoutRecord, 0, len(c.records))
	for _, rec := range c.records {
		if rec.ID != id {
			records = append(records, rec)
		}
	}
	c.records = records
	c.infoMsg = "Workout deleted"
	c.logger.Info("delete applied", "id", id)
}
