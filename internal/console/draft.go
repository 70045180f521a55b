package console

import (
	"strconv"
	"strings"

	"github.com/liftdesk/liftdesk/internal/api"
	"github.com/liftdesk/liftdesk/internal/errors"
)

// DraftField identifies one editable field of a Draft.
type DraftField int

const (
	// FieldWorkoutType is the workout type field.
	FieldWorkoutType DraftField = iota
	// FieldDuration is the duration field, in minutes.
	FieldDuration
	// FieldCalories is the calories burned field.
	FieldCalories
)

// String returns the display label for the field.
func (f DraftField) String() string {
	switch f {
	case FieldWorkoutType:
		return "Workout type"
	case FieldDuration:
		return "Duration (min)"
	case FieldCalories:
		return "Calories burned"
	default:
		return "Unknown"
	}
}

// DraftFields lists the editable fields in display and validation order.
func DraftFields() []DraftField {
	return []DraftField{FieldWorkoutType, FieldDuration, FieldCalories}
}

// Draft is the transient edit copy of a single workout record. The numeric
// fields hold the raw text the operator typed; they are parsed during
// validation, so a non-numeric entry fails the same rule as a non-positive
// one. Mutating a draft never touches the committed list.
type Draft struct {
	ID        int
	UserName  string
	UserEmail string
	ImageURL  string

	WorkoutType string
	Duration    string
	Calories    string
}

// newDraft snapshots a committed record into a fresh draft.
func newDraft(rec api.WorkoutRecord) *Draft {
	return &Draft{
		ID:          rec.ID,
		UserName:    rec.UserName,
		UserEmail:   rec.UserEmail,
		ImageURL:    rec.ImageURL,
		WorkoutType: rec.WorkoutType,
		Duration:    strconv.Itoa(rec.Duration),
		Calories:    strconv.Itoa(rec.CaloriesBurned),
	}
}

// Set replaces the value of one editable field.
func (d *Draft) Set(field DraftField, value string) {
	switch field {
	case FieldWorkoutType:
		d.WorkoutType = value
	case FieldDuration:
		d.Duration = value
	case FieldCalories:
		d.Calories = value
	}
}

// Value returns the current value of one editable field.
func (d *Draft) Value(field DraftField) string {
	switch field {
	case FieldWorkoutType:
		return d.WorkoutType
	case FieldDuration:
		return d.Duration
	case FieldCalories:
		return d.Calories
	default:
		return ""
	}
}

// Validate checks the draft rules in a fixed order and returns the first
// violation. A nil return means the draft is ready to submit.
func (d *Draft) Validate() error {
	if len(d.WorkoutType) < 3 {
		return errors.NewValidationError("Workout type must be at least 3 characters").
			WithField("workout_type").
			WithValue(d.WorkoutType)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.Duration)); err != nil || n <= 0 {
		return errors.NewValidationError("Duration must be a positive number").
			WithField("duration").
			WithValue(d.Duration)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.Calories)); err != nil || n <= 0 {
		return errors.NewValidationError("Calories burned must be a positive number").
			WithField("calories_burned").
			WithValue(d.Calories)
	}
	return nil
}

// Record validates the draft and assembles the full record to submit,
// carrying the server-assigned fields over unchanged.
func (d *Draft) Record() (api.WorkoutRecord, error) {
	if err := d.Validate(); err != nil {
		return api.WorkoutRecord{}, err
	}

	// Validate already proved these parse.
	duration, _ := strconv.Atoi(strings.TrimSpace(d.Duration))
	calories, _ := strconv.Atoi(strings.TrimSpace(d.Calories))

	return api.WorkoutRecord{
		ID:             d.ID,
		UserName:       d.UserName,
		UserEmail:      d.UserEmail,
		WorkoutType:    d.WorkoutType,
		Duration:       duration,
		CaloriesBurned: calories,
		ImageURL:       d.ImageURL,
	}, nil
}
