package tui

import (
	"fmt"
	"strings"

	"github.com/liftdesk/liftdesk/internal/api"
	"github.com/liftdesk/liftdesk/internal/console"
	"github.com/liftdesk/liftdesk/internal/tui/styles"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Header.Width(m.width - 4).Render("LiftDesk Workout Console"))
	b.WriteString("\n")

	b.WriteString(m.renderSearch())
	b.WriteString("\n\n")

	switch {
	case m.core.ConfirmingDelete():
		b.WriteString(m.renderConfirmOverlay())
	case m.core.Editing():
		b.WriteString(m.renderEditOverlay())
	default:
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderSearch() string {
	bar := styles.SearchBar
	if m.searching {
		bar = styles.SearchBarActive
	}
	width := m.width - 4
	if width > 60 {
		width = 60
	}
	return bar.Width(width).Render(m.searchInput.View())
}

func (m Model) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("  %-4s %-20s %-26s %-16s %6s %6s",
		"ID", "USER", "EMAIL", "TYPE", "MIN", "KCAL")
	b.WriteString(styles.TableHeader.Render(header))
	b.WriteString("\n")

	records := m.core.Records()
	if len(records) == 0 {
		if m.core.Loading() {
			b.WriteString(styles.Muted.Render("  Fetching workouts..."))
		} else {
			b.WriteString(styles.Muted.Render("  No workouts match this search."))
		}
		b.WriteString("\n")
		return b.String()
	}

	// The visible window is the page the cursor sits on.
	start, end := m.pageBounds(len(records))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(records[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// pageBounds returns the half-open row range of the cursor's page.
func (m Model) pageBounds(total int) (int, int) {
	if m.pageSize <= 0 {
		return 0, total
	}
	start := (m.cursor / m.pageSize) * m.pageSize
	if start >= total {
		start = 0
	}
	end := start + m.pageSize
	if end > total {
		end = total
	}
	return start, end
}

func (m Model) renderRow(rec api.WorkoutRecord, selected bool) string {
	line := fmt.Sprintf("%-4d %-20s %-26s %-16s %6d %6d",
		rec.ID,
		truncate(rec.UserName, 20),
		truncate(rec.UserEmail, 26),
		truncate(rec.WorkoutType, 16),
		rec.Duration,
		rec.CaloriesBurned)

	if selected {
		return styles.RowCursor.Render("> ") + styles.RowSelected.Render(line)
	}
	return "  " + styles.Row.Render(line)
}

func (m Model) renderEditOverlay() string {
	d := m.core.Draft()
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.OverlayTitle.Render(fmt.Sprintf("Edit workout %d", d.ID)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("%s <%s>", d.UserName, d.UserEmail)))
	b.WriteString("\n\n")

	for i, field := range console.DraftFields() {
		label := fmt.Sprintf("%-16s", field.String())
		if i == m.fieldIndex {
			b.WriteString(styles.FieldLabelActive.Render(label))
			b.WriteString(" ")
			b.WriteString(m.fieldInput.View())
		} else {
			b.WriteString(styles.FieldLabel.Render(label))
			b.WriteString(" ")
			b.WriteString(styles.Text.Render(d.Value(field)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("tab next field, enter save, esc cancel"))
	return styles.Overlay.Render(b.String())
}

func (m Model) renderConfirmOverlay() string {
	target, ok := m.core.DeleteTarget()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.OverlayTitle.Render(fmt.Sprintf("Delete workout %d?", target.ID)))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("%s - %s, %d min, %d kcal",
		target.UserName, target.WorkoutType, target.Duration, target.CaloriesBurned)))
	b.WriteString("\n\n")
	b.WriteString(styles.WarningMsg.Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("y delete, n keep"))
	return styles.Overlay.Render(b.String())
}

func (m Model) renderStatus() string {
	if msg := m.core.ErrorMessage(); msg != "" {
		return styles.ErrorMsg.Render("Error: " + msg)
	}
	if msg := m.core.InfoMessage(); msg != "" {
		return styles.SuccessMsg.Render(msg)
	}
	if m.core.Loading() {
		return styles.Muted.Render("Fetching workouts...")
	}

	n := len(m.core.Records())
	label := fmt.Sprintf("%d workouts", n)
	if n == 1 {
		label = "1 workout"
	}
	if q := m.core.Query(); q != "" {
		label += fmt.Sprintf(" matching %q", q)
	}
	if m.pageSize > 0 && n > m.pageSize {
		pages := (n + m.pageSize - 1) / m.pageSize
		label += fmt.Sprintf(" (page %d/%d)", m.cursor/m.pageSize+1, pages)
	}
	return styles.Muted.Render(label)
}

func (m Model) renderHelp() string {
	helpStyle := styles.HelpBar
	keyStyle := styles.HelpKey

	switch {
	case m.core.ConfirmingDelete():
		return helpStyle.Render(
			keyStyle.Render("y") + " delete  " +
				keyStyle.Render("n") + " keep",
		)
	case m.core.Editing():
		return helpStyle.Render(
			keyStyle.Render("tab") + " next field  " +
				keyStyle.Render("enter") + " save  " +
				keyStyle.Render("esc") + " cancel",
		)
	case m.searching:
		return helpStyle.Render(
			keyStyle.Render("enter") + " done  " +
				keyStyle.Render("esc") + " close search",
		)
	}

	return helpStyle.Render(
		keyStyle.Render("j/k") + " navigate  " +
			keyStyle.Render("/") + " search  " +
			keyStyle.Render("e") + " edit  " +
			keyStyle.Render("d") + " delete  " +
			keyStyle.Render("r") + " refresh  " +
			keyStyle.Render("q") + " quit",
	)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
