package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#34D399") // Emerald (emerald-400)
	SecondaryColor = lipgloss.Color("#60A5FA") // Blue (blue-400)
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray (brighter for readability)
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1).
		PaddingBottom(1)

	// Search bar
	SearchBar = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	SearchBarActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	SearchPrompt = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Workout table
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(MutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(BorderColor)

	Row = lipgloss.NewStyle().
		Foreground(TextColor)

	RowSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(SurfaceColor)

	RowCursor = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Modal overlays (edit form, delete confirmation)
	Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2)

	OverlayTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	FieldLabel = lipgloss.NewStyle().
			Foreground(MutedColor)

	FieldLabelActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextColor)

	// Error message
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Success message
	SuccessMsg = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Warning message
	WarningMsg = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Footer / status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)
)
