package styles

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#15616D")
	AccentColor  = lipgloss.Color("#FF7D00")
	SuccessColor = lipgloss.Color("#22C55E")
	ErrorColor   = lipgloss.Color("#EF4444")
	MutedColor   = lipgloss.Color("#6B7280")
	SurfaceColor = lipgloss.Color("#1F2937")
	TextColor    = lipgloss.Color("#F8FAFC")

	Muted = lipgloss.NewStyle().Foreground(MutedColor)

	Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(PrimaryColor).
		Padding(0, 1)

	NavActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			Underline(true).
			Padding(0, 2)

	NavInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Padding(0, 1)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Padding(0, 1)

	StatusBar = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Padding(0, 1)

	CardSelected = Card.
			BorderForeground(AccentColor)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 1)

	Price = lipgloss.NewStyle().
		Bold(true).
		Foreground(AccentColor)

	Chip = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	ErrorBanner = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)

	InputBlurred = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	Suggestion = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 2)

	SuggestionSelected = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 2)

	StatusSuccess = lipgloss.NewStyle().Foreground(SuccessColor)

	Notification = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Padding(0, 1)
)
