package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// PageBadgeStyle styles the "page x/y" badge in the header.
	PageBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// AuthorStyle styles the item author.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles captions.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// CardStyle frames the item in view.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// PlayingStyle marks an item that is playing.
	PlayingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// PausedStyle marks an item that is selected but not playing.
	PausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// NoticeStyle styles paging notices such as end of feed.
	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BD5CA")).
			Italic(true)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
