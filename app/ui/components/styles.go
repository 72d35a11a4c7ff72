package components

import "github.com/charmbracelet/lipgloss"

const (
	ColorAccent   = "#7D56F4"
	ColorMuted    = "#626262"
	ColorAuthor   = "#04B575"
	ColorError    = "#FF5F87"
	ColorInfo     = "#5FAFFF"
	ColorSkeleton = "#3A3A3A"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent))

	AuthorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAuthor)).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	ContentStyle = lipgloss.NewStyle()

	PostStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorMuted)).
			Padding(0, 1)

	SelectedPostStyle = PostStyle.
				BorderForeground(lipgloss.Color(ColorAccent))

	CommentStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(ColorMuted)).
			PaddingLeft(1).
			MarginLeft(2)

	SkeletonStyle = CommentStyle.
			Foreground(lipgloss.Color(ColorSkeleton))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInfo)).
			Italic(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	DangerButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorError))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color(ColorAccent)).
			Padding(0, 1)
)
