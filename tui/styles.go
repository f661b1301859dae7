package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#A78BFA")
	greenColor   = lipgloss.Color("#10B981")
	amberColor   = lipgloss.Color("#F59E0B")
	redColor     = lipgloss.Color("#F87171")
	mutedColor   = lipgloss.Color("#9CA3AF")
	textColor    = lipgloss.Color("#F9FAFB")
	borderColor  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2).
			Width(48)

	nameStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(textColor).
			Background(primaryColor)

	buttonDisabledStyle = buttonStyle.
				Foreground(mutedColor).
				Background(lipgloss.Color("#374151"))

	endButtonStyle = buttonStyle.Background(redColor)

	avatarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(borderColor)

	avatarDoneStyle = avatarStyle.BorderForeground(greenColor).Foreground(greenColor)

	errorStyle = lipgloss.NewStyle().Foreground(redColor).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(amberColor)
	doneStyle  = lipgloss.NewStyle().Foreground(greenColor).Bold(true)
)
