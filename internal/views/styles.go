package views

import (
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/folioterm/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Lavender)).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Text)).
			Bold(true)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay0))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Text)).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Base)).
			Background(lipgloss.Color(utils.Colours.Blue)).
			Bold(true).
			Padding(0, 2)

	buttonFocusedStyle = buttonStyle.
				Background(lipgloss.Color(utils.Colours.Lavender))

	buttonDisabledStyle = buttonStyle.
				Foreground(lipgloss.Color(utils.Colours.Subtext0)).
				Background(lipgloss.Color(utils.Colours.Surface1))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Green)).
			Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(utils.Colours.Peach)).
				Bold(true)
)
