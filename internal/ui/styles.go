package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("25")
	accentColor  = lipgloss.Color("220")
	mutedColor   = lipgloss.Color("244")

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(primaryColor).
			Padding(0, 1)
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Background(primaryColor)
	navStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(primaryColor).
			Padding(0, 1)
	navActiveStyle = navStyle.
			Bold(true).
			Foreground(primaryColor).
			Background(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	launcherStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(primaryColor).
			Padding(0, 1)

	chatTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(primaryColor).
			Padding(0, 1)
	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	userTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	thinkingStyle  = lipgloss.NewStyle().Italic(true).Foreground(mutedColor)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("150"))
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(accentColor)

	adminTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	fileLabelStyle  = lipgloss.NewStyle().Bold(true)
	buttonStyle     = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(primaryColor).
			Padding(0, 2)
	buttonDisabledStyle = buttonStyle.
				Foreground(lipgloss.Color("246")).
				Background(lipgloss.Color("238"))
	pickerFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	statusErrorStyle   = statusStyle(lipgloss.Color("160"))
	statusSuccessStyle = statusStyle(lipgloss.Color("34"))
	statusInfoStyle    = statusStyle(lipgloss.Color("33"))
)

func statusStyle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true).
		BorderForeground(c).
		Foreground(c).
		Padding(0, 1)
}

func tabStyle(active bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.NormalBorder(), false, false, true, false)
	if active {
		return style.Bold(true).Foreground(primaryColor).BorderForeground(primaryColor)
	}
	return style.Foreground(mutedColor).BorderForeground(lipgloss.Color("236"))
}

func chatPanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1)
}
