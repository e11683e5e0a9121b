package app

import "charm.land/lipgloss/v2"

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tabStyle                 = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))
	tabActiveStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)
	tabDirtyStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("236"))
	tabBarFillStyle          = lipgloss.NewStyle().Background(lipgloss.Color("234"))
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	dividerStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	menuDropStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	dialogHeaderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	historyBorderStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69"))
	loadErrorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	placeholderStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	editBadgeStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
)
