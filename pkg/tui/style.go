package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray   = "#353b52"
	colorWhite  = "#ffffff"
	colorGreen  = "#acfab4"
	colorRed    = "#e61f44"
	colorRedDim = "#d06178"
	colorPurple = "#b9a3eb"
	colorBlue   = "#89ddff"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPurple)).
			Padding(0, 1)
)
