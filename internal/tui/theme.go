package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorBrand   = colorMauve
	colorFocus   = colorLavender
	colorLocked  = colorYellow
	colorError   = colorRed
	colorInfo    = colorTeal
	colorMuted   = colorOverlay1
	colorSubtle  = colorSubtext0
	colorRowBg   = colorSurface0
	colorToastBg = colorSurface1
	colorBarBg   = colorMantle
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	boardStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	boardClickStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	anchorStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Foreground(colorText).Align(lipgloss.Center).AlignVertical(lipgloss.Center)
	anchorLockedStyle = anchorStyle.BorderForeground(colorLocked)
	lockStyle         = lipgloss.NewStyle().Foreground(colorLocked)
	rowStyle          = lipgloss.NewStyle().Foreground(colorText).Background(colorRowBg).Padding(0, 1)
	toastStyle        = lipgloss.NewStyle().Foreground(colorInfo).Background(colorToastBg).Padding(0, 1)
	footerStyle       = lipgloss.NewStyle().Foreground(colorText).Background(colorBarBg)
	statusErrStyle    = lipgloss.NewStyle().Foreground(colorError)
	queryStyle        = lipgloss.NewStyle().Foreground(colorFocus)
)
