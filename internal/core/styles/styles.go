// Package styles holds the theme palettes and the shared lipgloss styles of
// the editor and the CLI.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Editor chrome.
	TabActiveStyle     lipgloss.Style
	TabInactiveStyle   lipgloss.Style
	PanelStyle         lipgloss.Style
	PanelFocusedStyle  lipgloss.Style
	CursorStyle        lipgloss.Style
	DisabledStyle      lipgloss.Style
	HelpStyle          lipgloss.Style
	StatusBarStyle     lipgloss.Style
	StatusDirtyStyle   lipgloss.Style
	StatusWarningStyle lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// Document preview.
	DocTitleStyle     lipgloss.Style
	DocHeadingStyle   lipgloss.Style
	DocLabelStyle     lipgloss.Style
	DocTextStyle      lipgloss.Style
	DocMutedStyle     lipgloss.Style
	DocTotalStyle     lipgloss.Style
	DocRuleStyle      lipgloss.Style
	DocHandleStyle    lipgloss.Style
	DocWatermarkStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TabActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	TabInactiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(ColorMuted)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	PanelFocusedStyle = PanelStyle.
		BorderForeground(ColorPrimary)
	CursorStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground).
		Bold(true)
	DisabledStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	StatusDirtyStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	StatusWarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(ColorPrimary).Foreground(ColorForeground)
	ToastWarningStyle = toast.BorderForeground(ColorWarning).Foreground(ColorWarning)
	ToastErrorStyle = toast.BorderForeground(ColorError).Foreground(ColorError)

	DocTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DocHeadingStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	DocLabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	DocTextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DocMutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	DocTotalStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	DocRuleStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)
	DocHandleStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)
	DocWatermarkStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
