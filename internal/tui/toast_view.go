package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/folio/internal/core/notify"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/tui/components"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications and composites them as an overlay.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack as a single string with toasts stacked
// vertically (oldest at top, newest at bottom).
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon = styles.IconError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + t.notification.Message
	if t.repeats > 0 {
		content += fmt.Sprintf(" (×%d)", t.repeats+1)
	}
	return style.Width(toastWidth).Render(content)
}

// Overlay draws the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	x := max(width-lipgloss.Width(toastContent)-1, 0)
	y := max(height-lipgloss.Height(toastContent), 0)
	return components.PlaceOverlay(x, y, toastContent, background)
}
