package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/flextile/internal/wm"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	focusedTileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("110"))
)

// renderDisplayBar renders one tab per display.
func renderDisplayBar(displays []wm.DisplayState, active, width int) string {
	var tabs []string
	for i, d := range displays {
		label := fmt.Sprintf("%d:display %d (%d)", i+1, d.DisplayID, len(d.Windows))
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	if len(tabs) == 0 {
		tabs = append(tabs, inactiveTabStyle.Render("no displays"))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderPlaceholder renders centered filler text for the content area.
func renderPlaceholder(msg string, width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(msg)
}

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, display *wm.DisplayState, width int) string {
	var status string
	if connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{dot + " daemon connected"}
		if display != nil {
			parts = append(parts,
				"shape:"+display.Shape,
				"mode:"+display.AddMode,
				fmt.Sprintf("mementos:%d", display.Mementos),
			)
		}
		status = strings.Join(parts, "  ")
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " daemon not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int, lastErr string) string {
	if lastErr != "" {
		return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(errorStyle.Render(lastErr))
	}
	help := "hjkl: focus  HJKL: move  n/p: next/prev  +/-: grow  0: reset  m: minimize  b/v: mode  r: retile  d: debug  tab: display  q: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
