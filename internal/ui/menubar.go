package ui

import (
	"fmt"

	"ble-locator.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, demoMode bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	mode := ""
	if demoMode {
		mode = StyleMenuLabel.Render("DEMO MODE ")
	}

	left := StyleMenuKey.Render(title) + menu
	gap := width - lipgloss.Width(left) - lipgloss.Width(mode)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleMenuBar.Width(width).Render(left + padding + mode)
}
