package ui

import (
	"fmt"
	"strings"

	"ble-locator.klederson.com/internal/locate"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with the session status text
// and the current fix, if any.
func RenderStatusBar(width int, status string, beaconCount int, fix *locate.Fix) string {
	sty := StyleStatusScanning
	if strings.Contains(status, "error") || strings.Contains(status, "denied") {
		sty = StyleStatusError
	}

	content := sty.Render(status)

	info := fmt.Sprintf("  Beacons: %d", beaconCount)
	if fix != nil {
		info += fmt.Sprintf("  Position: (%.2f, %.2f)", fix.X, fix.Y)
	}
	content += StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
