package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the plot panel and beacon list horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, plotPanel, beaconList, statusBar string, width int) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, plotPanel, beaconList)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
