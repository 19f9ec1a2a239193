package ui

// RenderPlotPanel wraps plot content with a styled border.
// The actual plot rendering is done externally to avoid import cycles.
func RenderPlotPanel(width, height int, plotContent, legend string) string {
	content := plotContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}
