package ui

import (
	"fmt"
	"strings"

	"ble-locator.klederson.com/internal/beacon"
	"ble-locator.klederson.com/internal/config"
)

// RenderBeaconList renders the tracked-beacon panel. The first three entries
// are the solver inputs; their anchor slot is shown next to the name.
func RenderBeaconList(beacons []beacon.Beacon, distances []float64, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 2 {
		innerH = 2
	}

	title := StylePanelTitle.Render(fmt.Sprintf("BEACONS [%d]", len(beacons)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, separator}

	if len(beacons) == 0 {
		lines = append(lines, "", StyleHelp.Render(" No beacons..."), StyleHelp.Render(" Waiting for scan"))
	}

	for i, b := range beacons {
		if len(lines)+3 > innerH {
			break
		}
		lines = append(lines, renderBeaconEntry(b, distances, i, innerW)...)
	}

	for len(lines) < innerH {
		lines = append(lines, "")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	content := strings.Join(lines, "\n")
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(content)

	// lipgloss Height() only sets a minimum; clamp overflow.
	outLines := strings.Split(rendered, "\n")
	if len(outLines) > height {
		outLines = outLines[:height]
	}
	for len(outLines) < height {
		outLines = append(outLines, "")
	}
	return strings.Join(outLines, "\n")
}

func renderBeaconEntry(b beacon.Beacon, distances []float64, i, maxW int) []string {
	name := b.DisplayName()
	nameMax := maxW - 10
	if nameMax < 4 {
		nameMax = 4
	}
	if len(name) > nameMax {
		name = name[:nameMax]
	}

	slot := "   "
	if i < config.AnchorCount {
		slot = StyleBeaconSlot.Render(fmt.Sprintf("#%d ", i+1))
	}

	id := b.ID
	if len(id) > maxW-4 {
		id = id[:maxW-4]
	}

	detail := StyleBeaconRSSI.Render(fmt.Sprintf("%ddBm", b.RSSI))
	if i < len(distances) {
		detail += StyleBeaconDist.Render(fmt.Sprintf("  ~%.1fm", distances[i]))
	}

	return []string{
		" " + slot + StyleBeaconName.Render(name),
		"    " + StyleBeaconID.Render(id),
		"    " + detail,
	}
}
