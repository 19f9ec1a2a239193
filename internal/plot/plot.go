package plot

import (
	"fmt"
	"math"
	"strings"

	"ble-locator.klederson.com/internal/locate"
	"github.com/charmbracelet/lipgloss"
)

// AspectRatio corrects for terminal cells being roughly twice as tall as
// wide, so world distances look the same on both axes.
const AspectRatio = 0.5

var (
	colorBright = lipgloss.Color("#00FF41")
	colorMid    = lipgloss.Color("#008F11")
	colorDim    = lipgloss.Color("#004A0A")
	colorAnchor = lipgloss.Color("#00FFAA")

	styleFix    = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleAnchor = lipgloss.NewStyle().Foreground(colorAnchor).Bold(true)
	styleLabel  = lipgloss.NewStyle().Foreground(colorMid)
	styleDot    = lipgloss.NewStyle().Foreground(colorDim)
	styleLegFix = lipgloss.NewStyle().Foreground(colorBright)
	styleLegAnc = lipgloss.NewStyle().Foreground(colorAnchor)
)

type marker struct {
	col, row int
	symbol   byte
	isFix    bool
	label    string
}

// Render draws the anchors and the current fix on an aspect-corrected grid.
// World bounds are fitted to the plotted points with a margin. A nil fix
// plots anchors only.
func Render(width, height int, anchors []locate.Point, fix *locate.Fix) string {
	if width < 10 || height < 5 || len(anchors) == 0 {
		return ""
	}

	pts := make([]locate.Point, 0, len(anchors)+1)
	pts = append(pts, anchors...)
	if fix != nil {
		pts = append(pts, fix.Point)
	}

	minX, minY, maxX, maxY := bounds(pts)

	spanX := maxX - minX
	spanY := maxY - minY

	// Uniform scale so geometry is not distorted; rows count double via the
	// aspect ratio.
	scale := math.Min(
		float64(width-1)/spanX,
		float64(height-1)/(spanY*AspectRatio))

	markers := make([]marker, 0, len(pts))
	for i, a := range anchors {
		col, row := cell(a, minX, maxY, scale, width, height)
		markers = append(markers, marker{
			col:    col,
			row:    row,
			symbol: byte('1' + i),
			label:  fmt.Sprintf("(%.0f,%.0f)", a.X, a.Y),
		})
	}
	if fix != nil {
		col, row := cell(fix.Point, minX, maxY, scale, width, height)
		markers = append(markers, marker{
			col:    col,
			row:    row,
			symbol: 'X',
			isFix:  true,
			label:  fmt.Sprintf("(%.1f,%.1f)", fix.X, fix.Y),
		})
	}

	return draw(width, height, markers)
}

func bounds(pts []locate.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Margin keeps markers off the border; also handles the all-points-equal
	// span of zero.
	padX := (maxX - minX) * 0.15
	padY := (maxY - minY) * 0.15
	if padX < 1 {
		padX = 1
	}
	if padY < 1 {
		padY = 1
	}
	return minX - padX, minY - padY, maxX + padX, maxY + padY
}

// cell maps a world point to a grid cell. Y grows upward in the world and
// downward on screen.
func cell(p locate.Point, minX, maxY, scale float64, width, height int) (col, row int) {
	col = int(math.Round((p.X - minX) * scale))
	row = int(math.Round((maxY - p.Y) * scale * AspectRatio))
	if col > width-1 {
		col = width - 1
	}
	if row > height-1 {
		row = height - 1
	}
	return col, row
}

func draw(width, height int, markers []marker) string {
	var sb strings.Builder
	for row := 0; row < height; row++ {
	cells:
		for col := 0; col < width; col++ {
			for _, m := range markers {
				if col == m.col && row == m.row {
					if m.isFix {
						sb.WriteString(styleFix.Render(string(m.symbol)))
					} else {
						sb.WriteString(styleAnchor.Render(string(m.symbol)))
					}
					continue cells
				}
				// Label to the right of the marker when it fits.
				lc := col - m.col - 2
				if row == m.row && lc >= 0 && lc < len(m.label) && m.col+2+len(m.label) < width {
					sb.WriteString(styleLabel.Render(string(m.label[lc])))
					continue cells
				}
			}

			if row%2 == 0 && col%4 == 0 {
				sb.WriteString(styleDot.Render("."))
			} else {
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RenderLegend produces the plot legend line.
func RenderLegend(width int) string {
	legend := "   " +
		styleLegAnc.Render("1-3 anchors") +
		"  " +
		styleLegFix.Render("X position")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
