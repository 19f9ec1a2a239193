package locate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrilaterateExactRecovery(t *testing.T) {
	p1 := Point{0, 0}
	p2 := Point{5, 0}
	p3 := Point{0, 5}

	// Target (1,1) with exact ranges.
	r1 := math.Sqrt(2)
	r2 := math.Sqrt(17)
	r3 := math.Sqrt(17)

	fix, err := Trilaterate(p1, p2, p3, r1, r2, r3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fix.X, 1e-6)
	assert.InDelta(t, 1.0, fix.Y, 1e-6)
	assert.False(t, fix.ComputedAt.IsZero())
}

func TestTrilaterateCoincidentAnchors(t *testing.T) {
	_, err := Trilaterate(Point{0, 0}, Point{0, 0}, Point{5, 0}, 1, 2, 3)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestTrilaterateCollinearAnchors(t *testing.T) {
	_, err := Trilaterate(Point{0, 0}, Point{1, 1}, Point{2, 2}, 1, 1, 1)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestTrilaterateAnchorOrigin(t *testing.T) {
	// Receiver sitting on anchor 1.
	fix, err := Trilaterate(Point{0, 0}, Point{4, 0}, Point{0, 4}, 0, 4, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fix.X, 1e-9)
	assert.InDelta(t, 0.0, fix.Y, 1e-9)
}

func TestTrilaterateTranslationInvariant(t *testing.T) {
	// Shifting all anchors by a fixed offset shifts the fix by the same offset.
	const ox, oy = 12.5, -7.25
	base, err := Trilaterate(Point{0, 0}, Point{5, 0}, Point{0, 5},
		math.Sqrt(2), math.Sqrt(17), math.Sqrt(17))
	require.NoError(t, err)

	shifted, err := Trilaterate(Point{ox, oy}, Point{5 + ox, oy}, Point{ox, 5 + oy},
		math.Sqrt(2), math.Sqrt(17), math.Sqrt(17))
	require.NoError(t, err)

	assert.InDelta(t, base.X+ox, shifted.X, 1e-6)
	assert.InDelta(t, base.Y+oy, shifted.Y, 1e-6)
}
