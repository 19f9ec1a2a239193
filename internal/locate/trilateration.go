package locate

import (
	"errors"
	"time"
)

// ErrDegenerateGeometry is returned when the three anchors are collinear or
// coincide, leaving the linear system without a unique solution.
var ErrDegenerateGeometry = errors.New("degenerate anchor geometry: anchors are collinear or coincide")

// Point is a 2D coordinate in the shared anchor coordinate system (meters).
type Point struct {
	X float64
	Y float64
}

// Fix is a solved receiver position.
type Fix struct {
	Point
	ComputedAt time.Time
}

// Trilaterate solves the receiver position from three anchors and their
// estimated ranges. Subtracting the circle equation of anchor 1 from those of
// anchors 2 and 3 cancels the quadratic terms and leaves a 2x2 linear system,
// which is solved by Cramer's rule.
func Trilaterate(p1, p2, p3 Point, r1, r2, r3 float64) (Fix, error) {
	a := 2 * (p2.X - p1.X)
	b := 2 * (p2.Y - p1.Y)
	c := r1*r1 - r2*r2 - p1.X*p1.X + p2.X*p2.X - p1.Y*p1.Y + p2.Y*p2.Y
	d := 2 * (p3.X - p1.X)
	e := 2 * (p3.Y - p1.Y)
	f := r1*r1 - r3*r3 - p1.X*p1.X + p3.X*p3.X - p1.Y*p1.Y + p3.Y*p3.Y

	denom := a*e - b*d
	if denom == 0 {
		return Fix{}, ErrDegenerateGeometry
	}

	return Fix{
		Point: Point{
			X: (c*e - b*f) / denom,
			Y: (a*f - c*d) / denom,
		},
		ComputedAt: time.Now(),
	}, nil
}
