package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceAtMeasuredPower(t *testing.T) {
	// At exactly the calibrated 1m RSSI the model must return 1 meter.
	assert.InDelta(t, 1.0, Distance(-59, -59, 2.0), 1e-9)
}

func TestDistanceOneDecade(t *testing.T) {
	// 20 dB below the 1m reference with n=2 is one decade: 10 meters.
	assert.InDelta(t, 10.0, Distance(-79, -59, 2.0), 1e-9)
}

func TestDistanceMonotonicInRSSI(t *testing.T) {
	// Stronger signal must always mean shorter estimated range.
	prev := Distance(-30, -59, 2.5)
	for rssi := -31.0; rssi >= -100; rssi-- {
		d := Distance(rssi, -59, 2.5)
		assert.Greater(t, d, prev, "distance must grow as RSSI drops (rssi=%v)", rssi)
		prev = d
	}
}

func TestDistanceAlwaysPositive(t *testing.T) {
	for _, rssi := range []float64{40, 0, -1, -59, -120} {
		assert.Positive(t, Distance(rssi, -59, 2.0))
	}
}

func TestRSSIAtInvertsDistance(t *testing.T) {
	for _, d := range []float64{0.5, 1, 2.5, 10, 30} {
		rssi := RSSIAt(d, -59, 2.0)
		assert.InDelta(t, d, Distance(rssi, -59, 2.0), 1e-9)
	}
}
