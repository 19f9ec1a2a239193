package scan

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"ble-locator.klederson.com/internal/locate"
)

// mockBeacon is a fake fixed-position transmitter. Its RSSI is synthesized by
// inverting the path loss model from the receiver's true position, so the
// full pipeline recovers a position close to truth.
type mockBeacon struct {
	id        string
	name      string
	pos       locate.Point
	phase     float64
	amplitude float64
}

type mockDistractor struct {
	id       string
	name     string
	baseRSSI float64
	phase    float64
}

// Devices nearby that are not beacons; the name filter must reject these.
var distractorNames = []string{
	"iPhone 15 Pro",
	"Galaxy Buds Pro",
	"MacBook Air",
	"Sony WH-1000XM5",
	"Tile Tracker",
	"",
}

// MockScanner generates fake advertisements for demo mode.
type MockScanner struct {
	beacons     []mockBeacon
	distractors []mockDistractor
	truePos     locate.Point
	power       float64
	pathLossExp float64
	running     atomic.Bool
	cancel      context.CancelFunc
	onAdv       Handler
}

// NewMockScanner creates a demo scanner with one fake beacon per anchor,
// named "<namePrefix>-1"... so they pass the beacon filter, plus a handful
// of distractor devices that must not.
func NewMockScanner(anchors []locate.Point, namePrefix string, measuredPower, pathLossExp float64) *MockScanner {
	beacons := make([]mockBeacon, len(anchors))
	for i, a := range anchors {
		beacons[i] = mockBeacon{
			id:        randomMAC(),
			name:      fmt.Sprintf("%s-%d", namePrefix, i+1),
			pos:       a,
			phase:     rand.Float64() * 2 * math.Pi,
			amplitude: 1 + rand.Float64()*2, // 1-3 dBm fluctuation
		}
	}

	distractors := make([]mockDistractor, len(distractorNames))
	for i, name := range distractorNames {
		distractors[i] = mockDistractor{
			id:       randomMAC(),
			name:     name,
			baseRSSI: -40 - rand.Float64()*50, // -40 to -90 dBm
			phase:    rand.Float64() * 2 * math.Pi,
		}
	}

	// True receiver position: a point inside the anchor triangle.
	var truePos locate.Point
	for _, a := range anchors {
		truePos.X += a.X
		truePos.Y += a.Y
	}
	if len(anchors) > 0 {
		truePos.X /= float64(len(anchors))
		truePos.Y /= float64(len(anchors))
	}

	return &MockScanner{
		beacons:     beacons,
		distractors: distractors,
		truePos:     truePos,
		power:       measuredPower,
		pathLossExp: pathLossExp,
	}
}

// Start begins the mock scanner.
func (s *MockScanner) Start(onAdv Handler, onErr ErrorHandler) error {
	s.onAdv = onAdv
	s.running.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *MockScanner) loop(ctx context.Context) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.running.Load() {
				return
			}
			t += 0.2
			s.emit(t)
		}
	}
}

func (s *MockScanner) emit(t float64) {
	for _, b := range s.beacons {
		dx := b.pos.X - s.truePos.X
		dy := b.pos.Y - s.truePos.Y
		dist := math.Sqrt(dx*dx + dy*dy)

		rssi := locate.RSSIAt(dist, s.power, s.pathLossExp) +
			b.amplitude*math.Sin(t*0.5+b.phase) + (rand.Float64()-0.5)*2

		s.send(Advertisement{ID: b.id, Name: b.name, RSSI: int16(rssi)})
	}

	for _, d := range s.distractors {
		rssi := d.baseRSSI + 5*math.Sin(t*0.3+d.phase) + (rand.Float64()-0.5)*4
		s.send(Advertisement{ID: d.id, Name: d.name, RSSI: int16(rssi)})
	}
}

func (s *MockScanner) send(adv Advertisement) {
	if s.onAdv != nil {
		s.onAdv(adv)
	}
}

// Stop halts the mock scanner.
func (s *MockScanner) Stop() {
	s.running.Store(false)
	if s.cancel != nil {
		s.cancel()
	}
}

func randomMAC() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
