package report

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ble-locator.klederson.com/internal/locate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingSink captures pushes and optionally fails every call.
type recordingSink struct {
	mu     sync.Mutex
	pushes []locate.Point
	err    error
}

func (s *recordingSink) Push(ctx context.Context, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes = append(s.pushes, locate.Point{X: x, Y: y})
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pushes)
}

func (s *recordingSink) all() []locate.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]locate.Point, len(s.pushes))
	copy(out, s.pushes)
	return out
}

func waitFor(t *testing.T, cond func() bool, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, fmt.Sprintf("condition not met within %v", timeout))
}

func fixAt(x, y float64) locate.Fix {
	return locate.Fix{Point: locate.Point{X: x, Y: y}, ComputedAt: time.Now()}
}

func TestScheduleFiresRepeatedly(t *testing.T) {
	sink := &recordingSink{}
	sch := NewScheduler(20*time.Millisecond, sink, zap.NewNop())
	defer sch.Stop()

	sch.Schedule(fixAt(1, 2))

	waitFor(t, func() bool { return sink.count() >= 3 }, 2*time.Second)

	for _, p := range sink.all() {
		assert.Equal(t, locate.Point{X: 1, Y: 2}, p)
	}
}

func TestScheduleDoesNotFireBeforeInterval(t *testing.T) {
	sink := &recordingSink{}
	sch := NewScheduler(time.Hour, sink, zap.NewNop())
	defer sch.Stop()

	sch.Schedule(fixAt(1, 2))
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, sink.count(), "first push must wait one full interval")
}

func TestScheduleSupersedesPrevious(t *testing.T) {
	sink := &recordingSink{}
	sch := NewScheduler(30*time.Millisecond, sink, zap.NewNop())
	defer sch.Stop()

	sch.Schedule(fixAt(1, 1))
	// Replace before the first interval elapses.
	sch.Schedule(fixAt(2, 2))

	waitFor(t, func() bool { return sink.count() >= 2 }, 2*time.Second)

	for _, p := range sink.all() {
		assert.Equal(t, locate.Point{X: 2, Y: 2}, p,
			"superseded schedule must never reach the sink")
	}
}

func TestStopPreventsFurtherFires(t *testing.T) {
	sink := &recordingSink{}
	sch := NewScheduler(20*time.Millisecond, sink, zap.NewNop())

	sch.Schedule(fixAt(1, 1))
	waitFor(t, func() bool { return sink.count() >= 1 }, 2*time.Second)

	sch.Stop()
	n := sink.count()
	time.Sleep(80 * time.Millisecond)

	// One tick may have been in flight at Stop; nothing beyond that.
	assert.LessOrEqual(t, sink.count(), n+1)
}

func TestStopIdempotent(t *testing.T) {
	sch := NewScheduler(time.Hour, &recordingSink{}, zap.NewNop())
	sch.Stop()
	sch.Schedule(fixAt(1, 1))
	sch.Stop()
	sch.Stop()
}

func TestPushFailureDoesNotStopSchedule(t *testing.T) {
	sink := &recordingSink{err: assert.AnError}
	sch := NewScheduler(20*time.Millisecond, sink, zap.NewNop())
	defer sch.Stop()

	sch.Schedule(fixAt(3, 4))

	// Failures are logged and ignored; the cadence keeps going.
	waitFor(t, func() bool { return sink.count() >= 3 }, 2*time.Second)
}
