package report

import (
	"context"
	"sync"
	"time"

	"ble-locator.klederson.com/internal/locate"
	"go.uber.org/zap"
)

// Scheduler periodically re-pushes the most recently scheduled position to a
// sink. At most one schedule is active; Schedule replaces any prior one. A
// schedule fires first at one interval after Schedule and then every interval
// until replaced or stopped. Push failures are logged and otherwise ignored;
// they never stop or reset the cadence.
type Scheduler struct {
	interval time.Duration
	sink     Sink
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(interval time.Duration, sink Sink, log *zap.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		sink:     sink,
		log:      log,
	}
}

// Schedule cancels any active schedule and starts a new one reporting fix.
// The fix value is captured now; later fixes require another Schedule call.
func (s *Scheduler) Schedule(fix locate.Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.run(ctx, fix)
}

func (s *Scheduler) run(ctx context.Context, fix locate.Fix) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Fire and forget: push latency must not delay the next tick,
			// and canceling the schedule must not abort an in-flight push.
			go s.push(context.WithoutCancel(ctx), fix)
		}
	}
}

func (s *Scheduler) push(ctx context.Context, fix locate.Fix) {
	if err := s.sink.Push(ctx, fix.X, fix.Y); err != nil {
		s.log.Warn("position report failed",
			zap.Float64("x", fix.X),
			zap.Float64("y", fix.Y),
			zap.Error(err))
	}
}

// Stop cancels the active schedule, if any. In-flight pushes are not aborted
// beyond their context being canceled; no further fires occur.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
