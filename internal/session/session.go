package session

import (
	"fmt"
	"strings"
	"sync"

	"ble-locator.klederson.com/internal/beacon"
	"ble-locator.klederson.com/internal/config"
	"ble-locator.klederson.com/internal/locate"
	"ble-locator.klederson.com/internal/scan"
	"go.uber.org/zap"
)

// Snapshot is an immutable view of the session state, emitted to the
// subscriber on every meaningful change.
type Snapshot struct {
	Status  string
	Beacons []beacon.Beacon
	Fix     *locate.Fix
}

// Notifier receives state snapshots. Called from the scanner goroutine.
type Notifier func(Snapshot)

// PositionScheduler is the part of the report scheduler the session drives.
type PositionScheduler interface {
	Schedule(locate.Fix)
	Stop()
}

// Session owns one scanning run: the beacon registry, the active report
// schedule, and the subscription to the discovery source. Discovery events
// are processed one at a time; the mutex keeps the observe-solve-schedule
// sequence atomic with respect to concurrent scanner goroutines.
type Session struct {
	cfg       config.Config
	scanner   scan.Scanner
	scheduler PositionScheduler
	log       *zap.Logger
	notify    Notifier

	mu       sync.Mutex
	registry *beacon.Registry
	fix      *locate.Fix
	status   string
	halted   bool
}

// New creates a session. notify may be nil.
func New(cfg config.Config, scanner scan.Scanner, scheduler PositionScheduler, log *zap.Logger, notify Notifier) *Session {
	if notify == nil {
		notify = func(Snapshot) {}
	}
	return &Session{
		cfg:       cfg,
		scanner:   scanner,
		scheduler: scheduler,
		log:       log,
		notify:    notify,
		registry:  beacon.NewRegistry(),
		status:    "Scanning for beacons...",
	}
}

// Start begins consuming the discovery source. A returned error means the
// permission gate failed and no scanning happens; the blocked status is
// readable via Snapshot. Start never invokes the notifier itself - the
// notifier may be wired to a UI loop that is not receiving yet, so snapshots
// are only emitted from scanner callbacks.
func (s *Session) Start() error {
	if err := s.scanner.Start(s.handleAdvertisement, s.handleScanError); err != nil {
		s.mu.Lock()
		s.halted = true
		s.status = fmt.Sprintf("Bluetooth permission denied: %v", err)
		s.mu.Unlock()

		s.log.Error("scan permission denied", zap.Error(err))
		return fmt.Errorf("start session: %w", err)
	}

	s.log.Info("session started",
		zap.String("filter", s.cfg.Beacon.Filter),
		zap.Duration("interval", s.cfg.Report.Interval))
	return nil
}

func (s *Session) handleAdvertisement(adv scan.Advertisement) {
	if !strings.Contains(adv.Name, s.cfg.Beacon.Filter) {
		return
	}

	s.mu.Lock()
	if s.halted {
		s.mu.Unlock()
		return
	}

	added, size := s.registry.Observe(adv.ID, adv.Name, adv.RSSI)
	if !added {
		s.mu.Unlock()
		return
	}

	s.status = fmt.Sprintf("Found %d beacons!", size)
	if size >= config.AnchorCount {
		s.solveLocked()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// solveLocked recomputes the position from the first three beacons in
// discovery order, paired slot-by-slot with the configured anchors, and hands
// the result to the report scheduler. Runs on every qualifying addition, not
// just the first.
func (s *Session) solveLocked() {
	first := s.registry.First(config.AnchorCount)

	var r [config.AnchorCount]float64
	for i, b := range first {
		r[i] = locate.Distance(float64(b.RSSI), s.cfg.Beacon.MeasuredPower, s.cfg.Beacon.PathLossExp)
	}

	fix, err := locate.Trilaterate(
		s.cfg.Anchors[0], s.cfg.Anchors[1], s.cfg.Anchors[2],
		r[0], r[1], r[2])
	if err != nil {
		s.status = fmt.Sprintf("Position unavailable: %v", err)
		s.log.Warn("trilateration failed", zap.Error(err))
		return
	}

	s.fix = &fix
	s.scheduler.Schedule(fix)
	s.log.Info("position solved",
		zap.Float64("x", fix.X),
		zap.Float64("y", fix.Y))
}

func (s *Session) handleScanError(err error) {
	s.mu.Lock()
	s.halted = true
	s.status = fmt.Sprintf("Scan error: %v", err)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Error("scan terminated", zap.Error(err))
	s.notify(snap)
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:  s.status,
		Beacons: s.registry.Snapshot(),
	}
	if s.fix != nil {
		f := *s.fix
		snap.Fix = &f
	}
	return snap
}

// Stop ends the session: stops the scanner and cancels the report schedule.
// No timers survive Stop.
func (s *Session) Stop() {
	s.mu.Lock()
	s.halted = true
	s.mu.Unlock()

	s.scanner.Stop()
	s.scheduler.Stop()
	s.log.Info("session stopped")
}
