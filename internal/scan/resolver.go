package scan

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// NameResolver tries to resolve names for unnamed BLE devices in the
// background using an active hcitool name request. Until a device has a name
// it cannot match the beacon filter, so resolution can turn an invisible
// device into a tracked beacon.
type NameResolver struct {
	onAdv    Handler
	mu       sync.Mutex
	tried    map[string]int // ID -> attempt count
	resolved map[string]bool
	stop     chan struct{}
	stopOnce sync.Once
}

const (
	maxAttempts    = 2
	resolveTimeout = 4 * time.Second
	resolvePause   = 3 * time.Second
)

// NewNameResolver creates a new resolver.
func NewNameResolver() *NameResolver {
	return &NameResolver{
		tried:    make(map[string]int),
		resolved: make(map[string]bool),
		stop:     make(chan struct{}),
	}
}

// Start wires the resolver to the advertisement handler.
func (r *NameResolver) Start(onAdv Handler) {
	r.onAdv = onAdv
}

// RequestResolve queues an ID for background name resolution. The RSSI seen
// at request time is carried into the re-emitted advertisement so ranging
// uses a real reading. Safe to call from any goroutine.
func (r *NameResolver) RequestResolve(id string, rssi int16) {
	r.mu.Lock()
	if r.resolved[id] || r.tried[id] >= maxAttempts {
		r.mu.Unlock()
		return
	}
	r.tried[id]++
	r.mu.Unlock()

	go r.resolve(id, rssi)
}

func (r *NameResolver) resolve(id string, rssi int16) {
	// Rate limit - don't spam
	time.Sleep(resolvePause)

	select {
	case <-r.stop:
		return
	default:
	}

	name := tryHcitool(id)
	if name == "" {
		return
	}

	r.mu.Lock()
	r.resolved[id] = true
	r.mu.Unlock()

	if r.onAdv != nil {
		r.onAdv(Advertisement{
			ID:   id,
			Name: name,
			RSSI: rssi,
		})
	}
}

func tryHcitool(id string) string {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "hcitool", "name", id).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Stop terminates the resolver. Safe to call more than once.
func (r *NameResolver) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
