package beacon

import "sync"

// Beacon is a tracked beacon observation. Created on first sighting of an
// identity and immutable afterwards; later sightings of the same identity are
// discarded by the registry.
type Beacon struct {
	ID    string
	Name  string
	RSSI  int16
	Order int // discovery index, 0-based
}

// DisplayName returns the beacon name or "[unnamed]" if empty.
func (b Beacon) DisplayName() string {
	if b.Name == "" {
		return "[unnamed]"
	}
	return b.Name
}

// Registry tracks distinct beacons in discovery order. Purely additive for
// the lifetime of a scanning session; there is no removal. Safe for use from
// the scanner callback goroutine and UI snapshot reads.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]int // identity -> index into ordered
	ordered []Beacon
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]int),
	}
}

// Observe records a beacon sighting. A repeat identity is a no-op returning
// added=false and the unchanged size; the stored observation keeps its
// original signal strength (first write wins).
func (r *Registry) Observe(id, name string, rssi int16) (added bool, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; ok {
		return false, len(r.ordered)
	}

	r.byID[id] = len(r.ordered)
	r.ordered = append(r.ordered, Beacon{
		ID:    id,
		Name:  name,
		RSSI:  rssi,
		Order: len(r.ordered),
	})
	return true, len(r.ordered)
}

// First returns copies of the first n beacons in discovery order, or fewer if
// the registry is smaller.
func (r *Registry) First(n int) []Beacon {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > len(r.ordered) {
		n = len(r.ordered)
	}
	out := make([]Beacon, n)
	copy(out, r.ordered[:n])
	return out
}

// Snapshot returns a copy of all tracked beacons in discovery order.
func (r *Registry) Snapshot() []Beacon {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Beacon, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Count returns the number of distinct beacons tracked.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}
