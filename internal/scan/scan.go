package scan

// Advertisement is a single discovery event: one sighting of a nearby device.
type Advertisement struct {
	ID   string // stable identity (MAC address)
	Name string
	RSSI int16 // dBm
}

// Handler receives discovery events. Called from the scanner's goroutine,
// one event at a time.
type Handler func(Advertisement)

// ErrorHandler receives a terminal scan error. After it is called the
// scanner produces no further events.
type ErrorHandler func(error)

// Scanner produces an unbounded stream of advertisements until stopped.
type Scanner interface {
	// Start begins scanning. A non-nil return means scanning never started
	// (typically a permission failure); errors after a successful start are
	// delivered through onErr.
	Start(onAdv Handler, onErr ErrorHandler) error
	Stop()
}
