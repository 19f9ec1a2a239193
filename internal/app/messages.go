package app

import "ble-locator.klederson.com/internal/session"

// SnapshotMsg carries a session state snapshot into the UI loop.
type SnapshotMsg session.Snapshot
