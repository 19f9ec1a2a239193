package beacon

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAddsInDiscoveryOrder(t *testing.T) {
	r := NewRegistry()

	added, size := r.Observe("AA:01", "Beacon-A", -50)
	assert.True(t, added)
	assert.Equal(t, 1, size)

	added, size = r.Observe("AA:02", "Beacon-B", -60)
	assert.True(t, added)
	assert.Equal(t, 2, size)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "AA:01", snap[0].ID)
	assert.Equal(t, 0, snap[0].Order)
	assert.Equal(t, "AA:02", snap[1].ID)
	assert.Equal(t, 1, snap[1].Order)
}

func TestObserveDuplicateIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Observe("AA:01", "Beacon-A", -50)

	// Same identity with a different name and signal strength.
	added, size := r.Observe("AA:01", "Renamed", -90)
	assert.False(t, added)
	assert.Equal(t, 1, size)

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Beacon-A", snap[0].Name, "first sighting wins")
	assert.Equal(t, int16(-50), snap[0].RSSI, "first sighting wins")
}

func TestFirst(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.Observe(fmt.Sprintf("AA:%02d", i), fmt.Sprintf("Beacon-%d", i), int16(-50-i))
	}

	first := r.First(3)
	require.Len(t, first, 3)
	assert.Equal(t, "AA:00", first[0].ID)
	assert.Equal(t, "AA:01", first[1].ID)
	assert.Equal(t, "AA:02", first[2].ID)
}

func TestFirstShortRegistry(t *testing.T) {
	r := NewRegistry()
	r.Observe("AA:01", "Beacon-A", -50)
	assert.Len(t, r.First(3), 1)
	assert.Len(t, NewRegistry().First(3), 0)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Observe("AA:01", "Beacon-A", -50)

	snap := r.Snapshot()
	snap[0].Name = "mutated"

	assert.Equal(t, "Beacon-A", r.Snapshot()[0].Name)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "[unnamed]", Beacon{}.DisplayName())
	assert.Equal(t, "Beacon-A", Beacon{Name: "Beacon-A"}.DisplayName())
}
