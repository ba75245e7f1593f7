package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	a := newTestArena(t, 1024)

	assert.Equal(t, 0, a.Offset())
	assert.Equal(t, 1024, a.Capacity())
	assert.Zero(t, a.Utilization())
	assert.Zero(t, a.WasteRatio())

	_, ok := a.Allocate(100, 8, "a")
	require.True(t, ok)
	_, ok = a.Allocate(200, 8, "b")
	require.True(t, ok)

	assert.NotZero(t, a.Offset())
	util := a.Utilization()
	assert.Greater(t, util, 0.0)
	assert.LessOrEqual(t, util, 1.0)

	metrics := a.Metrics()
	assert.Equal(t, a.Offset(), metrics.Offset)
	assert.Equal(t, a.Capacity(), metrics.Capacity)
	assert.Equal(t, a.Waste(), metrics.Waste)
	assert.Equal(t, a.Utilization(), metrics.Utilization)
	assert.Equal(t, a.WasteRatio(), metrics.WasteRatio)
}

func TestArenaMetricsAfterReset(t *testing.T) {
	a := newTestArena(t, 1024)

	_, ok := a.Allocate(500, 8, "chunk")
	require.True(t, ok)
	require.NotZero(t, a.Offset())
	require.NotZero(t, a.Utilization())

	a.Reset()
	assert.Zero(t, a.Offset())
	assert.Zero(t, a.Utilization())
	assert.Equal(t, 1024, a.Capacity())
}

func TestArenaMetricsAfterDispose(t *testing.T) {
	a, err := New(0, 1024, NewHeapAllocator(), 64)
	require.NoError(t, err)
	_, ok := a.Allocate(100, 8, "x")
	require.True(t, ok)

	a.Dispose()

	assert.False(t, a.IsLive())
	assert.Equal(t, 1024, a.Capacity())
}

func TestUtilizationEdgeCases(t *testing.T) {
	empty := newTestArena(t, 1024)
	assert.Zero(t, empty.Utilization())

	full := newTestArena(t, 100)
	_, ok := full.Allocate(full.Capacity(), 8, "fill")
	require.True(t, ok)
	assert.GreaterOrEqual(t, full.Utilization(), 0.9)
}

func TestWasteRatioTracksOverAlignment(t *testing.T) {
	a := newTestArena(t, 256)

	_, ok := a.Allocate(8, 8, "pre")
	require.True(t, ok)
	_, ok = a.Allocate(8, 32, "main")
	require.True(t, ok)

	assert.Equal(t, 24, a.Waste())
	assert.InDelta(t, 24.0/256.0, a.WasteRatio(), 1e-9)
}
