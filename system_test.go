package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocatorReturnsAlignedAddress(t *testing.T) {
	h := NewHeapAllocator()
	for _, alignment := range []int{8, 16, 32, 64} {
		ptr, err := h.AlignedAlloc(128, alignment, KindTransient)
		require.NoError(t, err)
		addr := uintptr(ptr)
		assert.Zero(t, addr%uintptr(alignment), "alignment %d", alignment)
		h.Free(ptr, KindTransient)
	}
}

func TestHeapAllocatorRejectsInvalidAlignment(t *testing.T) {
	h := NewHeapAllocator()
	_, err := h.AlignedAlloc(128, 10, KindTransient)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
}

func TestHeapAllocatorFreeUnpins(t *testing.T) {
	h := NewHeapAllocator()
	ptr, err := h.AlignedAlloc(64, 8, KindPersistent)
	require.NoError(t, err)

	h.mu.Lock()
	_, pinned := h.pinned[ptr]
	h.mu.Unlock()
	assert.True(t, pinned)

	h.Free(ptr, KindPersistent)

	h.mu.Lock()
	_, stillPinned := h.pinned[ptr]
	h.mu.Unlock()
	assert.False(t, stillPinned)
}

func TestAllocKindString(t *testing.T) {
	assert.Equal(t, "transient", KindTransient.String())
	assert.Equal(t, "persistent", KindPersistent.String())
}
