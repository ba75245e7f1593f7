package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequenceRejectsManagedElementType(t *testing.T) {
	a := newTestArena(t, 1024)

	s1, err := NewSequence[*int32](a, 4, "pointers")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidElementType)
	assert.Nil(t, s1)

	type withMap struct {
		Tag   int32
		Attrs map[string]int32
	}
	s2, err := NewSequence[withMap](a, 4, "nested")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidElementType)
	assert.Nil(t, s2)
}

func TestSequenceLifecycle(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 8, "ints")
	require.NoError(t, err)

	for _, v := range []int32{1, 2, 4, 5, 6} {
		require.NoError(t, seq.Add(v))
	}
	assert.Equal(t, 5, seq.Count())

	require.NoError(t, seq.InsertAt(2, 3))
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, seq.ToOwnedArray(NopSink{}))
	assert.Equal(t, 6, seq.Count())

	require.NoError(t, seq.RemoveAt(2))
	assert.Equal(t, []int32{1, 2, 4, 5, 6}, seq.ToOwnedArray(NopSink{}))

	require.NoError(t, seq.RemoveAt(-1))
	assert.Equal(t, []int32{1, 2, 4, 5}, seq.ToOwnedArray(NopSink{}))

	seq.Clear()
	assert.Equal(t, 0, seq.Count())
}

func TestSequenceCapacityGuard(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 1, "one")
	require.NoError(t, err)

	require.NoError(t, seq.Add(25))
	err = seq.Add(26)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 1, seq.Count())
}

func TestSequenceAddManyAtomic(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 4, "four")
	require.NoError(t, err)

	err = seq.AddMany([]int32{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, seq.Count(), "AddMany must leave state unchanged on failure")

	require.NoError(t, seq.AddMany([]int32{1, 2, 3}))
	assert.Equal(t, 3, seq.Count())
}

func TestSequenceInsertAtBounds(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 4, "four")
	require.NoError(t, err)
	require.NoError(t, seq.Add(1))

	err = seq.InsertAt(-1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	err = seq.InsertAt(2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, seq.InsertAt(1, 2))
	assert.Equal(t, []int32{1, 2}, seq.ToOwnedArray(NopSink{}))
}

func TestSequenceRemoveFromEmpty(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 4, "four")
	require.NoError(t, err)

	err = seq.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrEmptyRemove)
}

func TestSequenceInsertRemoveIsIdentity(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 8, "eight")
	require.NoError(t, err)
	require.NoError(t, seq.AddMany([]int32{1, 2, 3, 4}))

	before := seq.ToOwnedArray(NopSink{})
	require.NoError(t, seq.InsertAt(2, 99))
	require.NoError(t, seq.RemoveAt(2))
	after := seq.ToOwnedArray(NopSink{})

	assert.Equal(t, before, after)
}

func TestSequenceToView(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 8, "eight")
	require.NoError(t, err)
	require.NoError(t, seq.AddMany([]int32{1, 2, 3}))

	view, err := seq.ToView(a, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Length())

	got, err := view.At(1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got)
}

func TestSequenceToOwnedArrayEmptyLogsWarning(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 4, "four")
	require.NoError(t, err)

	sink := &capturingSink{}
	out := seq.ToOwnedArray(sink)
	assert.Empty(t, out)
	assert.Len(t, sink.messages, 1)
}

func TestSequenceIteration(t *testing.T) {
	a := newTestArena(t, 4096)
	seq, err := NewSequence[int32](a, 8, "eight")
	require.NoError(t, err)
	require.NoError(t, seq.AddMany([]int32{5, 6, 7}))

	var got []int32
	for _, v := range seq.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int32{5, 6, 7}, got)
}
