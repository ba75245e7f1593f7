package arena

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// ArenaSequence is a fixed-capacity typed sequence over an arena
// sub-range, offering add/insert/remove semantics on top of the same
// backing contract as ArenaView. Capacity is fixed at construction; there
// is no dynamic growth.
type ArenaSequence[T any] struct {
	arena      *Arena
	base       unsafe.Pointer
	capacity   int
	count      int
	generation uint64
}

// NewSequence requests capacity*sizeof(T) bytes from a, aligned to
// NextPow2Clamped(sizeof(T)), and returns an empty sequence over them.
// capacity must be >= 1. T must be plain data (no pointers, interfaces,
// maps, channels, funcs, slices, or strings anywhere in its layout);
// otherwise NewSequence fails with ErrInvalidElementType, since arena
// memory is never scanned by the garbage collector.
func NewSequence[T any](a *Arena, capacity int, tag string) (*ArenaSequence[T], error) {
	elemType := reflect.TypeOf((*T)(nil)).Elem()
	if !isPlainData(elemType) {
		return nil, errors.Wrapf(ErrInvalidElementType, "sequence element type %s", elemType)
	}
	if capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidLength, "sequence capacity %d", capacity)
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	ptr, ok := a.Allocate(elemSize*capacity, NextPow2Clamped(elemSize), tag)
	if !ok {
		return nil, errors.Wrapf(ErrAllocationFailed, "sequence of capacity %d", capacity)
	}

	return &ArenaSequence[T]{
		arena:      a,
		base:       ptr,
		capacity:   capacity,
		generation: a.generationSnapshot(),
	}, nil
}

// Capacity returns the sequence's fixed maximum element count.
func (s *ArenaSequence[T]) Capacity() int { return s.capacity }

// Count returns the number of live elements currently held.
func (s *ArenaSequence[T]) Count() int { return s.count }

func (s *ArenaSequence[T]) elem(i int) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	return (*T)(unsafe.Add(s.base, uintptr(i)*size))
}

// At returns the element at index i, 0 <= i < Count().
func (s *ArenaSequence[T]) At(i int) (T, error) {
	var zero T
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return zero, err
	}
	if i < 0 || i >= s.count {
		return zero, errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", i, s.count)
	}
	return *s.elem(i), nil
}

// Set writes val at index i, 0 <= i < Count().
func (s *ArenaSequence[T]) Set(i int, val T) error {
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return err
	}
	if i < 0 || i >= s.count {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", i, s.count)
	}
	*s.elem(i) = val
	return nil
}

// Add appends x, failing with ErrCapacityExceeded if the sequence is full.
func (s *ArenaSequence[T]) Add(x T) error {
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return err
	}
	if s.count == s.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "capacity %d", s.capacity)
	}
	*s.elem(s.count) = x
	s.count++
	return nil
}

// AddMany appends xs in order. If there is not enough remaining capacity
// for all of xs, it fails with ErrCapacityExceeded and leaves the sequence
// unchanged.
func (s *ArenaSequence[T]) AddMany(xs []T) error {
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return err
	}
	if s.count+len(xs) > s.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "capacity %d, have %d, adding %d", s.capacity, s.count, len(xs))
	}
	for _, x := range xs {
		*s.elem(s.count) = x
		s.count++
	}
	return nil
}

// InsertAt shifts elements [i, Count()) right by one and writes x at i.
// 0 <= i <= Count() must hold, and the sequence must not be full.
func (s *ArenaSequence[T]) InsertAt(i int, x T) error {
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return err
	}
	if i < 0 || i > s.count {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", i, s.count)
	}
	if s.count == s.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "capacity %d", s.capacity)
	}
	for j := s.count; j > i; j-- {
		*s.elem(j) = *s.elem(j - 1)
	}
	*s.elem(i) = x
	s.count++
	return nil
}

// RemoveAt shifts elements (i, Count()) left by one, removing the element
// at i. Pass -1 to remove the last element. Fails with ErrEmptyRemove on an
// empty sequence, or ErrIndexOutOfRange if i is out of bounds.
func (s *ArenaSequence[T]) RemoveAt(i int) error {
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return err
	}
	if s.count == 0 {
		return errors.Wrap(ErrEmptyRemove, "sequence is empty")
	}
	if i == -1 {
		i = s.count - 1
	}
	if i < 0 || i >= s.count {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", i, s.count)
	}
	for j := i; j < s.count-1; j++ {
		*s.elem(j) = *s.elem(j + 1)
	}
	s.count--
	return nil
}

// Clear sets Count to zero. Slot bytes are left intact.
func (s *ArenaSequence[T]) Clear() {
	s.count = 0
}

// ToOwnedArray returns a fresh caller-owned slice holding a copy of the
// live prefix. An empty sequence logs a warning and returns an empty
// slice.
func (s *ArenaSequence[T]) ToOwnedArray(logger Logger) []T {
	if s.count == 0 {
		emit(logger, "sequence", "to_owned_array on empty sequence", LevelWarning)
		return []T{}
	}
	out := make([]T, s.count)
	for i := range out {
		out[i] = *s.elem(i)
	}
	return out
}

// ToView allocates a new ArenaView[T] of length Count() in dst and copies
// the live prefix into it.
func (s *ArenaSequence[T]) ToView(dst *Arena, tag string) (*ArenaView[T], error) {
	if err := checkGeneration(s.arena, s.generation); err != nil {
		return nil, err
	}
	if s.count == 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "sequence is empty")
	}
	view, err := NewView[T](dst, s.count, tag)
	if err != nil {
		return nil, err
	}
	for i := 0; i < s.count; i++ {
		_ = view.Set(i, *s.elem(i))
	}
	return view, nil
}

// All returns a restartable, finite iterator over the live prefix, in
// order. It stops early if the yield function returns false.
func (s *ArenaSequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, *s.elem(i)) {
				return
			}
		}
	}
}
