package arena

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// ArenaView is a fixed-length typed window onto an arena sub-range. It
// borrows memory from its parent arena; it never owns it. A view's results
// are defined only while the parent arena is Live and no Reset has occurred
// since the view's construction — see checkGeneration and the arenadebug
// build tag for a way to catch violations cheaply in development builds.
type ArenaView[T any] struct {
	arena      *Arena
	base       unsafe.Pointer
	length     int
	generation uint64
}

// NewView requests length*sizeof(T) bytes from a, aligned to
// NextPow2Clamped(sizeof(T)), and returns a view over them. length must be
// >= 1. T must be plain data (no pointers, interfaces, maps, channels,
// funcs, slices, or strings anywhere in its layout); otherwise NewView
// fails with ErrInvalidElementType, since arena memory is never scanned by
// the garbage collector. a is taken as a short-lived mutable borrow: NewView
// calls a.Allocate once and retains no further claim on the arena.
func NewView[T any](a *Arena, length int, tag string) (*ArenaView[T], error) {
	elemType := reflect.TypeOf((*T)(nil)).Elem()
	if !isPlainData(elemType) {
		return nil, errors.Wrapf(ErrInvalidElementType, "view element type %s", elemType)
	}
	if length < 1 {
		return nil, errors.Wrapf(ErrInvalidLength, "view length %d", length)
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	ptr, ok := a.Allocate(elemSize*length, NextPow2Clamped(elemSize), tag)
	if !ok {
		return nil, errors.Wrapf(ErrAllocationFailed, "view of %d elements", length)
	}

	return &ArenaView[T]{
		arena:      a,
		base:       ptr,
		length:     length,
		generation: a.generationSnapshot(),
	}, nil
}

// Length returns the view's fixed element count.
func (v *ArenaView[T]) Length() int { return v.length }

// RawBase returns the view's backing address. Callers that hold onto it
// past the view's validity window (see ArenaView) get undefined
// results.
func (v *ArenaView[T]) RawBase() unsafe.Pointer { return v.base }

func (v *ArenaView[T]) elem(i int) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	return (*T)(unsafe.Add(v.base, uintptr(i)*size))
}

// At returns the element at index i.
func (v *ArenaView[T]) At(i int) (T, error) {
	var zero T
	if err := checkGeneration(v.arena, v.generation); err != nil {
		return zero, err
	}
	if i < 0 || i >= v.length {
		return zero, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, v.length)
	}
	return *v.elem(i), nil
}

// Set writes val at index i.
func (v *ArenaView[T]) Set(i int, val T) error {
	if err := checkGeneration(v.arena, v.generation); err != nil {
		return err
	}
	if i < 0 || i >= v.length {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, v.length)
	}
	*v.elem(i) = val
	return nil
}

// CopyFrom overwrites the view's elements with src, element-wise. len(src)
// must equal v.Length().
func (v *ArenaView[T]) CopyFrom(src []T) error {
	if err := checkGeneration(v.arena, v.generation); err != nil {
		return err
	}
	if len(src) != v.length {
		return errors.Wrapf(ErrLengthMismatch, "src %d, view %d", len(src), v.length)
	}
	for i, val := range src {
		*v.elem(i) = val
	}
	return nil
}

// CopyTo copies the view's elements into dst, element-wise. len(dst) must
// equal v.Length().
func (v *ArenaView[T]) CopyTo(dst []T) error {
	if err := checkGeneration(v.arena, v.generation); err != nil {
		return err
	}
	if len(dst) != v.length {
		return errors.Wrapf(ErrLengthMismatch, "dst %d, view %d", len(dst), v.length)
	}
	for i := range dst {
		dst[i] = *v.elem(i)
	}
	return nil
}

// All returns a restartable, finite iterator over the view's elements in
// order. It stops early if the yield function returns false.
func (v *ArenaView[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, *v.elem(i)) {
				return
			}
		}
	}
}
