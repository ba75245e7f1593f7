package arena

import (
	"runtime"
	"unsafe"
)

// Alloc reserves room for one T via SmartAllocate, zeroes it, and returns
// a *T. The returned pointer is valid only while the arena is Live and no
// Reset has intervened. ok is false when the underlying allocation failed.
func Alloc[T any](a *Arena, tag string) (t *T, ok bool) {
	ptr, ok := SmartAllocate[T](a, tag)
	if !ok {
		return nil, false
	}
	t = (*T)(ptr)
	var zero T
	*t = zero
	return t, true
}

// AllocZeroed is identical to Alloc, provided for API parity with the
// slice variants below.
func AllocZeroed[T any](a *Arena, tag string) (*T, bool) {
	return Alloc[T](a, tag)
}

// AllocUninitialized reserves room for one T via SmartAllocate without
// zeroing it. Faster than Alloc; the contents are whatever the backing
// bytes last held. Use only when the caller writes every field before
// reading.
func AllocUninitialized[T any](a *Arena, tag string) (*T, bool) {
	ptr, ok := SmartAllocate[T](a, tag)
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

// AllocSlice reserves room for n contiguous T values via SmartAllocateN and
// returns them as a Go slice header over arena memory, uninitialized.
// Returns nil, false if n <= 0 or the allocation fails.
func AllocSlice[T any](a *Arena, n int, tag string) ([]T, bool) {
	if n <= 0 {
		return nil, false
	}
	ptr, ok := SmartAllocateN[T](a, n, tag)
	if !ok {
		return nil, false
	}
	return unsafe.Slice((*T)(ptr), n), true
}

// AllocSliceZeroed is AllocSlice followed by clearing every element.
func AllocSliceZeroed[T any](a *Arena, n int, tag string) ([]T, bool) {
	s, ok := AllocSlice[T](a, n, tag)
	if !ok {
		return nil, false
	}
	var zero T
	for i := range s {
		s[i] = zero
	}
	return s, true
}

// PtrAndKeepAlive returns t after calling runtime.KeepAlive on a. Useful
// when a pointer obtained via unsafe.Pointer arithmetic is used well after
// the last visible reference to its arena.
func PtrAndKeepAlive[T any](a *Arena, t *T) *T {
	runtime.KeepAlive(a)
	return t
}
