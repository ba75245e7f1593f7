package arena

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// AllocKind selects among the system allocator's lifetime policies. The
// default HeapAllocator treats every kind identically; it exists purely so a
// caller can plug in a pooling allocator for one kind without touching arena
// construction call sites.
type AllocKind int

const (
	// KindTransient marks a block expected to live for a single cycle
	// (a frame, a tick, a request) before being disposed or reset.
	KindTransient AllocKind = iota
	// KindPersistent marks a block expected to outlive many cycles.
	KindPersistent
)

func (k AllocKind) String() string {
	if k == KindPersistent {
		return "persistent"
	}
	return "transient"
}

// SystemAllocator is the byte-level collaborator an Arena requests its
// backing block from. Implementations must return addresses aligned to the
// requested alignment and must treat Free as accepting only addresses they
// themselves returned.
type SystemAllocator interface {
	AlignedAlloc(size, alignment int, kind AllocKind) (unsafe.Pointer, error)
	Free(ptr unsafe.Pointer, kind AllocKind)
}

// HeapAllocator is the default SystemAllocator. It over-allocates a Go byte
// slice by alignment bytes, slices out the aligned interior address,
// and pins the backing slice in a side table so the garbage collector cannot
// reclaim it out from under callers holding only the aligned unsafe.Pointer.
// Free removes the pin.
type HeapAllocator struct {
	mu     sync.Mutex
	pinned map[unsafe.Pointer][]byte
}

// NewHeapAllocator constructs an empty HeapAllocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{pinned: make(map[unsafe.Pointer][]byte)}
}

func (h *HeapAllocator) AlignedAlloc(size, alignment int, kind AllocKind) (unsafe.Pointer, error) {
	if !IsPowerOfTwo(alignment) {
		return nil, errors.Wrapf(ErrInvalidAlignment, "alignment %d", alignment)
	}
	if size < 0 {
		return nil, errors.Wrapf(ErrOutOfMemory, "negative size %d", size)
	}

	raw := make([]byte, size+alignment)
	base := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (base + uintptr(alignment) - 1) &^ (uintptr(alignment) - 1)
	offset := aligned - base
	ptr := unsafe.Pointer(&raw[offset])

	h.mu.Lock()
	h.pinned[ptr] = raw
	h.mu.Unlock()

	return ptr, nil
}

func (h *HeapAllocator) Free(ptr unsafe.Pointer, _ AllocKind) {
	h.mu.Lock()
	delete(h.pinned, ptr)
	h.mu.Unlock()
}
