// Package arena implements a fixed-capacity bump-pointer memory arena with
// typed unmanaged views, suitable for high-throughput, short-lifetime
// allocation cycles: procedural generation, per-frame scratch buffers,
// simulation ticks, AI/pathfinding working sets.
//
// # Overview
//
// A single up-front block backs many small typed allocations. Individual
// allocations are never freed — the arena is Reset (rewound to empty) or
// Disposed (released to the system) as a whole, giving deterministic,
// per-cycle memory behavior without a tracing collector. Unlike a growable
// allocator, an Arena's backing block is sized once at construction and
// never grows; a caller that needs more room constructs a bigger arena.
//
// # Basic usage
//
//	a, err := arena.New(0, 1<<20, arena.NewHeapAllocator(), arena.DefaultAlignment)
//	if err != nil {
//		panic(err)
//	}
//	defer a.Dispose()
//
//	addr, ok := a.Allocate(64, 8, "scratch")
//	view, err := arena.NewView[Vec3](a, 1024, "positions")
//
// # Thread safety
//
// A single Arena is not safe for concurrent Allocate/Reset/Dispose calls;
// callers serialize mutation of a given arena. Parallel read-only traversal
// of a typed view built before a parallel region started is the one
// supported form of cross-goroutine use.
package arena

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultAlignment is the arena-level backing-block alignment used when a
// caller does not specify one.
const DefaultAlignment = 64

// state is the arena's lifecycle stage: Uninitialized -> Live -> Disposed.
type state int32

const (
	stateUninitialized state = iota
	stateLive
	stateDisposed
)

// Arena is a contiguous, identified byte block with bump-pointer allocation
// state. It is not safe for concurrent mutation; see the package doc.
type Arena struct {
	id       int
	base     unsafe.Pointer
	capacity int
	alloc    SystemAllocator
	kind     AllocKind
	logger   Logger
	monitor  *Monitor

	offset int
	waste  int

	// generation increments on every Reset. Views/sequences built with the
	// arenadebug build tag capture it at construction and recheck it on
	// every access to catch use-after-reset cheaply; the check compiles to
	// a no-op otherwise.
	generation uint64

	live state
}

// Option configures optional Arena construction parameters beyond the
// required id/capacity/allocator.
type Option func(*Arena)

// WithLogger attaches a logging sink. The default is NopSink.
func WithLogger(l Logger) Option {
	return func(a *Arena) { a.logger = l }
}

// WithMonitor overrides the monitor an arena records allocations into. The
// default is DefaultMonitor().
func WithMonitor(m *Monitor) Option {
	return func(a *Arena) { a.monitor = m }
}

// WithAllocKind selects the lifetime policy passed to the system allocator.
// The default is KindTransient.
func WithAllocKind(k AllocKind) Option {
	return func(a *Arena) { a.kind = k }
}

// New constructs a Live arena with the given id, capacity in bytes, and
// backing system allocator. arenaAlignment must be a power of two; if it is
// not, New fails with ErrInvalidAlignment (fatal — the arena is unusable).
// If the system allocator cannot satisfy the request, New fails with
// ErrOutOfMemory. alloc defaults to a fresh HeapAllocator when nil.
func New(id, capacity int, alloc SystemAllocator, arenaAlignment int, opts ...Option) (*Arena, error) {
	if !IsPowerOfTwo(arenaAlignment) {
		return nil, errors.Wrapf(ErrInvalidAlignment, "arena %d: alignment %d", id, arenaAlignment)
	}
	if alloc == nil {
		alloc = NewHeapAllocator()
	}

	a := &Arena{
		id:       id,
		capacity: capacity,
		alloc:    alloc,
		kind:     KindTransient,
		logger:   NopSink{},
		monitor:  DefaultMonitor(),
	}
	for _, opt := range opts {
		opt(a)
	}

	base, err := a.alloc.AlignedAlloc(capacity, arenaAlignment, a.kind)
	if err != nil {
		emit(a.logger, "arena", errors.Wrapf(err, "arena %d: construction failed", id).Error(), LevelError)
		return nil, errors.Wrapf(ErrOutOfMemory, "arena %d: capacity %d", id, capacity)
	}

	a.base = base
	a.live = stateLive
	registerArena(a)
	emit(a.logger, "arena", "arena constructed", LevelSuccess)
	return a, nil
}

// ID returns the caller-assigned arena identity.
func (a *Arena) ID() int { return a.id }

// Capacity returns the arena's fixed total byte count.
func (a *Arena) Capacity() int { return a.capacity }

// Offset returns the next free byte index.
func (a *Arena) Offset() int { return a.offset }

// Waste returns the cumulative alignment padding since the last reset or
// construction.
func (a *Arena) Waste() int { return a.waste }

// IsLive reports whether the arena has been constructed and not yet
// disposed.
func (a *Arena) IsLive() bool { return a.live == stateLive }

// generationSnapshot returns the current generation counter, used by views
// and sequences to detect use-after-reset in debug builds.
func (a *Arena) generationSnapshot() uint64 {
	return atomic.LoadUint64(&a.generation)
}

// Allocate reserves size bytes aligned to alignment and tagged with tag,
// returning the aligned address. alignment must be a power of two; if it is
// not, Allocate logs a Warning and returns (nil, false) without touching
// arena state — a bad caller does not poison the arena. If the aligned
// range would exceed capacity, Allocate logs an Error and returns
// (nil, false), again leaving state untouched. A zero-size request is
// accepted and still recorded, so tag-only markers remain visible in the
// monitor.
func (a *Arena) Allocate(size, alignment int, tag string) (unsafe.Pointer, bool) {
	if a.live != stateLive {
		if a.live == stateDisposed {
			emit(a.logger, "arena", errors.Wrapf(ErrUseAfterDispose, "allocate on arena %d", a.id).Error(), LevelError)
		} else {
			emit(a.logger, "arena", "allocate on uninitialized arena", LevelError)
		}
		return nil, false
	}
	if !IsPowerOfTwo(alignment) {
		emit(a.logger, "arena", "allocate: alignment is not a power of two", LevelWarning)
		return nil, false
	}

	oldOffset := a.offset
	alignedOffset := alignUp(oldOffset, alignment)
	if alignedOffset+size > a.capacity {
		emit(a.logger, "arena", "allocate: out of memory", LevelError)
		return nil, false
	}

	a.offset = alignedOffset + size
	padding := alignedOffset - oldOffset
	if CurrentConfig().TrackAlignmentLoss {
		a.waste += padding
	}
	if a.monitor != nil {
		a.monitor.Record(a.id, alignedOffset, size, alignment, padding, tag)
	}

	emit(a.logger, "arena", "allocate: ok", LevelInfo)
	return unsafe.Add(a.base, alignedOffset), true
}

// SmartAllocate reserves room for one T, choosing alignment as
// NextPow2Clamped(sizeof(T)).
func SmartAllocate[T any](a *Arena, tag string) (unsafe.Pointer, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	return a.Allocate(size, NextPow2Clamped(size), tag)
}

// SmartAllocateN reserves room for n contiguous T values, choosing
// alignment as NextPow2Clamped(sizeof(T)).
func SmartAllocateN[T any](a *Arena, n int, tag string) (unsafe.Pointer, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	return a.Allocate(size*n, NextPow2Clamped(size), tag)
}

// Reset rewinds offset and waste to zero and clears this arena's monitor
// records, without releasing or zeroing the backing block. Every
// outstanding view or sequence rooted in this arena is logically
// invalidated; in a build tagged arenadebug, its error-returning methods
// return ErrUseAfterReset instead of reading stale memory. All and
// ToOwnedArray do not perform this check.
func (a *Arena) Reset() {
	if a.live != stateLive {
		if a.live == stateDisposed {
			emit(a.logger, "arena", errors.Wrapf(ErrUseAfterDispose, "reset on arena %d", a.id).Error(), LevelError)
		}
		return
	}
	a.offset = 0
	a.waste = 0
	atomic.AddUint64(&a.generation, 1)
	if a.monitor != nil {
		a.monitor.Clear(a.id)
	}
	emit(a.logger, "arena", "reset", LevelInfo)
}

// Dispose returns the backing block to the system allocator and marks the
// arena no longer live. It is idempotent: a second call is a no-op.
func (a *Arena) Dispose() {
	if a.live != stateLive {
		return
	}
	a.alloc.Free(a.base, a.kind)
	a.live = stateDisposed
	if a.monitor != nil {
		a.monitor.Clear(a.id)
	}
	deregisterArena(a.id)
	emit(a.logger, "arena", "disposed", LevelInfo)
}

// alignUp rounds off up to the next multiple of alignment. alignment must
// already be validated as a power of two by the caller.
func alignUp(off, alignment int) int {
	return (off + alignment - 1) &^ (alignment - 1)
}

// registry tracks every currently-constructed arena so LiveArenaInfos can
// drive Monitor.Summary without the caller separately bookkeeping
// ArenaInfo. Registration happens in New and is undone in Dispose.
var (
	registryMu sync.Mutex
	registry   = map[int]*Arena{}
)

func registerArena(a *Arena) {
	registryMu.Lock()
	registry[a.id] = a
	registryMu.Unlock()
}

func deregisterArena(id int) {
	registryMu.Lock()
	delete(registry, id)
	registryMu.Unlock()
}

// LiveArenaInfos returns ArenaInfo snapshots for every arena currently
// registered as live, suitable for passing to Monitor.Summary.
func LiveArenaInfos() []ArenaInfo {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]ArenaInfo, 0, len(registry))
	for _, a := range registry {
		if a.IsLive() {
			out = append(out, ArenaInfo{ID: a.id, Capacity: a.capacity, Waste: int64(a.waste)})
		}
	}
	return out
}
