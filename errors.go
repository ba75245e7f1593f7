package arena

import "github.com/pkg/errors"

// Sentinel errors for every failure kind the core surfaces. Call sites that
// need to attach context wrap these with errors.Wrapf; comparisons should use
// errors.Is or errors.Cause rather than string matching.
var (
	// ErrInvalidAlignment is raised when a requested alignment is not a
	// power of two. At arena construction this is fatal to the caller; at
	// Arena.Allocate it is logged and returns a nil address, leaving the
	// arena's state untouched.
	ErrInvalidAlignment = errors.New("arena: alignment must be a power of two")

	// ErrOutOfMemory is returned by New when the system allocator cannot
	// satisfy a construction request. When an allocation would exceed an
	// arena's capacity, Arena.Allocate logs an Error and returns
	// (nil, false) rather than this value.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrInvalidElementType is raised when a view or sequence is
	// instantiated over a type that is not plain data.
	ErrInvalidElementType = errors.New("arena: element type must be unmanaged plain data")

	// ErrInvalidLength is raised when a view is constructed with length < 1.
	ErrInvalidLength = errors.New("arena: length must be >= 1")

	// ErrAllocationFailed is raised when a view or sequence cannot obtain
	// backing memory from its arena. It does not wrap a more specific cause:
	// the reason Arena.Allocate refused (out of capacity, disposed arena) is
	// reported only through the arena's logger.
	ErrAllocationFailed = errors.New("arena: allocation failed")

	// ErrIndexOutOfRange is raised by bounds-checked indexers and by
	// InsertAt/RemoveAt when the index is outside the valid range.
	ErrIndexOutOfRange = errors.New("arena: index out of range")

	// ErrCapacityExceeded is raised by Add, AddMany, and InsertAt when a
	// sequence has no remaining slots.
	ErrCapacityExceeded = errors.New("arena: capacity exceeded")

	// ErrEmptyRemove is raised by RemoveAt on an empty sequence.
	ErrEmptyRemove = errors.New("arena: remove from empty sequence")

	// ErrLengthMismatch is raised by View.CopyFrom/CopyTo when the source
	// and destination lengths differ.
	ErrLengthMismatch = errors.New("arena: length mismatch")

	// ErrUseAfterReset is raised in debug builds (see the arenadebug build
	// tag) when a view or sequence is accessed after its arena has been
	// reset.
	ErrUseAfterReset = errors.New("arena: use after reset")

	// ErrUseAfterDispose is raised when an operation is attempted on an
	// arena that has already been disposed.
	ErrUseAfterDispose = errors.New("arena: use after dispose")
)
