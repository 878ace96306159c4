package corobus

import "errors"

// Error codes mirror spec.md §6.1's four-value set (NONE is the absence of
// an error, represented by a nil return). Returned directly as the error
// result of every operation rather than through a thread-local "last
// error" accessor — see SPEC_FULL.md §1.1 for why that Open Question was
// resolved this way.
var (
	// ErrNoChannel is returned for a negative handle, an out-of-range
	// handle, a free slot, or a closed channel.
	ErrNoChannel = errors.New("corobus: no channel")

	// ErrWouldBlock is returned by a non-blocking (Try*) operation that
	// cannot make progress without suspending.
	ErrWouldBlock = errors.New("corobus: would block")

	// ErrNoMemory is returned when growing a channel's internal buffer
	// fails. Go's allocator panics rather than returning an error on
	// exhaustion, so in practice this is unreachable; it is kept so the
	// public contract matches spec.md's error-code table exactly.
	ErrNoMemory = errors.New("corobus: no memory")
)
