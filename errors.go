package workers

import "errors"

// Namespace prefixes every sentinel error in this package, so a message
// logged or printed without its error value still identifies which engine
// layer raised it (convenience layer vs. tpool vs. corobus).
const Namespace = "concoro/workers"

var (
	// ErrInvalidState is returned by AddTask when the Workers instance has
	// not been started and was constructed with an unbuffered tasks channel
	// (TasksBufferSize == 0): there is nowhere to park the task until Start
	// creates the channel, so intake must be refused rather than block.
	ErrInvalidState = errors.New(
		Namespace + ": cannot add a task for non-started workers with unbuffered tasks channel",
	)

	// ErrTaskCancelled wraps ctx.Err() when a task's context is canceled
	// before its function returns.
	ErrTaskCancelled = errors.New(Namespace + ": task execution cancelled")

	// ErrTaskPanicked wraps the recovered value when a task function panics.
	// The task wrappers in task.go recover panics raised by the task
	// function; worker.execute recovers any other panic, since the tpool
	// engine driving these tasks does not recover panics itself.
	ErrTaskPanicked = errors.New(Namespace + ": task execution panicked")

	// ErrInvalidConfig is returned by NewOptions for conflicting or
	// out-of-range options, and by New (as a panic) for an invalid Config.
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)
