package workers

import (
	"context"
	"errors"
	"fmt"
)

// task is the internal execution contract shared by every task representation
// accepted by AddTask, whether it started life as a bare func or as an
// exported Task[R].
type task[R interface{}] interface {
	execute(ctx context.Context) (R, error)
	sendsResult() bool
}

// newTask adapts fn into a task[R]. fn may be a raw func matching one of the
// three documented signatures, or an already-built Task[R].
func newTask[R interface{}](fn interface{}) (task[R], error) {
	switch typed := fn.(type) {
	case func(context.Context) (R, error):
		return &taskResultError[R]{fn: typed}, nil

	case func(ctx context.Context) R:
		return &taskResult[R]{fn: typed}, nil

	case func(context.Context) error:
		return &taskError[R]{fn: typed}, nil

	case Task[R]:
		return &exportedTaskAdapter[R]{t: typed}, nil

	default:
		return nil, errors.New("invalid task type")
	}
}

type taskResultError[R interface{}] struct {
	fn func(ctx context.Context) (R, error)
}

func (t *taskResultError[R]) sendsResult() bool { return true }

func (t *taskResultError[R]) execute(ctx context.Context) (R, error) {
	var (
		result R
		err    error
	)

	done := make(chan struct{}, 1)

	go func() {
		defer func() {
			if ePanic := recover(); ePanic != nil {
				err = fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic)
			}
			done <- struct{}{}
		}()

		result, err = t.fn(ctx)
	}()

	select {
	case <-ctx.Done():
		return *(new(R)), fmt.Errorf("%w: %w", ErrTaskCancelled, ctx.Err())
	case <-done:
		return result, err
	}
}

type taskResult[R interface{}] struct {
	fn func(ctx context.Context) R
}

func (t *taskResult[R]) sendsResult() bool { return true }

func (t *taskResult[R]) execute(ctx context.Context) (R, error) {
	var (
		result R
		err    error
	)

	done := make(chan struct{}, 1)

	go func() {
		defer func() {
			if ePanic := recover(); ePanic != nil {
				err = fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic)
			}
			done <- struct{}{}
		}()

		result = t.fn(ctx)
	}()

	select {
	case <-ctx.Done():
		return *(new(R)), fmt.Errorf("%w: %w", ErrTaskCancelled, ctx.Err())
	case <-done:
		return result, err
	}
}

type taskError[R interface{}] struct {
	fn func(ctx context.Context) error
}

func (t *taskError[R]) sendsResult() bool { return false }

func (t *taskError[R]) execute(ctx context.Context) (R, error) {
	var err error

	done := make(chan struct{}, 1)

	go func() {
		defer func() {
			if ePanic := recover(); ePanic != nil {
				err = fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic)
			}
			done <- struct{}{}
		}()

		err = t.fn(ctx)
	}()

	select {
	case <-ctx.Done():
		return *(new(R)), fmt.Errorf("%w: %w", ErrTaskCancelled, ctx.Err())
	case <-done:
		return *(new(R)), err
	}
}

// exportedTaskAdapter bridges an exported Task[R] (as produced by TaskFunc,
// TaskValue, TaskError, or by callers implementing Task[R] directly) into
// the internal task[R] contract used by worker[R] and the dispatch loop.
type exportedTaskAdapter[R interface{}] struct {
	t Task[R]
}

func (a *exportedTaskAdapter[R]) execute(ctx context.Context) (R, error) { return a.t.Run(ctx) }
func (a *exportedTaskAdapter[R]) sendsResult() bool                      { return a.t.SendResult() }

// Task is the exported task representation accepted by AddTask alongside
// bare funcs. Build one with TaskFunc, TaskValue, or TaskError.
type Task[R any] interface {
	// Run executes the task and returns its result (when SendResult is true)
	// and any error.
	Run(ctx context.Context) (R, error)

	// SendResult reports whether Run's result should be emitted on the
	// results channel. Error-only tasks (built via TaskError) return false.
	SendResult() bool
}

type taskKind int

const (
	taskKindFuncErr taskKind = iota
	taskKindError
	taskKindValue
)

type genericTask[R any] struct {
	kind   taskKind
	fnErr  func(context.Context) (R, error)
	fnOnly func(context.Context) error
	fnVal  func(context.Context) R
}

func (t *genericTask[R]) Run(ctx context.Context) (R, error) {
	switch t.kind {
	case taskKindError:
		return (&taskError[R]{fn: t.fnOnly}).execute(ctx)
	case taskKindValue:
		return (&taskResult[R]{fn: t.fnVal}).execute(ctx)
	default:
		return (&taskResultError[R]{fn: t.fnErr}).execute(ctx)
	}
}

func (t *genericTask[R]) SendResult() bool { return t.kind != taskKindError }

// TaskFunc builds a Task[R] from a function returning both a result and an
// error.
func TaskFunc[R any](fn func(context.Context) (R, error)) Task[R] {
	return &genericTask[R]{kind: taskKindFuncErr, fnErr: fn}
}

// TaskValue builds a Task[R] from a function that cannot fail.
func TaskValue[R any](fn func(context.Context) R) Task[R] {
	return &genericTask[R]{kind: taskKindValue, fnVal: fn}
}

// TaskError builds an error-only Task[R]: it never emits a result, only
// (possibly) an error.
func TaskError[R any](fn func(context.Context) error) Task[R] {
	return &genericTask[R]{kind: taskKindError, fnOnly: fn}
}
