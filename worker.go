package workers

import (
	"context"
	"fmt"
)

// worker adapts a task[R] to the results/errors channel pair Workers exposes.
// It is invoked from inside the closure passed to tpool.NewTask (see
// workers.go's dispatch). tpool itself does not recover panics in pushed
// task functions. The task wrappers in task.go recover panics raised by the
// task function; the recover here catches any other panic raised during
// execute, so none escapes to kill the engine goroutine that was running it.
type worker[R interface{}] struct {
	results chan R
	errors  chan error
}

func newWorker[R interface{}](results chan R, errors chan error) *worker[R] {
	return &worker[R]{results: results, errors: errors}
}

func (w *worker[R]) execute(ctx context.Context, t task[R]) {
	defer func() {
		if ePanic := recover(); ePanic != nil {
			w.errors <- fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic)
		}
	}()

	result, err := t.execute(ctx)

	if err != nil {
		w.errors <- err
		return
	}

	if t.sendsResult() {
		w.results <- result
	}
}
