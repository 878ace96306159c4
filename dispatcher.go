package workers

import (
	"context"
	"sync"
)

// dispatcher reads tasks from the input channel and runs each through exec.
// It tracks inflight tasks with a WaitGroup. The dispatcher stops when ctx.Done()
// is closed. It never closes channels it doesn't own and doesn't drain tasks
// after cancellation (mirrors Workers.Start's dispatch loop semantics).
type dispatcher[R any] struct {
	tasks    <-chan Task[R]
	exec     func(ctx context.Context, t Task[R])
	inflight *sync.WaitGroup
}

func newDispatcher[R any](tasks <-chan Task[R], exec func(ctx context.Context, t Task[R]), inflight *sync.WaitGroup) *dispatcher[R] {
	return &dispatcher[R]{tasks: tasks, exec: exec, inflight: inflight}
}

// run starts the dispatch loop and returns when the context is canceled.
func (d *dispatcher[R]) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// stop dispatcher without mutating tasks channel or draining
			return
		case t := <-d.tasks:
			d.inflight.Add(1)
			go func(tt Task[R]) {
				defer d.inflight.Done()
				d.exec(ctx, tt)
			}(t)
		}
	}
}
