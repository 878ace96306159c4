package workers

import (
	"context"
	"sync"

	"github.com/ygrebnov/concoro/tpool"
)

// fifoWorkers is a simple FIFO executor that runs tasks sequentially in submission order.
// It implements the Workers interface by driving a tpool.Pool capped at a single worker
// thread, which gives strict execution ordering for free instead of hand-rolling a
// single-goroutine loop.
// It honors Config.StartImmediately, Config.TasksBufferSize, and Config.StopOnError.
// Results and errors are delivered via the same channel semantics as regular workers.New.
//
// Note: FIFO is intentionally single-threaded to preserve strict ordering.
// This is useful as a baseline for comparisons with pooled executors.
type fifoWorkers[R interface{}] struct {
	config *Config

	once      sync.Once
	closeOnce sync.Once

	engine *tpool.Pool
	worker *worker[R]

	inflight sync.WaitGroup
	cancel   context.CancelFunc

	tasks   chan task[R]
	results chan R
	errors  chan error
}

// NewFIFO creates a new FIFO Workers executor.
// If config is nil, defaults are used. If StartImmediately is true, processing starts right away.
func NewFIFO[R interface{}](ctx context.Context, config *Config) Workers[R] {
	if config == nil {
		cfg := defaultConfig()
		config = &cfg
	}

	r := make(chan R, config.ResultsBufferSize)

	eCapacity := config.ErrorsBufferSize
	if config.StopOnError {
		eCapacity = config.StopOnErrorErrorsBufferSize
	}
	e := make(chan error, eCapacity)

	engine, err := tpool.NewPool(1)
	if err != nil {
		panic(err)
	}

	tasks := make(chan task[R], config.TasksBufferSize)
	if config.TasksBufferSize == 0 {
		tasks = nil // to return error in AddTask until Start.
	}

	w := &fifoWorkers[R]{
		config:  config,
		tasks:   tasks,
		results: r,
		errors:  e,
		engine:  engine,
		worker:  newWorker[R](r, e),
	}

	if config.StartImmediately {
		w.Start(ctx)
	}

	return w
}

// Start starts sequential processing of queued tasks in FIFO order.
func (w *fifoWorkers[R]) Start(ctx context.Context) {
	w.once.Do(func() {
		ctx, w.cancel = context.WithCancel(ctx)

		if w.tasks == nil {
			w.tasks = make(chan task[R])
		}

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-w.tasks:
					w.inflight.Add(1)
					w.runOne(ctx, t)
					w.inflight.Done()
					if w.config.StopOnError {
						select {
						case e := <-w.errors:
							// Put the error back for the caller to observe, then stop.
							w.errors <- e
							w.cancel()
							return
						default:
						}
					}
				}
			}
		}()
	})
}

// runOne submits a single task to the single-thread tpool engine and blocks
// until it completes, preserving strict FIFO order across calls.
func (w *fifoWorkers[R]) runOne(ctx context.Context, t task[R]) {
	tt := tpool.NewTask(func(any) any {
		w.worker.execute(ctx, t)
		return nil
	}, nil)

	if err := w.engine.Push(tt); err != nil {
		w.worker.execute(ctx, t)
		return
	}
	_, _ = tt.Join()
}

// AddTask enqueues a task for sequential execution.
func (w *fifoWorkers[R]) AddTask(t interface{}) error {
	tt, err := newTask[R](t)
	if err != nil {
		return err
	}

	switch {
	case w.tasks == nil:
		// Keep the same error message as the standard workers to simplify diagnosis.
		return ErrInvalidState
	case cap(w.tasks) > 0 && len(w.tasks) == cap(w.tasks):
		panic("tasks channel is full")
	}

	w.tasks <- tt
	return nil
}

// GetResults returns a channel to receive tasks execution results.
func (w *fifoWorkers[R]) GetResults() chan R { return w.results }

// GetErrors returns a channel to receive tasks execution errors.
func (w *fifoWorkers[R]) GetErrors() chan error { return w.errors }

// Close stops intake, waits for the in-flight task to finish, tears down the
// tpool engine, and closes the results/errors channels.
func (w *fifoWorkers[R]) Close() {
	w.closeOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.inflight.Wait()
		if w.engine != nil {
			_ = w.engine.Delete()
		}
		close(w.results)
		close(w.errors)
	})
}
