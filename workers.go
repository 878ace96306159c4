package workers

import (
	"context"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/ygrebnov/concoro/objpool"
	"github.com/ygrebnov/concoro/tpool"
)

// Config holds Workers configuration.
type Config struct {
	// MaxWorkers defines workers pool maximum size.
	// Zero (default) means that the size will be set dynamically.
	// Zero value is suitable for the majority of cases.
	// Default: 0 (dynamic pool)
	MaxWorkers uint

	// StartImmediately defines whether workers start executing tasks immediately or not.
	// Default: false
	StartImmediately bool

	// StopOnError stops tasks execution if an error occurs.
	// Default: false
	StopOnError bool

	// TasksBufferSize defines the size of the tasks channel buffer.
	// Default: 0 (unbuffered)
	TasksBufferSize uint

	// ResultsBufferSize defines the size of the results channel buffer.
	// Default: 1000 (tpool.MaxTasks / 100).
	ResultsBufferSize uint

	// ErrorsBufferSize defines the size of the outgoing errors channel buffer.
	// Default: 1000 (tpool.MaxTasks / 100).
	ErrorsBufferSize uint

	// StopOnErrorErrorsBufferSize defines the size of the internal errors buffer used
	// when StopOnError is enabled. Smaller buffer triggers cancellation quickly.
	// Default: 100.
	StopOnErrorErrorsBufferSize uint
}

// Workers is an interface that defines methods on Workers.
type Workers[R interface{}] interface {
	// Start starts the Workers and begins executing tasks.
	// Start may be called only once.
	// In case 'StopOnError' is set to true, tasks execution is stopped on error.
	Start(context.Context)

	// AddTask adds a task to the Workers queue. t may be either a function with
	// one of the following signatures:
	//
	// * func(context.Context) (R, error),
	//
	// * func(context.Context) R,
	//
	// * func(context.Context) error,
	//
	// or a Task[R] built via TaskFunc, TaskValue, or TaskError.
	//
	// In case the Workers have been started, the task will be dispatched immediately and
	// executed as soon as a worker is available.
	AddTask(interface{}) error

	// GetResults returns a channel to receive tasks execution results.
	GetResults() chan R

	// GetErrors returns a channel to receive tasks execution errors.
	GetErrors() chan error

	// Close stops accepting new tasks, waits for in-flight tasks to finish,
	// tears down the underlying engine, and closes the results and errors
	// channels. Close is idempotent.
	Close()
}

type workers[R interface{}] struct {
	config *Config

	once      sync.Once
	closeOnce sync.Once

	engine   *tpool.Pool
	wrappers objpool.Pool[*worker[R]]

	inflight sync.WaitGroup
	cancel   context.CancelFunc

	tasks   chan task[R]
	results chan R
	errors  chan error // outward errors channel

	// When StopOnError is enabled, workers produce into this smaller internal buffer,
	// which Start() drains and forwards into the outward errors channel, then cancels.
	errorsBuf chan error

	log *logiface.Logger[*stumpy.Event]
}

// defaultLog is the structured logger every Workers instance reports
// lifecycle transitions to, grounded on logiface-stumpy's L.New pattern.
var defaultLog = stumpy.L.New(stumpy.L.WithStumpy())

// New creates a new Workers object instance and returns it.
//
// Deprecated: This Config-based constructor will be deprecated in a future release.
// Prefer NewOptions(ctx, opts...) which will become the primary New in the next major version.
//
// The Workers object is not started automatically.
// To start it, either 'StartImmediately' configuration option must be set to true or
// the Start method must be called explicitly.
func New[R interface{}](ctx context.Context, config *Config) Workers[R] {
	if config == nil {
		cfg := defaultConfig()
		config = &cfg
	}

	if err := validateConfig(config); err != nil {
		panic(err)
	}

	r := make(chan R, config.ResultsBufferSize)

	// Prepare the channel that workers will write errors to.
	// In StopOnError mode, workers produce into a smaller internal buffer (errorsBuf)
	// which the controller drains and forwards to the outward errors channel.
	var workerErrors chan error
	if config.StopOnError {
		workerErrors = make(chan error, config.StopOnErrorErrorsBufferSize)
	} else {
		workerErrors = make(chan error, config.ErrorsBufferSize)
	}

	newWrapperFn := func() *worker[R] { return newWorker(r, workerErrors) }

	var wp objpool.Pool[*worker[R]]
	maxThreads := tpool.MaxThreads
	if config.MaxWorkers > 0 {
		wp = objpool.NewFixed(config.MaxWorkers, newWrapperFn)
		if int(config.MaxWorkers) < maxThreads {
			maxThreads = int(config.MaxWorkers)
		}
	} else {
		wp = objpool.NewDynamic(newWrapperFn)
	}

	engine, err := tpool.NewPool(maxThreads)
	if err != nil {
		// Only reachable if maxThreads somehow falls outside tpool's own
		// bounds, which config validation above already rules out.
		panic(err)
	}

	tasks := make(chan task[R], config.TasksBufferSize)
	if config.TasksBufferSize == 0 {
		tasks = nil // to return error in AddTask.
	}

	w := &workers[R]{
		config:   config,
		tasks:    tasks,
		results:  r,
		engine:   engine,
		wrappers: wp,
		log:      defaultLog,
	}

	if config.StopOnError {
		// outward errors channel keeps a larger buffer for receivers
		w.errors = make(chan error, config.ErrorsBufferSize)
		w.errorsBuf = workerErrors
	} else {
		// in non-stoppable mode, workers write directly to the outward errors channel
		w.errors = workerErrors
	}

	if config.StartImmediately {
		w.Start(ctx)
	}

	return w
}

// Start starts the Workers and begins executing tasks.
func (w *workers[R]) Start(ctx context.Context) {
	w.once.Do(func() {
		w.log.Info().Uint64(`maxWorkers`, uint64(w.config.MaxWorkers)).Log(`workers: starting`)

		if w.tasks == nil {
			w.tasks = make(chan task[R])
		}

		ctx, w.cancel = context.WithCancel(ctx)

		// If StopOnError is enabled, forward internal errors to the outward
		// channel. Cancel first to stop scheduling new work; then forward the
		// triggering error. If the outward channel is full, forward in a
		// detached goroutine to avoid blocking cancellation.
		if w.config.StopOnError {
			go func(ctx context.Context) {
				for {
					select {
					case <-ctx.Done():
						return
					case e := <-w.errorsBuf:
						w.log.Warning().Err(e).Log(`workers: stop-on-error triggered`)
						// Cancel first so dispatch loop stops promptly.
						w.cancel()
						// Best-effort, non-blocking forward; if full, forward asynchronously.
						select {
						case w.errors <- e:
							// forwarded
						default:
							go func(err error) { w.errors <- err }(e)
						}
					}
				}
			}(ctx)
		}

		go func(ctx context.Context) {
			for {
				select {
				case <-ctx.Done():
					return

				case t := <-w.tasks:
					w.inflight.Add(1)
					go func(t task[R]) {
						defer w.inflight.Done()
						w.dispatch(ctx, t)
					}(t)
				}
			}
		}(ctx)
	})
}

// AddTask adds a task to the Workers queue.
func (w *workers[R]) AddTask(t interface{}) error {
	tt, err := newTask[R](t)
	if err != nil {
		return err
	}

	switch {
	case w.tasks == nil:
		return ErrInvalidState

	case cap(w.tasks) > 0 && len(w.tasks) == cap(w.tasks):
		panic("tasks channel is full")
	}

	w.tasks <- tt
	return nil
}

// GetResults returns a channel to receive tasks execution results.
func (w *workers[R]) GetResults() chan R {
	return w.results
}

// GetErrors returns a channel to receive tasks execution errors.
func (w *workers[R]) GetErrors() chan error {
	return w.errors
}

// Close stops the Workers instance: it cancels dispatch, waits for every
// in-flight task to finish, tears down the tpool engine, and closes the
// results/errors channels. Safe to call even if Start was never called.
func (w *workers[R]) Close() {
	w.closeOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.inflight.Wait()
		w.log.Debug().Log(`workers: in-flight tasks drained`)

		if w.engine != nil {
			// All dispatched tasks have been Joined by dispatch before
			// inflight.Done, so the engine has no pending or running work.
			_ = w.engine.Delete()
		}

		close(w.results)
		close(w.errors)
		w.log.Info().Log(`workers: closed`)
	})
}

// dispatch hands one task to the tpool engine and blocks until it finishes.
// The engine, not this goroutine, is what bounds overall concurrency: Start
// spawns one such goroutine per dequeued task, so the number of tasks
// in flight here can exceed maxThreads, but only maxThreads of them are
// ever actually running inside engine.worker at once.
func (w *workers[R]) dispatch(ctx context.Context, t task[R]) {
	ww := w.wrappers.Get()
	defer w.wrappers.Put(ww)

	tt := tpool.NewTask(func(any) any {
		ww.execute(ctx, t)
		return nil
	}, nil)

	if err := w.engine.Push(tt); err != nil {
		// Engine saturated (ErrTooManyTasks) or misused; never silently
		// drop the task.
		ww.execute(ctx, t)
		return
	}
	_, _ = tt.Join()
}
