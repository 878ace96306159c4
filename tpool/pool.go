package tpool

import (
	"container/list"
	"sync"
	"time"

	"github.com/ygrebnov/concoro/metrics"
)

// MaxThreads is the hard ceiling on a Pool's worker count, mirroring
// TPOOL_MAX_THREADS from thread_pool.h.
const MaxThreads = 20

// MaxTasks is the hard ceiling on tasks a Pool will hold pending or
// running at once, mirroring TPOOL_MAX_TASKS.
const MaxTasks = 100000

// Pool is a bounded set of worker goroutines draining a shared FIFO of
// tasks, grounded on struct thread_pool. Workers are spawned lazily, on
// demand, up to maxThreads, and are never torn down until Delete.
type Pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	maxThreads    int
	numThreads    int
	activeThreads int
	shutdown      bool

	queue    list.List // of *Task, FIFO
	inFlight int       // queued + running, bounded by MaxTasks

	wg sync.WaitGroup

	metrics       metrics.Provider
	tasksPushed   metrics.Counter
	tasksFinished metrics.Counter
	queueDepth    metrics.UpDownCounter
	execLatency   metrics.Histogram
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithMetrics attaches a metrics.Provider the pool reports instruments to.
// The default, when omitted, is metrics.NewNoopProvider.
func WithMetrics(p metrics.Provider) Option {
	return func(pool *Pool) { pool.metrics = p }
}

// NewPool constructs a Pool willing to grow to maxThreads workers.
// maxThreads must be in [1, MaxThreads]; anything else returns
// ErrInvalidArgument, mirroring thread_pool_new's bounds check.
func NewPool(maxThreads int, opts ...Option) (*Pool, error) {
	if maxThreads < 1 || maxThreads > MaxThreads {
		return nil, ErrInvalidArgument
	}
	p := &Pool{maxThreads: maxThreads, metrics: metrics.NewNoopProvider()}
	for _, o := range opts {
		o(p)
	}
	p.cond = sync.NewCond(&p.mu)

	p.tasksPushed = p.metrics.Counter("tpool_tasks_pushed_total", metrics.WithDescription("tasks pushed onto the pool"))
	p.tasksFinished = p.metrics.Counter("tpool_tasks_finished_total", metrics.WithDescription("tasks that finished executing"))
	p.queueDepth = p.metrics.UpDownCounter("tpool_queue_depth", metrics.WithDescription("tasks pending or running"))
	p.execLatency = p.metrics.Histogram("tpool_task_duration_seconds", metrics.WithUnit("seconds"))

	return p, nil
}

// ThreadCount reports the number of worker goroutines spawned so far
// (never decreases until Delete).
func (p *Pool) ThreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numThreads
}

// Push enqueues task for execution, spawning a new worker if the pool
// hasn't yet reached maxThreads and every existing worker is busy.
//
// A task may be pushed once while CREATED, or again after it has
// FINISHED (which resets it to QUEUED for another run). Pushing a task
// that is still QUEUED or RUNNING is caller error; spec.md's push error
// table reserves ErrTaskInPool for Delete's precondition alone, so this
// case returns ErrInvalidArgument instead.
func (p *Pool) Push(t *Task) error {
	if t == nil {
		return ErrInvalidArgument
	}

	t.mu.Lock()
	if t.pushed && t.state != StateFinished {
		t.mu.Unlock()
		return ErrInvalidArgument
	}
	t.state = StateQueued
	t.pushed = true
	t.joined = false
	t.detached = false
	t.done = make(chan struct{})
	t.pool = p
	t.mu.Unlock()

	p.mu.Lock()
	if p.inFlight >= MaxTasks {
		p.mu.Unlock()
		return ErrTooManyTasks
	}
	p.queue.PushBack(t)
	p.inFlight++
	if p.numThreads < p.maxThreads && p.activeThreads == p.numThreads {
		p.spawnWorkerLocked()
	}
	p.cond.Signal()
	p.mu.Unlock()

	p.tasksPushed.Add(1)
	p.queueDepth.Add(1)
	return nil
}

// Delete shuts the pool down: it fails with ErrHasTasks if any task is
// still queued or running, otherwise it wakes and joins every worker
// goroutine before returning. A deleted Pool must not be reused.
func (p *Pool) Delete() error {
	p.mu.Lock()
	if p.queue.Len() > 0 || p.activeThreads > 0 {
		p.mu.Unlock()
		return ErrHasTasks
	}
	p.shutdown = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// spawnWorkerLocked starts one more worker goroutine. Callers must hold
// p.mu.
func (p *Pool) spawnWorkerLocked() {
	p.numThreads++
	p.wg.Add(1)
	go p.worker()
}

// worker is the loop run by every pool goroutine, grounded on
// thread_pool.c's worker(): wait for a task or shutdown, run it to
// completion, publish its result, repeat. Lock order is always
// pool -> task: the pool lock is released before the task lock is
// taken.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for !p.shutdown && p.queue.Len() == 0 {
			p.cond.Wait()
		}
		if p.queue.Len() == 0 {
			p.mu.Unlock()
			return
		}
		front := p.queue.Front()
		p.queue.Remove(front)
		p.activeThreads++
		p.mu.Unlock()

		task := front.Value.(*Task)

		task.mu.Lock()
		task.state = StateRunning
		fn, arg := task.fn, task.arg
		task.mu.Unlock()

		start := time.Now()
		result := fn(arg)
		elapsed := time.Since(start)

		p.mu.Lock()
		p.activeThreads--
		p.inFlight--
		p.cond.Signal()
		p.mu.Unlock()

		task.mu.Lock()
		task.result = result
		task.state = StateFinished
		close(task.done)
		detached := task.detached
		task.mu.Unlock()

		p.tasksFinished.Add(1)
		p.queueDepth.Add(-1)
		p.execLatency.Record(elapsed.Seconds())

		if detached {
			task.free()
		}
	}
}
