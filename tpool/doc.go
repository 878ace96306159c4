// Package tpool implements a work-stealing-free thread pool: a bounded set
// of worker goroutines draining a shared FIFO of tasks, grounded on
// original_source/4/thread_pool.c and thread_pool.h.
//
// A Pool grows its worker set lazily, up to MaxThreads, and never shrinks.
// A Task moves forward through CREATED -> QUEUED -> RUNNING -> FINISHED;
// pushed, joined, and detached are independent, sticky facts about a
// task's ownership, tracked alongside that state under one lock per task.
//
// Lock order is always pool -> task (see Pool.Push and the worker loop):
// no code path holds a task's lock while waiting on the pool's condition
// variable, and the worker releases the pool lock before taking the task
// lock to publish a result.
//
// Errors are never logged here; logging, if wanted, belongs to the
// caller.
package tpool
