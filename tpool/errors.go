package tpool

import "errors"

// Error codes mirror spec.md §6.2's thread-pool error set, grounded on
// thread_pool.h's enum thread_poool_errcode.
var (
	ErrInvalidArgument = errors.New("tpool: invalid argument")
	ErrTooManyTasks    = errors.New("tpool: too many tasks")
	ErrHasTasks        = errors.New("tpool: pool has pending or running tasks")
	ErrTaskNotPushed   = errors.New("tpool: task has not been pushed")
	ErrTaskInPool      = errors.New("tpool: task is still queued or running")
	ErrNotImplemented  = errors.New("tpool: not implemented")
	ErrTimeout         = errors.New("tpool: timed out waiting for task")
	ErrNotEnoughMemory = errors.New("tpool: not enough memory")
	ErrSystem          = errors.New("tpool: system error")
)
