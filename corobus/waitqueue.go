package corobus

import "container/list"

// waitQueue is a FIFO of parked goroutines, grounded on corobus.c's
// wakeup_queue. The original links a stack-allocated wakeup_entry into an
// intrusive rlist, sound only because the cooperative scheduler guarantees
// the suspended coroutine's stack frame outlives the suspension. Go offers
// no such guarantee against a preemptive scheduler, so each waiter is
// represented by a heap-allocated ticket: a buffered channel of capacity
// one that the waiter blocks on, and that a waker sends a single error
// value into (nil meaning "retry", non-nil meaning "fail with this
// error").
//
// A waitQueue is always used under the lock of the Channel that owns it;
// it has no lock of its own.
type waitQueue struct {
	waiters list.List // of *ticket
}

// ticket is one parked waiter's wakeup slot. elem links it back into its
// waitQueue so it can remove itself.
type ticket struct {
	ch   chan error
	elem *list.Element
}

// enqueue appends a new ticket to the tail of the queue and returns it.
// The caller must release the owning Channel's lock before receiving from
// t.ch, and must not touch the queue again until it has.
func (q *waitQueue) enqueue() *ticket {
	t := &ticket{ch: make(chan error, 1)}
	t.elem = q.waiters.PushBack(t)
	return t
}

// remove unlinks t from the queue if it is still linked. It is a no-op if
// t has already been woken (and thus already removed). Mirrors
// wakeup_queue_suspend_this's unconditional removal of its own entry on
// resume; kept safe to call twice since a woken ticket may race a close.
func (q *waitQueue) remove(t *ticket) {
	if t.elem == nil {
		return
	}
	q.waiters.Remove(t.elem)
	t.elem = nil
}

// empty reports whether the queue has no parked waiters.
func (q *waitQueue) empty() bool {
	return q.waiters.Len() == 0
}

// wakeOne wakes the head of the queue, if any, passing it err (nil means
// "retry your operation", non-nil means "fail with this error"). Mirrors
// wakeup_queue_wakeup_one.
func (q *waitQueue) wakeOne(err error) {
	front := q.waiters.Front()
	if front == nil {
		return
	}
	q.waiters.Remove(front)
	t := front.Value.(*ticket)
	t.elem = nil
	t.ch <- err
}

// wakeAll wakes every parked waiter, in FIFO order, all with the same
// err. Mirrors wakeup_queue_wakeup_all; used by Close, which must ensure
// no coroutine is left parked on a channel that is going away.
func (q *waitQueue) wakeAll(err error) {
	for !q.empty() {
		q.wakeOne(err)
	}
}
