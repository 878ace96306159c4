package corobus

import (
	"sync"

	"github.com/ygrebnov/concoro/objpool"
)

// Bus is a mutable collection of channel slots indexed by a stable,
// reusable, nonnegative handle, grounded on corobus.c's struct coro_bus.
// Open returns the lowest free handle; Close frees it for reuse.
type Bus struct {
	mu       sync.Mutex
	channels []*channel // nil entry = free slot

	// snapshotPool recycles the []*channel scratch slices that
	// Broadcast/TryBroadcast take on every call, instead of allocating
	// one fresh per call.
	snapshotPool objpool.Pool[[]*channel]
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		snapshotPool: objpool.NewDynamic(func() []*channel { return nil }),
	}
}

// Open creates a channel with the given positive capacity and returns its
// handle: the lowest currently-free slot index, growing the slot table
// only if every existing slot is in use. Mirrors coro_bus_channel_open.
//
// A non-positive capacity is accepted (as the original does): every
// subsequent send on it blocks or would-block forever, since no space is
// ever available.
func (b *Bus) Open(capacity int) int {
	ch := newChannel(capacity)

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, slot := range b.channels {
		if slot == nil {
			b.channels[i] = ch
			return i
		}
	}
	b.channels = append(b.channels, ch)
	return len(b.channels) - 1
}

// resolve returns the channel at handle, or ErrNoChannel for a negative,
// out-of-range, or free handle.
func (b *Bus) resolve(handle int) (*channel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handle < 0 || handle >= len(b.channels) || b.channels[handle] == nil {
		return nil, ErrNoChannel
	}
	return b.channels[handle], nil
}

// Close marks the channel at handle closed, wakes every waiter on it with
// ErrNoChannel, and frees the slot for reuse by a future Open. Closing an
// invalid or already-closed handle returns ErrNoChannel.
func (b *Bus) Close(handle int) error {
	b.mu.Lock()
	if handle < 0 || handle >= len(b.channels) || b.channels[handle] == nil {
		b.mu.Unlock()
		return ErrNoChannel
	}
	ch := b.channels[handle]
	b.channels[handle] = nil
	b.mu.Unlock()

	ch.close()
	return nil
}

// Send blocks until v fits in the channel at handle or the channel
// closes.
func (b *Bus) Send(handle int, v uint32) error {
	ch, err := b.resolve(handle)
	if err != nil {
		return err
	}
	return ch.send(v)
}

// TrySend appends v without blocking, failing with ErrWouldBlock if the
// channel is full.
func (b *Bus) TrySend(handle int, v uint32) error {
	ch, err := b.resolve(handle)
	if err != nil {
		return err
	}
	return ch.trySend(v)
}

// Recv blocks until a value is available or the channel is drained and
// closed.
func (b *Bus) Recv(handle int) (uint32, error) {
	ch, err := b.resolve(handle)
	if err != nil {
		return 0, err
	}
	return ch.recv()
}

// TryRecv reads a value without blocking, failing with ErrWouldBlock if
// the channel is empty and still open.
func (b *Bus) TryRecv(handle int) (uint32, error) {
	ch, err := b.resolve(handle)
	if err != nil {
		return 0, err
	}
	return ch.tryRecv()
}

// SendBatch blocks until at least one value fits, then transfers
// min(available space, len(data)) values in a single run, grounded on
// coro_bus_send_v. It returns the count transferred.
func (b *Bus) SendBatch(handle int, data []uint32) (int, error) {
	ch, err := b.resolve(handle)
	if err != nil {
		return 0, err
	}
	return ch.sendBatch(data)
}

// TrySendBatch is the non-blocking counterpart of SendBatch.
func (b *Bus) TrySendBatch(handle int, data []uint32) (int, error) {
	ch, err := b.resolve(handle)
	if err != nil {
		return 0, err
	}
	return ch.trySendBatch(data)
}

// RecvBatch blocks until at least one value is buffered, then reads
// min(buffered, len(out)) values into out, grounded on coro_bus_recv_v.
func (b *Bus) RecvBatch(handle int, out []uint32) (int, error) {
	ch, err := b.resolve(handle)
	if err != nil {
		return 0, err
	}
	return ch.recvBatch(out)
}

// TryRecvBatch is the non-blocking counterpart of RecvBatch.
func (b *Bus) TryRecvBatch(handle int, out []uint32) (int, error) {
	ch, err := b.resolve(handle)
	if err != nil {
		return 0, err
	}
	return ch.tryRecvBatch(out)
}

// openChannels returns every currently open channel, in ascending handle
// order, borrowed from snapshotPool. Used by Broadcast/TryBroadcast,
// which must operate on a consistent snapshot of the handle table; the
// caller returns the slice via releaseSnapshot once done with it.
func (b *Bus) openChannels() []*channel {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.snapshotPool.Get()[:0]
	for _, ch := range b.channels {
		if ch != nil {
			out = append(out, ch)
		}
	}
	return out
}

// releaseSnapshot returns a slice obtained from openChannels to the pool.
func (b *Bus) releaseSnapshot(s []*channel) {
	b.snapshotPool.Put(s[:0])
}

// TryBroadcast appends v to every currently open channel without
// blocking. It succeeds only if every open channel has space; if any is
// full it fails with ErrWouldBlock and appends to none. If the bus has no
// open channel it fails with ErrNoChannel. Grounded on
// coro_bus_try_broadcast.
func (b *Bus) TryBroadcast(v uint32) error {
	chans := b.openChannels()
	defer b.releaseSnapshot(chans)
	if len(chans) == 0 {
		return ErrNoChannel
	}

	// Lock every channel, in a fixed (ascending-handle) order, so a
	// concurrent TryBroadcast from another goroutine can't deadlock
	// against this one.
	for _, ch := range chans {
		ch.mu.Lock()
	}
	defer func() {
		for _, ch := range chans {
			ch.mu.Unlock()
		}
	}()

	// A channel snapshotted as open may have been closed (and its slot
	// freed for reuse) concurrently, between openChannels and the locks
	// above. Re-check under lock and skip it, matching the contract's
	// "closed-channel slots are skipped" rule.
	open := chans[:0:0]
	for _, ch := range chans {
		if !ch.isClosedLocked() {
			open = append(open, ch)
		}
	}
	if len(open) == 0 {
		return ErrNoChannel
	}

	for _, ch := range open {
		if !ch.hasSpaceLocked() {
			return ErrWouldBlock
		}
	}

	for _, ch := range open {
		ch.buf = append(ch.buf, v)
		ch.recvQ.wakeOne(nil)
	}
	return nil
}

// Broadcast blocks until every currently open channel has space, then
// appends v to each as a single atomic step and returns. It fails with
// ErrNoChannel if the bus has no open channel. Grounded on
// coro_bus_broadcast: try first; on WOULD_BLOCK, suspend on the first
// full channel's send queue and retry from the top once woken.
func (b *Bus) Broadcast(v uint32) error {
	for {
		chans := b.openChannels()

		if len(chans) == 0 {
			b.releaseSnapshot(chans)
			return ErrNoChannel
		}

		for _, ch := range chans {
			ch.mu.Lock()
		}

		open := make([]*channel, 0, len(chans))
		for _, ch := range chans {
			if !ch.isClosedLocked() {
				open = append(open, ch)
			}
		}
		if len(open) == 0 {
			for _, ch := range chans {
				ch.mu.Unlock()
			}
			b.releaseSnapshot(chans)
			return ErrNoChannel
		}

		full := -1
		for i, ch := range open {
			if !ch.hasSpaceLocked() {
				full = i
				break
			}
		}

		if full == -1 {
			for _, ch := range open {
				ch.buf = append(ch.buf, v)
				ch.recvQ.wakeOne(nil)
			}
			for _, ch := range chans {
				ch.mu.Unlock()
			}
			b.releaseSnapshot(chans)
			return nil
		}

		// Park on the first full channel's send queue, then unlock
		// everything and wait.
		t := open[full].sendQ.enqueue()
		for _, ch := range chans {
			ch.mu.Unlock()
		}
		b.releaseSnapshot(chans)

		if werr := <-t.ch; werr != nil {
			return werr
		}
		// Retry: either that channel drained, or some other channel
		// in a subsequent snapshot is now the bottleneck.
	}
}
