package objpool

import "sync"

// dynamic wraps sync.Pool, generalized on pool.NewDynamic: no fixed
// capacity, values are reclaimed by the garbage collector under memory
// pressure.
type dynamic[T any] struct {
	p sync.Pool
}

// NewDynamic builds an unbounded Pool that manufactures a new T via newFn
// whenever Get finds nothing to reuse.
func NewDynamic[T any](newFn func() T) Pool[T] {
	return &dynamic[T]{p: sync.Pool{New: func() any { return newFn() }}}
}

func (d *dynamic[T]) Get() T {
	return d.p.Get().(T)
}

func (d *dynamic[T]) Put(v T) {
	d.p.Put(v)
}
