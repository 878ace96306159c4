package objpool

// fixed is a bounded pool generalized on pool.fixed: it holds at most
// capacity live values plus a small overflow buffer, and falls back to
// newFn when nothing is available to reuse.
type fixed[T any] struct {
	available chan T
	all       chan T
	buf       chan T
	newFn     func() T
}

// NewFixed builds a Pool that never holds on to more than capacity
// manufactured values at once (plus a bounded overflow buffer), calling
// newFn to manufacture new ones as needed.
func NewFixed[T any](capacity uint, newFn func() T) Pool[T] {
	return &fixed[T]{
		available: make(chan T, capacity),
		all:       make(chan T, capacity),
		buf:       make(chan T, 1024),
		newFn:     newFn,
	}
}

func (p *fixed[T]) Get() T {
	select {
	case el := <-p.available:
		return el

	case el := <-p.buf:
		return el

	default:
		var el T

		if len(p.all) < cap(p.all) {
			el = p.newFn()
		} else {
			el = <-p.all
		}

		select {
		case p.all <- el:
		case p.buf <- el:
		default:
		}
		return el
	}
}

func (p *fixed[T]) Put(el T) {
	select {
	case p.available <- el:
	case p.all <- el:
	case p.buf <- el:
	default:
	}
}
