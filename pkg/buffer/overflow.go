package buffer

import (
	"github.com/c360/ringpolicy/errors"
)

// Evictor is the view of a ring an overflow policy works with.
// Pop goes through the ring, so observers see evictions as ordinary pops.
type Evictor[T any] interface {
	Pop() (T, error)
	Len() int
	Cap() int
}

// OverflowPolicy decides what happens when Push finds the ring full.
//
// OnOverflow must either return a non-nil error and leave the ring untouched,
// or return nil with at least one slot freed. Returning nil without freeing a
// slot is a programming error and makes Push panic.
type OverflowPolicy[T any] interface {
	OnOverflow(q Evictor[T]) error
}

// DropCallback is called with the item an overflow policy evicted.
type DropCallback[T any] func(item T)

// Reject refuses the new item with an error wrapping errors.ErrOverflow.
type Reject[T any] struct{}

// OnOverflow implements OverflowPolicy.
func (Reject[T]) OnOverflow(Evictor[T]) error {
	return errors.WrapTransient(errors.ErrOverflow, "Reject", "OnOverflow", "store item in full buffer")
}

// EvictOldest pops the oldest item to make room for the new one.
type EvictOldest[T any] struct{}

// OnOverflow implements OverflowPolicy.
func (EvictOldest[T]) OnOverflow(q Evictor[T]) error {
	_, err := evict(q)
	return err
}

// EvictOldestNotify evicts like EvictOldest and reports each evicted item to OnDrop.
type EvictOldestNotify[T any] struct {
	OnDrop DropCallback[T]
}

// NewEvictOldestNotify returns an evicting policy that reports drops to callback.
func NewEvictOldestNotify[T any](callback DropCallback[T]) EvictOldestNotify[T] {
	return EvictOldestNotify[T]{OnDrop: callback}
}

// OnOverflow implements OverflowPolicy.
func (p EvictOldestNotify[T]) OnOverflow(q Evictor[T]) error {
	dropped, err := evict(q)
	if err != nil {
		return err
	}
	if p.OnDrop != nil {
		p.OnDrop(dropped)
	}
	return nil
}

func evict[T any](q Evictor[T]) (T, error) {
	if q.Len() == 0 {
		// Zero capacity: the ring is full while empty, nothing can be evicted.
		var zero T
		return zero, errors.WrapInvalid(errors.ErrOverflow, "EvictOldest", "OnOverflow",
			"evict from zero-capacity buffer")
	}
	return q.Pop()
}
