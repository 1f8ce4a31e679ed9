package buffer

import (
	"fmt"

	"github.com/c360/ringpolicy/errors"
)

// Ring is a fixed-capacity FIFO with a statically selected overflow policy O
// and observer B.
//
// A Ring is not safe for concurrent use and must not be copied; pass it by
// pointer and hand ownership over with Take.
type Ring[T any, O OverflowPolicy[T], B Observer[T]] struct {
	_        noCopy
	s        storage[T]
	overflow O
	observer B

	// evicting is set while the overflow policy runs, so pops it makes are
	// reported as drops.
	evicting bool
}

// New creates a ring that holds up to capacity items.
// Capacity 0 is allowed and gives a ring that is always both empty and full.
func New[T any, O OverflowPolicy[T], B Observer[T]](capacity int, overflow O, observer B) (*Ring[T, O, B], error) {
	if capacity < 0 {
		return nil, errors.WrapInvalid(
			fmt.Errorf("capacity %d: %w", capacity, errors.ErrInvalidCapacity),
			"Ring", "New", "validate capacity")
	}

	return &Ring[T, O, B]{
		s:        newStorage[T](capacity),
		overflow: overflow,
		observer: observer,
	}, nil
}

// NewRejecting creates a silent ring whose Push fails with errors.ErrOverflow when full.
func NewRejecting[T any](capacity int) (*Ring[T, Reject[T], NoOp[T]], error) {
	return New[T](capacity, Reject[T]{}, NoOp[T]{})
}

// NewEvicting creates a silent ring whose Push drops the oldest item when full.
func NewEvicting[T any](capacity int) (*Ring[T, EvictOldest[T], NoOp[T]], error) {
	return New[T](capacity, EvictOldest[T]{}, NoOp[T]{})
}

// Push appends item at the tail. When the ring is full the overflow policy
// runs first; its error, if any, is returned unchanged and the ring is left
// as it was.
func (r *Ring[T, O, B]) Push(item T) error {
	if r.s.released() {
		return errors.WrapInvalid(errors.ErrReleased, "Ring", "Push", "push to released ring")
	}

	if r.s.full() {
		if err := r.handleOverflow(item); err != nil {
			return err
		}
		if r.s.released() || r.s.full() {
			panic(fmt.Sprintf("buffer: overflow policy %T returned nil without freeing a slot", r.overflow))
		}
	}

	r.s.put(item)
	r.observer.OnPush(item, r.s.len(), r.s.capacity)
	return nil
}

// Pop removes and returns the oldest item.
func (r *Ring[T, O, B]) Pop() (T, error) {
	var zero T

	if r.s.released() {
		return zero, errors.WrapInvalid(errors.ErrReleased, "Ring", "Pop", "pop from released ring")
	}
	if r.s.empty() {
		return zero, errors.WrapTransient(errors.ErrUnderflow, "Ring", "Pop", "pop empty buffer")
	}

	item := r.s.take()
	r.observer.OnPop(item, r.s.len(), r.s.capacity)
	if r.evicting {
		if o, ok := any(r.observer).(OverflowObserver[T]); ok {
			o.OnDrop(item, r.s.len(), r.s.capacity)
		}
	}
	return item, nil
}

// handleOverflow reports the overflow and runs the overflow policy for item.
func (r *Ring[T, O, B]) handleOverflow(item T) error {
	if o, ok := any(r.observer).(OverflowObserver[T]); ok {
		o.OnOverflow(item, r.s.len(), r.s.capacity)
	}

	r.evicting = true
	defer func() { r.evicting = false }()
	return r.overflow.OnOverflow(r)
}

// PopBatch removes up to max items in FIFO order. The observer fires once per item.
func (r *Ring[T, O, B]) PopBatch(max int) []T {
	if max <= 0 || r.s.released() || r.s.empty() {
		return nil
	}

	count := min(max, r.s.len())
	result := make([]T, 0, count)
	for i := 0; i < count; i++ {
		item := r.s.take()
		r.observer.OnPop(item, r.s.len(), r.s.capacity)
		result = append(result, item)
	}
	return result
}

// Peek returns the oldest item without removing it. The observer does not fire.
func (r *Ring[T, O, B]) Peek() (T, error) {
	var zero T

	if r.s.released() {
		return zero, errors.WrapInvalid(errors.ErrReleased, "Ring", "Peek", "peek released ring")
	}
	if r.s.empty() {
		return zero, errors.WrapTransient(errors.ErrUnderflow, "Ring", "Peek", "peek empty buffer")
	}
	return r.s.peek(), nil
}

// Len returns the number of buffered items.
func (r *Ring[T, O, B]) Len() int {
	if r.s.released() {
		return 0
	}
	return r.s.len()
}

// Cap returns the capacity requested at construction, or 0 once released.
func (r *Ring[T, O, B]) Cap() int {
	return r.s.capacity
}

// Occupancy returns the number of buffered items and the capacity.
func (r *Ring[T, O, B]) Occupancy() (occupancy, capacity int) {
	return r.Len(), r.Cap()
}

// IsEmpty reports whether the ring holds no items.
func (r *Ring[T, O, B]) IsEmpty() bool {
	return r.s.empty()
}

// IsFull reports whether the next Push has to go through the overflow policy.
func (r *Ring[T, O, B]) IsFull() bool {
	return r.s.full()
}

// Released reports whether the ring's storage was moved away or released.
func (r *Ring[T, O, B]) Released() bool {
	return r.s.released()
}

// Take moves the storage, indices and policies into a new Ring and leaves r
// released. Every later operation on r fails with errors.ErrReleased.
func (r *Ring[T, O, B]) Take() *Ring[T, O, B] {
	dst := &Ring[T, O, B]{
		s:        r.s.moveOut(),
		overflow: r.overflow,
		observer: r.observer,
	}

	var (
		zeroO O
		zeroB B
	)
	r.overflow = zeroO
	r.observer = zeroB
	return dst
}

// Release drops the buffered items and the storage block.
// Calling it again, or on a ring that was moved from, does nothing.
func (r *Ring[T, O, B]) Release() {
	r.s.release()
}

// noCopy lets go vet's copylocks check flag copies of a Ring.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
