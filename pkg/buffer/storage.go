package buffer

// storage is the fixed block behind a Ring. It holds capacity+1 slots so that
// head == tail always means empty and advance(tail) == head always means full,
// without a separate occupancy counter.
//
// Only slots in the circular range [head, tail) hold live values. Every other
// slot holds the zero value of T.
type storage[T any] struct {
	slots    []T
	head     int // oldest live slot, meaningful only when not empty
	tail     int // next slot to write
	capacity int
}

func newStorage[T any](capacity int) storage[T] {
	return storage[T]{
		slots:    make([]T, capacity+1),
		capacity: capacity,
	}
}

// advance returns the slot after i, wrapping to 0 past the last slot.
func (s *storage[T]) advance(i int) int {
	n := i + 1
	if n >= len(s.slots) {
		n -= len(s.slots)
	}
	return n
}

func (s *storage[T]) len() int {
	if s.tail >= s.head {
		return s.tail - s.head
	}
	return len(s.slots) - s.head + s.tail
}

func (s *storage[T]) empty() bool {
	return s.head == s.tail
}

func (s *storage[T]) full() bool {
	return s.slots != nil && s.advance(s.tail) == s.head
}

func (s *storage[T]) released() bool {
	return s.slots == nil
}

// put writes item into the tail slot. The caller must ensure !full().
func (s *storage[T]) put(item T) {
	s.slots[s.tail] = item
	s.tail = s.advance(s.tail)
}

// take moves the head value out and zeroes its slot. The caller must ensure !empty().
func (s *storage[T]) take() T {
	var zero T
	item := s.slots[s.head]
	s.slots[s.head] = zero
	s.head = s.advance(s.head)
	return item
}

func (s *storage[T]) peek() T {
	return s.slots[s.head]
}

// moveOut hands the whole block to the caller and leaves s holding nothing.
func (s *storage[T]) moveOut() storage[T] {
	out := *s
	*s = storage[T]{}
	return out
}

// release drops the block. Releasing twice is a no-op.
func (s *storage[T]) release() {
	if s.slots == nil {
		return
	}
	clear(s.slots)
	*s = storage[T]{}
}
