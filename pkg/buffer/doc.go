// Package buffer provides a fixed-capacity ring buffer whose overflow handling
// and observability are chosen at compile time through type parameters.
//
// # Overview
//
// Ring[T, O, B] is a bounded FIFO backed by a block of capacity+1 slots that is
// allocated once and never resized. The extra slot keeps "empty" (head == tail)
// and "full" (advancing tail would reach head) apart without an occupancy
// counter.
//
// Two policies are composed into the ring:
//
//   - O, an OverflowPolicy, runs when Push finds the ring full
//   - B, an Observer, runs after every successful Push and Pop
//
// # Quick Start
//
//	ring, err := buffer.NewRejecting[int](3)
//	if err != nil {
//		return err
//	}
//
//	_ = ring.Push(1)
//	item, err := ring.Pop()
//	if errors.Is(err, errors.ErrUnderflow) {
//		// nothing buffered
//	}
//
// Any combination of policies:
//
//	ring, err := buffer.New[*Event](100,
//		buffer.NewEvictOldestNotify(func(e *Event) { dropped.Add(1) }),
//		buffer.NewLogger[*Event](logger, "events", slog.LevelDebug),
//	)
//
// # Overflow Policies
//
//   - Reject: Push fails with errors.ErrOverflow and the ring is unchanged
//   - EvictOldest: the oldest item is popped, then the new item is written
//   - EvictOldestNotify: like EvictOldest, and the evicted item goes to a callback
//
// Evictions go through Ring.Pop, so the observer sees them as pops.
// A policy that returns nil without freeing a slot makes Push panic.
//
// # Observers
//
//   - NoOp: nothing
//   - Printer: "pushed 3 [2/4]" lines on an io.Writer
//   - Logger: structured log/slog records
//   - Stats: always-on counters readable from other goroutines
//   - Metrics: Prometheus counters and gauges registered in a metric.MetricsRegistry
//   - Tee: two observers at once
//
// Observers are called with the item and the resulting occupancy and capacity.
// They never see the ring itself and cannot modify it.
//
// An observer that also implements OverflowObserver is told when Push finds
// the ring full (OnOverflow) and about every item the policy evicts (OnDrop,
// after the matching OnPop). Stats, Metrics and Tee implement it, so evictions
// and rejected pushes are counted apart from consumer pops.
//
// # Ownership
//
// A Ring has a single owner. It must not be copied (go vet reports copies)
// and is handed over with Take, which leaves the source released. Release drops
// the storage. Push, Pop and Peek on a released ring return errors.ErrReleased.
//
// # Thread Safety
//
// Ring is not safe for concurrent use. Callers that share one between
// goroutines must add their own locking. The Stats and Metrics observers may be
// read concurrently with the owning goroutine.
package buffer
