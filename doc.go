// Package ringpolicy provides a fixed-capacity ring buffer whose overflow and
// observability behavior are chosen at compile time.
//
// # Layout
//
//	pkg/buffer     Ring, overflow policies, observers
//	errors         Sentinel errors and Transient/Invalid/Fatal classification
//	metric         Prometheus registry and metrics HTTP server
//	cmd/ringdemo   Demonstration CLI (reject, evict, debug scenarios)
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│         cmd/ringdemo                │  Flags, logging,
//	│   (scenarios, metrics endpoint)     │  signal handling
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│   Ring[T, OverflowPolicy, Observer] │  Push, Pop, Take,
//	│                                     │  Release
//	└─────────────────────────────────────┘
//	           ↓ stores in
//	┌─────────────────────────────────────┐
//	│   capacity+1 slots, head and tail   │  Empty when head == tail,
//	│                                     │  full when tail+1 == head
//	└─────────────────────────────────────┘
//
// The ring is owned by one goroutine at a time. Ownership moves with
// Ring.Take; the source is left released and rejects further operations.
//
// # Quick Start
//
//	ring, err := buffer.NewEvicting[int](3)
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < 5; i++ {
//	    _ = ring.Push(i) // 0 and 1 are evicted
//	}
//	v, _ := ring.Pop() // 2
//
// Run the demonstrations:
//
//	go run ./cmd/ringdemo --scenario=reject --capacity=3
//	go run ./cmd/ringdemo --scenario=evict --observer=log --log-format=json
package ringpolicy
