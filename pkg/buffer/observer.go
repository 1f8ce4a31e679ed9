package buffer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Observer is notified after every successful Push and Pop with the affected
// item and the occupancy and capacity that result. It only receives values,
// so it cannot change the ring.
type Observer[T any] interface {
	OnPush(item T, occupancy, capacity int)
	OnPop(item T, occupancy, capacity int)
}

// OverflowObserver is an optional extension of Observer. An observer that
// implements it is also told when Push finds the ring full and about each
// item the overflow policy evicts.
//
// OnOverflow fires before the overflow policy runs, whether or not the push
// then succeeds. OnDrop fires after OnPop for every item popped by the policy.
type OverflowObserver[T any] interface {
	OnOverflow(item T, occupancy, capacity int)
	OnDrop(item T, occupancy, capacity int)
}

// NoOp ignores all events.
type NoOp[T any] struct{}

// OnPush implements Observer.
func (NoOp[T]) OnPush(T, int, int) {}

// OnPop implements Observer.
func (NoOp[T]) OnPop(T, int, int) {}

// Printer writes one line per event, e.g. "pushed 3 [2/4]".
type Printer[T any] struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w, or to stdout when w is nil.
func NewPrinter[T any](w io.Writer) Printer[T] {
	if w == nil {
		w = os.Stdout
	}
	return Printer[T]{w: w}
}

// OnPush implements Observer.
func (p Printer[T]) OnPush(item T, occupancy, capacity int) {
	p.print("pushed", item, occupancy, capacity)
}

// OnPop implements Observer.
func (p Printer[T]) OnPop(item T, occupancy, capacity int) {
	p.print("popped", item, occupancy, capacity)
}

func (p Printer[T]) print(verb string, item T, occupancy, capacity int) {
	w := p.w
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, "%s %v [%d/%d]\n", verb, item, occupancy, capacity)
}

// Logger emits a structured slog record per event.
type Logger[T any] struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogger returns a Logger that logs at level under the given ring name.
// A nil logger falls back to slog.Default().
func NewLogger[T any](logger *slog.Logger, ring string, level slog.Level) Logger[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return Logger[T]{
		logger: logger.With("ring", ring),
		level:  level,
	}
}

// OnPush implements Observer.
func (l Logger[T]) OnPush(item T, occupancy, capacity int) {
	l.log("pushed", item, occupancy, capacity)
}

// OnPop implements Observer.
func (l Logger[T]) OnPop(item T, occupancy, capacity int) {
	l.log("popped", item, occupancy, capacity)
}

func (l Logger[T]) log(msg string, item T, occupancy, capacity int) {
	if l.logger == nil {
		return
	}
	ctx := context.Background()
	if !l.logger.Enabled(ctx, l.level) {
		return
	}
	l.logger.LogAttrs(ctx, l.level, msg,
		slog.Any("item", item),
		slog.Int("occupancy", occupancy),
		slog.Int("capacity", capacity),
	)
}

// Tee forwards every event to First and then to Second.
type Tee[T any, A Observer[T], B Observer[T]] struct {
	First  A
	Second B
}

// NewTee composes two observers.
func NewTee[T any, A Observer[T], B Observer[T]](first A, second B) Tee[T, A, B] {
	return Tee[T, A, B]{First: first, Second: second}
}

// OnPush implements Observer.
func (t Tee[T, A, B]) OnPush(item T, occupancy, capacity int) {
	t.First.OnPush(item, occupancy, capacity)
	t.Second.OnPush(item, occupancy, capacity)
}

// OnPop implements Observer.
func (t Tee[T, A, B]) OnPop(item T, occupancy, capacity int) {
	t.First.OnPop(item, occupancy, capacity)
	t.Second.OnPop(item, occupancy, capacity)
}

// OnOverflow implements OverflowObserver for whichever side supports it.
func (t Tee[T, A, B]) OnOverflow(item T, occupancy, capacity int) {
	if o, ok := any(t.First).(OverflowObserver[T]); ok {
		o.OnOverflow(item, occupancy, capacity)
	}
	if o, ok := any(t.Second).(OverflowObserver[T]); ok {
		o.OnOverflow(item, occupancy, capacity)
	}
}

// OnDrop implements OverflowObserver for whichever side supports it.
func (t Tee[T, A, B]) OnDrop(item T, occupancy, capacity int) {
	if o, ok := any(t.First).(OverflowObserver[T]); ok {
		o.OnDrop(item, occupancy, capacity)
	}
	if o, ok := any(t.Second).(OverflowObserver[T]); ok {
		o.OnDrop(item, occupancy, capacity)
	}
}
