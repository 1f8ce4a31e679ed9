package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks ring activity. Counters may be read from any goroutine
// while the owning goroutine keeps pushing and popping.
type Statistics struct {
	pushes    int64
	pops      int64
	overflows int64
	drops     int64

	// Protected by mutex
	mu               sync.RWMutex
	startTime        time.Time
	currentOccupancy int64
	maxOccupancy     int64
	capacity         int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Push records a successful push and the resulting occupancy.
func (s *Statistics) Push(occupancy, capacity int) {
	atomic.AddInt64(&s.pushes, 1)
	s.update(occupancy, capacity)
}

// Pop records a successful pop and the resulting occupancy.
func (s *Statistics) Pop(occupancy, capacity int) {
	atomic.AddInt64(&s.pops, 1)
	s.update(occupancy, capacity)
}

// Overflow records a push that found the ring full.
func (s *Statistics) Overflow() {
	atomic.AddInt64(&s.overflows, 1)
}

// Drop records an item evicted by the overflow policy.
func (s *Statistics) Drop() {
	atomic.AddInt64(&s.drops, 1)
}

func (s *Statistics) update(occupancy, capacity int) {
	s.mu.Lock()
	s.currentOccupancy = int64(occupancy)
	s.capacity = int64(capacity)
	if s.currentOccupancy > s.maxOccupancy {
		s.maxOccupancy = s.currentOccupancy
	}
	s.mu.Unlock()
}

// Pushes returns the total number of successful pushes.
func (s *Statistics) Pushes() int64 {
	return atomic.LoadInt64(&s.pushes)
}

// Pops returns the total number of successful pops, evictions included.
func (s *Statistics) Pops() int64 {
	return atomic.LoadInt64(&s.pops)
}

// Overflows returns the number of pushes that found the ring full,
// rejected ones included.
func (s *Statistics) Overflows() int64 {
	return atomic.LoadInt64(&s.overflows)
}

// Drops returns the number of items evicted by the overflow policy.
func (s *Statistics) Drops() int64 {
	return atomic.LoadInt64(&s.drops)
}

// CurrentOccupancy returns the occupancy after the last recorded event.
func (s *Statistics) CurrentOccupancy() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentOccupancy
}

// MaxOccupancy returns the highest occupancy seen.
func (s *Statistics) MaxOccupancy() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxOccupancy
}

// Capacity returns the capacity reported with the last recorded event.
func (s *Statistics) Capacity() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// Utilization returns the last occupancy as a fraction of capacity (0.0 to 1.0).
func (s *Statistics) Utilization() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.capacity == 0 {
		return 0.0
	}
	return float64(s.currentOccupancy) / float64(s.capacity)
}

// Throughput returns the average number of pushes per second.
func (s *Statistics) Throughput() float64 {
	elapsed := s.Uptime()
	if elapsed <= 0 {
		return 0.0
	}
	return float64(s.Pushes()) / elapsed.Seconds()
}

// PopThroughput returns the average number of pops per second.
func (s *Statistics) PopThroughput() float64 {
	elapsed := s.Uptime()
	if elapsed <= 0 {
		return 0.0
	}
	return float64(s.Pops()) / elapsed.Seconds()
}

// DropRate returns drops per successful push (0.0 to 1.0).
func (s *Statistics) DropRate() float64 {
	pushes := s.Pushes()
	drops := s.Drops()

	if pushes == 0 {
		return 0.0
	}
	return float64(drops) / float64(pushes)
}

// OverflowRate returns overflows per successful push. Rejected pushes are not
// counted as pushes, so the rate can exceed 1.0 under a rejecting policy.
func (s *Statistics) OverflowRate() float64 {
	pushes := s.Pushes()
	overflows := s.Overflows()

	if pushes == 0 {
		return 0.0
	}
	return float64(overflows) / float64(pushes)
}

// Uptime returns how long the statistics have been collected.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.pushes, 0)
	atomic.StoreInt64(&s.pops, 0)
	atomic.StoreInt64(&s.overflows, 0)
	atomic.StoreInt64(&s.drops, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentOccupancy = 0
	s.maxOccupancy = 0
	s.capacity = 0
	s.mu.Unlock()
}

// StatsSummary is a snapshot of all statistics.
type StatsSummary struct {
	Pushes           int64         `json:"pushes"`
	Pops             int64         `json:"pops"`
	Overflows        int64         `json:"overflows"`
	Drops            int64         `json:"drops"`
	CurrentOccupancy int64         `json:"current_occupancy"`
	MaxOccupancy     int64         `json:"max_occupancy"`
	Capacity         int64         `json:"capacity"`
	Utilization      float64       `json:"utilization"`
	DropRate         float64       `json:"drop_rate"`
	OverflowRate     float64       `json:"overflow_rate"`
	Throughput       float64       `json:"throughput"`
	PopThroughput    float64       `json:"pop_throughput"`
	Uptime           time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Pushes:           s.Pushes(),
		Pops:             s.Pops(),
		Overflows:        s.Overflows(),
		Drops:            s.Drops(),
		CurrentOccupancy: s.CurrentOccupancy(),
		MaxOccupancy:     s.MaxOccupancy(),
		Capacity:         s.Capacity(),
		Utilization:      s.Utilization(),
		DropRate:         s.DropRate(),
		OverflowRate:     s.OverflowRate(),
		Throughput:       s.Throughput(),
		PopThroughput:    s.PopThroughput(),
		Uptime:           s.Uptime(),
	}
}

// Stats is an Observer that feeds a Statistics tracker.
type Stats[T any] struct {
	stats *Statistics
}

// NewStats returns a Stats observer with a fresh tracker.
func NewStats[T any]() Stats[T] {
	return Stats[T]{stats: NewStatistics()}
}

// Statistics returns the tracker the observer records into.
func (o Stats[T]) Statistics() *Statistics {
	return o.stats
}

// OnPush implements Observer.
func (o Stats[T]) OnPush(_ T, occupancy, capacity int) {
	if o.stats != nil {
		o.stats.Push(occupancy, capacity)
	}
}

// OnPop implements Observer.
func (o Stats[T]) OnPop(_ T, occupancy, capacity int) {
	if o.stats != nil {
		o.stats.Pop(occupancy, capacity)
	}
}

// OnOverflow implements OverflowObserver.
func (o Stats[T]) OnOverflow(T, int, int) {
	if o.stats != nil {
		o.stats.Overflow()
	}
}

// OnDrop implements OverflowObserver.
func (o Stats[T]) OnDrop(T, int, int) {
	if o.stats != nil {
		o.stats.Drop()
	}
}
