package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/ringpolicy/errors"
	"github.com/c360/ringpolicy/metric"
)

// ringMetrics holds Prometheus metrics for one ring.
type ringMetrics struct {
	pushes    prometheus.Counter
	pops      prometheus.Counter
	overflows prometheus.Counter
	drops     prometheus.Counter

	occupancy   prometheus.Gauge
	capacity    prometheus.Gauge
	utilization prometheus.Gauge
}

// newRingMetrics creates and registers ring metrics with the provided registry.
func newRingMetrics(registry metric.MetricsRegistrar, component string) (*ringMetrics, error) {
	labels := prometheus.Labels{"component": component}
	m := &ringMetrics{
		pushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "pushes_total",
			ConstLabels: labels,
			Help:        "Total number of successful ring pushes",
		}),
		pops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "pops_total",
			ConstLabels: labels,
			Help:        "Total number of successful ring pops, evictions included",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "overflows_total",
			ConstLabels: labels,
			Help:        "Total number of pushes that found the ring full",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "drops_total",
			ConstLabels: labels,
			Help:        "Total number of items evicted by the overflow policy",
		}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "occupancy",
			ConstLabels: labels,
			Help:        "Current number of items in the ring",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "capacity",
			ConstLabels: labels,
			Help:        "Ring capacity",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringpolicy",
			Subsystem:   "ring",
			Name:        "utilization",
			ConstLabels: labels,
			Help:        "Ring utilization as a fraction (0.0 to 1.0)",
		}),
	}

	if err := registry.RegisterCounter(component, "ring_pushes", m.pushes); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "ring_pops", m.pops); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "ring_overflows", m.overflows); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, "ring_drops", m.drops); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(component, "ring_occupancy", m.occupancy); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(component, "ring_capacity", m.capacity); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(component, "ring_utilization", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *ringMetrics) record(counter prometheus.Counter, occupancy, capacity int) {
	counter.Inc()
	m.occupancy.Set(float64(occupancy))
	m.capacity.Set(float64(capacity))
	if capacity > 0 {
		m.utilization.Set(float64(occupancy) / float64(capacity))
	} else {
		m.utilization.Set(0)
	}
}

// Metrics is an Observer exporting ring activity as Prometheus metrics.
type Metrics[T any] struct {
	m *ringMetrics
}

// NewMetrics registers the ring metrics for component and returns the observer.
func NewMetrics[T any](registry metric.MetricsRegistrar, component string) (Metrics[T], error) {
	if registry == nil || component == "" {
		return Metrics[T]{}, errors.WrapInvalid(errors.ErrInvalidConfig, "Metrics", "NewMetrics",
			"registry and component are required")
	}

	m, err := newRingMetrics(registry, component)
	if err != nil {
		return Metrics[T]{}, errors.Wrap(err, "Metrics", "NewMetrics", "metrics registration")
	}
	return Metrics[T]{m: m}, nil
}

// OnPush implements Observer.
func (o Metrics[T]) OnPush(_ T, occupancy, capacity int) {
	if o.m != nil {
		o.m.record(o.m.pushes, occupancy, capacity)
	}
}

// OnPop implements Observer.
func (o Metrics[T]) OnPop(_ T, occupancy, capacity int) {
	if o.m != nil {
		o.m.record(o.m.pops, occupancy, capacity)
	}
}

// OnOverflow implements OverflowObserver.
func (o Metrics[T]) OnOverflow(T, int, int) {
	if o.m != nil {
		o.m.overflows.Inc()
	}
}

// OnDrop implements OverflowObserver.
func (o Metrics[T]) OnDrop(T, int, int) {
	if o.m != nil {
		o.m.drops.Inc()
	}
}
