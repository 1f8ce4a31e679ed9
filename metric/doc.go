// Package metric provides the Prometheus registry and HTTP server used to
// export ring buffer observability.
//
// The package has three parts:
//
//  1. Core metrics: process-wide counters (scenario runs, failed operations,
//     live rings) registered automatically (Metrics type)
//  2. Registry: per-component registration of counters and gauges, used by the
//     buffer package's Metrics observer (MetricsRegistrar interface)
//  3. HTTP server: Prometheus endpoint plus /health (Server type)
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        slog.Error("metrics server failed", "error", err)
//	    }
//	}()
//	defer server.Stop(context.Background())
//
// Registering a component metric:
//
//	pushes := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "pushes_total",
//	    Help: "Total pushes",
//	})
//	err := registry.RegisterCounter("events", "pushes_total", pushes)
//
// Registering the same component/metric pair twice returns an Invalid-class
// error wrapping errors.ErrAlreadyRegistered.
package metric
