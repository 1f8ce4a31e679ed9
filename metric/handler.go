package metric

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/ringpolicy/errors"
)

// Server represents the metrics HTTP server
type Server struct {
	port     int
	path     string
	server   *http.Server
	listener net.Listener
	stopped  bool
	registry *MetricsRegistry
	mu       sync.Mutex // protects server, listener and stopped
}

// NewServer creates a new metrics server with the provided registry
func NewServer(port int, path string, registry *MetricsRegistry) *Server {
	if path == "" {
		path = "/metrics"
	}
	if port == 0 {
		port = 9090
	}

	return &Server{
		port:     port,
		path:     path,
		registry: registry,
	}
}

// Handler builds the HTTP handler serving metrics and health
func (s *Server) Handler() (http.Handler, error) {
	if s.registry == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("nil registry: %w", errors.ErrInvalidConfig),
			"Server", "Handler", "metrics registry not provided")
	}

	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.HandlerFor(
		s.registry.PrometheusRegistry(),
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux, nil
}

// Listen binds the metrics port and prepares the HTTP server. It returns once
// the port is bound, so a following Stop always reaches the listener.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.WrapInvalid(
			fmt.Errorf("server already running"),
			"Server", "Listen", "cannot start server that is already running")
	}

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return errors.WrapFatal(err, "Server", "Listen",
			fmt.Sprintf("failed to bind port %d", s.port))
	}

	s.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.listener = ln
	s.stopped = false
	return nil
}

// Serve serves on the bound listener and blocks until the server stops.
// It returns nil after a clean Stop, including a Stop that ran before Serve.
func (s *Server) Serve() error {
	s.mu.Lock()
	srv, ln, stopped := s.server, s.listener, s.stopped
	s.mu.Unlock()

	if srv == nil {
		if stopped {
			return nil
		}
		return errors.WrapInvalid(
			fmt.Errorf("server not listening"),
			"Server", "Serve", "serve before Listen")
	}

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		s.mu.Lock()
		if s.server == srv {
			s.server = nil
			s.listener = nil
		}
		s.mu.Unlock()
		return errors.WrapFatal(err, "Server", "Serve",
			fmt.Sprintf("failed to serve on port %d", s.port))
	}
	return nil
}

// Start binds the port and serves until the server stops.
// It returns nil after a clean Stop.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Stop gracefully shuts the metrics server down
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}

	err := s.server.Shutdown(ctx)
	// Shutdown only closes listeners Serve has picked up
	_ = s.listener.Close()
	s.server = nil // reset server field to allow restart
	s.listener = nil
	s.stopped = true
	if err != nil {
		return errors.WrapTransient(err, "Server", "Stop", "failed to stop HTTP server")
	}
	return nil
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, s.path)
}
