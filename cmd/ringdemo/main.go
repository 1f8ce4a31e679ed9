// Package main runs the ring buffer demonstrations: overflow rejection,
// oldest-item eviction, and observer output on a fill/drain cycle.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/ringpolicy/errors"
	"github.com/c360/ringpolicy/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ringdemo"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cliCfg, shouldExit, err := initializeCLI(args, out)
	if shouldExit || err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Flags are valid")
		return nil
	}

	registry := metric.NewMetricsRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var server *metric.Server
	if cliCfg.MetricsPort > 0 {
		server, err = startMetricsServer(cliCfg.MetricsPort, registry)
		if err != nil {
			return err
		}
	}

	deps := scenarioDeps{
		out:      out,
		logger:   slog.Default(),
		registry: registry,
	}
	scenarioErr := runScenario(cliCfg, deps)

	if server != nil {
		holdMetrics(ctx, cliCfg.Hold, server.Address())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown failed", "error", err)
		}
	}

	return scenarioErr
}

// initializeCLI parses flags and sets up logging
func initializeCLI(args []string, out io.Writer) (*CLIConfig, bool, error) {
	cliCfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("parse flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(out, "%s version %s\n", appName, Version)
		return nil, true, nil
	}

	if cliCfg.ShowHelp {
		fs := newFlagSet(&CLIConfig{})
		fs.SetOutput(out)
		printDetailedHelp(out, fs)
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting ring demo",
		"version", Version,
		"build_time", BuildTime,
		"scenario", cliCfg.Scenario,
		"capacity", cliCfg.Capacity,
		"observer", cliCfg.Observer)

	return cliCfg, false, nil
}

// startMetricsServer binds the metrics port before returning, so the caller
// can always stop the server it gets back.
func startMetricsServer(port int, registry *metric.MetricsRegistry) (*metric.Server, error) {
	server := metric.NewServer(port, "/metrics", registry)
	if err := server.Listen(); err != nil {
		return nil, errors.Wrap(err, "CLI", "startMetricsServer", "metrics server listen")
	}
	go func() {
		if err := server.Serve(); err != nil {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	slog.Info("Metrics server listening", "address", server.Address())
	return server, nil
}

// holdMetrics keeps the process alive so the metrics endpoint can be scraped
func holdMetrics(ctx context.Context, hold time.Duration, address string) {
	if hold <= 0 {
		return
	}
	slog.Info("Holding metrics endpoint", "address", address, "hold", hold)

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	case <-time.After(hold):
	}
}
