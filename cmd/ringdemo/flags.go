package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/c360/ringpolicy/errors"
)

var (
	validScenarios = []string{"reject", "evict", "debug"}
	validObservers = []string{"none", "print", "log", "stats", "metrics"}
	validLevels    = []string{"debug", "info", "warn", "error"}
	validFormats   = []string{"json", "text"}
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Scenario    string
	Capacity    int
	Observer    string
	LogLevel    string
	LogFormat   string
	MetricsPort int
	Hold        time.Duration
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags(args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newFlagSet binds every flag to cfg
func newFlagSet(cfg *CLIConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.Scenario, "scenario",
		getEnv("RINGPOLICY_SCENARIO", "evict"),
		"Scenario: reject, evict, debug (env: RINGPOLICY_SCENARIO)")

	fs.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("RINGPOLICY_CAPACITY", 3),
		"Ring capacity (env: RINGPOLICY_CAPACITY)")

	fs.StringVar(&cfg.Observer, "observer",
		getEnv("RINGPOLICY_OBSERVER", "print"),
		"Observer: none, print, log, stats, metrics (env: RINGPOLICY_OBSERVER)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("RINGPOLICY_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: RINGPOLICY_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("RINGPOLICY_LOG_FORMAT", "text"),
		"Log format: json, text (env: RINGPOLICY_LOG_FORMAT)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("RINGPOLICY_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: RINGPOLICY_METRICS_PORT)")

	fs.DurationVar(&cfg.Hold, "hold",
		getEnvDuration("RINGPOLICY_HOLD", 0),
		"Keep the metrics server up this long after the scenario (env: RINGPOLICY_HOLD)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate flags and exit")

	fs.Usage = func() {
		printDetailedHelp(fs.Output(), fs)
	}

	return fs
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.Capacity < 0 {
		return invalidFlag("invalid capacity: %d", cfg.Capacity)
	}
	if !slices.Contains(validScenarios, cfg.Scenario) {
		return invalidFlag("invalid scenario: %s", cfg.Scenario)
	}
	if !slices.Contains(validObservers, cfg.Observer) {
		return invalidFlag("invalid observer: %s", cfg.Observer)
	}
	if !slices.Contains(validLevels, cfg.LogLevel) {
		return invalidFlag("invalid log level: %s", cfg.LogLevel)
	}
	if !slices.Contains(validFormats, cfg.LogFormat) {
		return invalidFlag("invalid log format: %s", cfg.LogFormat)
	}
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return invalidFlag("invalid metrics port: %d", cfg.MetricsPort)
	}
	if cfg.Hold < 0 {
		return invalidFlag("invalid hold duration: %s", cfg.Hold)
	}

	return nil
}

func invalidFlag(format string, args ...any) error {
	return errors.WrapInvalid(
		fmt.Errorf(format+": %w", append(args, errors.ErrInvalidConfig)...),
		"CLI", "validateFlags", "flag validation")
}

func printDetailedHelp(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, `%s - fixed-capacity ring buffer demonstrations

Usage: %s [options]

Options:
`, appName, os.Args[0])
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Overflow rejected on a full ring
  %s --scenario=reject --capacity=3

  # Oldest items evicted, logged as JSON
  %s --scenario=evict --observer=log --log-format=json

  # Export metrics for a minute after the run
  %s --scenario=debug --observer=metrics --metrics-port=9090 --hold=1m

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
