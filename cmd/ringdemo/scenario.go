package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/c360/ringpolicy/errors"
	"github.com/c360/ringpolicy/metric"
	"github.com/c360/ringpolicy/pkg/buffer"
)

// scenarioDeps are the collaborators shared by every scenario run
type scenarioDeps struct {
	out      io.Writer
	logger   *slog.Logger
	registry *metric.MetricsRegistry
}

// runScenario instantiates the ring type matching the chosen observer and plays
// the chosen scenario on it.
func runScenario(cfg *CLIConfig, deps scenarioDeps) error {
	switch cfg.Observer {
	case "none":
		return dispatch(cfg, deps, buffer.NoOp[int]{})
	case "print":
		return dispatch(cfg, deps, buffer.NewPrinter[int](deps.out))
	case "log":
		return dispatch(cfg, deps, buffer.NewLogger[int](deps.logger, cfg.Scenario, slog.LevelInfo))
	case "stats":
		stats := buffer.NewStats[int]()
		if err := dispatch(cfg, deps, stats); err != nil {
			return err
		}
		summary := stats.Statistics().Summary()
		deps.logger.Info("Ring statistics",
			"pushes", summary.Pushes,
			"pops", summary.Pops,
			"overflows", summary.Overflows,
			"drops", summary.Drops,
			"max_occupancy", summary.MaxOccupancy,
			"utilization", summary.Utilization)
		return nil
	case "metrics":
		obs, err := buffer.NewMetrics[int](deps.registry, cfg.Scenario)
		if err != nil {
			return err
		}
		return dispatch(cfg, deps, obs)
	default:
		return invalidFlag("invalid observer: %s", cfg.Observer)
	}
}

// dispatch picks the overflow policy for the scenario.
func dispatch[B buffer.Observer[int]](cfg *CLIConfig, deps scenarioDeps, observer B) error {
	core := deps.registry.CoreMetrics()

	var err error
	switch cfg.Scenario {
	case "reject":
		err = play(cfg, deps, buffer.Reject[int]{}, observer, cfg.Capacity+1, -1)
	case "evict":
		evict := buffer.NewEvictOldestNotify(func(item int) {
			deps.logger.Debug("Evicted oldest item", "ring", cfg.Scenario, "item", item)
		})
		err = play(cfg, deps, evict, observer, cfg.Capacity+2, cfg.Capacity)
	case "debug":
		err = play(cfg, deps, buffer.Reject[int]{}, observer, cfg.Capacity, cfg.Capacity)
	default:
		err = invalidFlag("invalid scenario: %s", cfg.Scenario)
	}

	core.RecordScenario(cfg.Scenario, err == nil)
	return err
}

// play pushes pushes items, hands the ring to a new owner, then pops pops items.
// A negative pops drains the ring until it underflows.
func play[O buffer.OverflowPolicy[int], B buffer.Observer[int]](
	cfg *CLIConfig, deps scenarioDeps, overflow O, observer B, pushes, pops int,
) error {
	core := deps.registry.CoreMetrics()

	ring, err := buffer.New[int](cfg.Capacity, overflow, observer)
	if err != nil {
		return errors.Wrap(err, "Scenario", "play", "create ring")
	}
	core.RingAcquired()

	for i := 0; i < pushes; i++ {
		if err := ring.Push(i); err != nil {
			if !errors.Is(err, errors.ErrOverflow) {
				ring.Release()
				core.RingReleased()
				return err
			}
			core.RecordOperationError(cfg.Scenario, "push", errors.Classify(err).String())
			deps.logger.Warn("Push rejected", "ring", cfg.Scenario, "item", i, "error", err)
		}
	}

	// The consumer side owns the ring from here on
	owned := ring.Take()
	defer func() {
		owned.Release()
		core.RingReleased()
	}()

	occupancy, capacity := owned.Occupancy()
	deps.logger.Info("Ring handed to consumer",
		"ring", cfg.Scenario, "occupancy", occupancy, "capacity", capacity)

	for i := 0; pops < 0 || i < pops; i++ {
		value, err := owned.Pop()
		if errors.Is(err, errors.ErrUnderflow) {
			core.RecordOperationError(cfg.Scenario, "pop", errors.Classify(err).String())
			deps.logger.Info("Ring drained", "ring", cfg.Scenario, "error", err)
			break
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "popped %d\n", value)
	}

	return nil
}
