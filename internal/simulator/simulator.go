// Package simulator runs Monte Carlo blackjack sessions and reduces them to
// a result.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	config.Config

	Logger *log.Logger
	// Clock times the run. Defaults to the real clock.
	Clock quartz.Clock
	// Progress is called after every finished session with the number of
	// sessions done so far. It is called from worker goroutines and must be
	// safe for concurrent use.
	Progress func(done, total int)
}

// Run is a completed Monte Carlo run.
type Run struct {
	*Result
	StartedAt time.Time
	Duration  time.Duration
}

// Simulator runs blackjack session simulations
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Simulator{
		config: cfg,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
	}
}

// Run validates the configuration and simulates every session. Sessions run
// in parallel, each on a stream derived from the base seed and its index, so
// the result does not depend on the worker count. Cancelling ctx abandons the
// run between sessions.
func (s *Simulator) Run(ctx context.Context) (*Run, error) {
	cfg := s.config.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = randutil.Seed()
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, cfg.Simulations)

	started := s.clock.Now()
	s.logger.Info("Starting simulation",
		"sessions", cfg.Simulations,
		"hands", cfg.Hands,
		"bankroll", cfg.InitialBankroll,
		"bet", cfg.BetSize,
		"strategy", cfg.Strategy,
		"rules", cfg.RulesPreset,
		"seed", seed,
		"workers", workers)

	sessions := make([]Session, cfg.Simulations)
	var next, done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				i := int(next.Add(1) - 1)
				if i >= len(sessions) {
					return nil
				}

				sess, err := RunSession(cfg, i, randutil.Derive(seed, i))
				if err != nil {
					return err
				}
				sessions[i] = sess

				s.logger.Debug("Session complete",
					"session", i,
					"seed", sess.Seed,
					"hands", sess.HandsPlayed(),
					"final", sess.Final,
					"ruined", sess.Ruined)

				finished := int(done.Add(1))
				if s.config.Progress != nil {
					s.config.Progress(finished, len(sessions))
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted after %d of %d sessions: %w", done.Load(), len(sessions), err)
	}

	res, err := Aggregate(cfg.InitialBankroll, cfg.Hands, sessions)
	if err != nil {
		return nil, err
	}
	res.Seed = seed
	run := &Run{Result: res, StartedAt: started, Duration: s.clock.Since(started)}

	s.logger.Info("Simulation complete",
		"duration", run.Duration,
		"ev_per_hand", res.Summary.EVPerHand,
		"roi", res.Summary.ROI,
		"risk_of_ruin", res.Summary.RiskOfRuin)
	return run, nil
}
