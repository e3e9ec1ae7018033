package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/simulator"
)

// SimulateCmd runs a Monte Carlo simulation. Flags override the config file,
// which overrides the built-in defaults.
type SimulateCmd struct {
	Config string `short:"c" type:"existingfile" env:"BJSIM_CONFIG" help:"HCL configuration file"`

	Bankroll    *float64 `env:"BJSIM_BANKROLL" help:"Initial bankroll per session"`
	Bet         *float64 `env:"BJSIM_BET" help:"Flat bet per round"`
	MinBet      *float64 `env:"BJSIM_MIN_BET" help:"Table minimum, defaults to the bet"`
	Hands       *int     `short:"n" env:"BJSIM_HANDS" help:"Rounds per session"`
	Simulations *int     `short:"s" env:"BJSIM_SIMULATIONS" help:"Number of sessions"`
	Seed        *int64   `env:"BJSIM_SEED" help:"Random seed for reproducible results"`
	Workers     *int     `short:"w" env:"BJSIM_WORKERS" help:"Parallel workers (0 = one per CPU)"`
	Strategy    *string  `env:"BJSIM_STRATEGY" help:"Player strategy (${strategies})"`
	Preset      *string  `env:"BJSIM_RULES" help:"Rules preset (${presets})"`

	Output       string        `short:"o" help:"Write a JSON report to this file"`
	JSON         bool          `help:"Print the JSON report to stdout instead of the summary"`
	Trajectories bool          `help:"Include every bankroll trajectory in the JSON report"`
	Progress     bool          `short:"p" help:"Print progress to stderr while running"`
	Interval     time.Duration `default:"1s" help:"Progress interval"`
}

// resolve layers defaults, the config file and flags.
func (c *SimulateCmd) resolve() (config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if c.Preset != nil {
		rules, ok := game.Preset(*c.Preset)
		if !ok {
			return config.Config{}, fmt.Errorf("%w: unknown rules preset %q (available: %v)",
				config.ErrInvalidConfig, *c.Preset, game.PresetNames())
		}
		cfg.RulesPreset = *c.Preset
		cfg.Rules = rules
	}
	override(&cfg.InitialBankroll, c.Bankroll)
	override(&cfg.BetSize, c.Bet)
	override(&cfg.MinBet, c.MinBet)
	override(&cfg.Hands, c.Hands)
	override(&cfg.Simulations, c.Simulations)
	override(&cfg.Workers, c.Workers)
	override(&cfg.Strategy, c.Strategy)
	if c.Seed != nil {
		seed := *c.Seed
		cfg.Seed = &seed
	}

	return cfg, cfg.Validate()
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger, err := g.logger(os.Stderr)
	if err != nil {
		return err
	}
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	return c.run(ctx, g.stdout(), os.Stderr, logger, quartz.NewReal())
}

func (c *SimulateCmd) run(ctx context.Context, stdout, stderr io.Writer, logger *log.Logger, clock quartz.Clock) error {
	cfg, err := c.resolve()
	if err != nil {
		return err
	}

	simCfg := simulator.Config{Config: cfg, Logger: logger, Clock: clock}
	if c.Progress {
		progress := newProgressReporter(stderr, clock, c.Interval)
		defer progress.Stop()
		simCfg.Progress = progress.Update
	}

	run, err := simulator.New(simCfg).Run(ctx)
	if err != nil {
		return err
	}

	doc := report.New(run, cfg, c.Trajectories)
	if c.Output != "" {
		if err := doc.WriteFile(c.Output); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output, "run_id", doc.RunID)
	}

	if c.JSON {
		return doc.Encode(stdout)
	}
	_, err = fmt.Fprintln(stdout, report.RenderSummary(run, cfg))
	return err
}
