// Package config holds the simulation configuration record, its defaults and
// the optional HCL file that overrides them.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/game"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the configuration record for one Monte Carlo run.
type Config struct {
	InitialBankroll float64 `json:"initial_bankroll"`
	BetSize         float64 `json:"bet_size"`
	// MinBet is the table minimum. A session is ruined once its bankroll
	// drops below it. Zero means BetSize.
	MinBet      float64 `json:"min_bet"`
	Hands       int     `json:"hands"`
	Simulations int     `json:"simulations"`
	// Seed pins the random streams. Nil draws a fresh seed per run.
	Seed *int64 `json:"seed,omitempty"`
	// Workers bounds parallel sessions. Zero means one per CPU.
	Workers     int        `json:"workers"`
	Strategy    string     `json:"strategy"`
	RulesPreset string     `json:"rules_preset"`
	Rules       game.Rules `json:"-"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		InitialBankroll: 1000,
		BetSize:         10,
		Hands:           100,
		Simulations:     5000,
		Strategy:        bot.DefaultStrategy,
		RulesPreset:     game.DefaultPreset,
		Rules:           game.DefaultRules(),
	}
}

// TableMinimum returns the effective minimum bet.
func (c Config) TableMinimum() float64 {
	if c.MinBet > 0 {
		return c.MinBet
	}
	return c.BetSize
}

// Validate checks the record before any simulation starts. All problems are
// reported together.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %g", name, v))
		}
	}
	positive("initial bankroll", c.InitialBankroll)
	positive("bet size", c.BetSize)

	if c.BetSize > c.InitialBankroll {
		errs = append(errs, fmt.Errorf("bet size %g exceeds initial bankroll %g", c.BetSize, c.InitialBankroll))
	}
	if c.MinBet < 0 || math.IsNaN(c.MinBet) {
		errs = append(errs, fmt.Errorf("min bet must not be negative, got %g", c.MinBet))
	} else if c.MinBet > c.BetSize {
		errs = append(errs, fmt.Errorf("min bet %g exceeds bet size %g", c.MinBet, c.BetSize))
	}
	if c.Hands < 1 {
		errs = append(errs, fmt.Errorf("hands must be at least 1, got %d", c.Hands))
	}
	if c.Simulations < 1 {
		errs = append(errs, fmt.Errorf("simulations must be at least 1, got %d", c.Simulations))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := bot.New(c.Strategy, nil); err != nil {
		errs = append(errs, err)
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// File is the HCL configuration file. Every attribute is optional and
// overrides the value below it.
type File struct {
	Simulation *SimulationBlock `hcl:"simulation,block"`
	Rules      *RulesBlock      `hcl:"rules,block"`
}

// SimulationBlock overrides the run parameters
type SimulationBlock struct {
	InitialBankroll *float64 `hcl:"initial_bankroll,optional"`
	BetSize         *float64 `hcl:"bet_size,optional"`
	MinBet          *float64 `hcl:"min_bet,optional"`
	Hands           *int     `hcl:"hands,optional"`
	Simulations     *int     `hcl:"simulations,optional"`
	Seed            *int64   `hcl:"seed,optional"`
	Workers         *int     `hcl:"workers,optional"`
	Strategy        *string  `hcl:"strategy,optional"`
}

// RulesBlock selects a rule preset by label and overrides its fields
type RulesBlock struct {
	Preset           string   `hcl:"preset,label"`
	Decks            *int     `hcl:"decks,optional"`
	DealerHitsSoft17 *bool    `hcl:"dealer_hits_soft_17,optional"`
	BlackjackPayout  *float64 `hcl:"blackjack_payout,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	MaxSplitHands    *int     `hcl:"max_split_hands,optional"`
	ResplitAces      *bool    `hcl:"resplit_aces,optional"`
	InsurancePayout  *float64 `hcl:"insurance_payout,optional"`
	DealerPush22     *bool    `hcl:"dealer_push_22,optional"`
	FiveCardCharlie  *bool    `hcl:"five_card_charlie,optional"`
}

// Load reads an HCL file and applies it over the defaults.
func Load(filename string) (Config, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies it over the defaults. filename only
// labels diagnostics.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if err := f.Apply(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply overlays the file onto cfg.
func (f File) Apply(cfg *Config) error {
	if s := f.Simulation; s != nil {
		set(&cfg.InitialBankroll, s.InitialBankroll)
		set(&cfg.BetSize, s.BetSize)
		set(&cfg.MinBet, s.MinBet)
		set(&cfg.Hands, s.Hands)
		set(&cfg.Simulations, s.Simulations)
		set(&cfg.Workers, s.Workers)
		set(&cfg.Strategy, s.Strategy)
		if s.Seed != nil {
			seed := *s.Seed
			cfg.Seed = &seed
		}
	}

	if r := f.Rules; r != nil {
		rules, ok := game.Preset(r.Preset)
		if !ok {
			return fmt.Errorf("%w: unknown rules preset %q (available: %v)", ErrInvalidConfig, r.Preset, game.PresetNames())
		}
		set(&rules.Decks, r.Decks)
		set(&rules.DealerHitsSoft17, r.DealerHitsSoft17)
		set(&rules.BlackjackPayout, r.BlackjackPayout)
		set(&rules.DoubleAfterSplit, r.DoubleAfterSplit)
		set(&rules.MaxSplitHands, r.MaxSplitHands)
		set(&rules.ResplitAces, r.ResplitAces)
		set(&rules.InsurancePayout, r.InsurancePayout)
		set(&rules.DealerPush22, r.DealerPush22)
		set(&rules.FiveCardCharlie, r.FiveCardCharlie)
		cfg.RulesPreset = r.Preset
		cfg.Rules = rules
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
