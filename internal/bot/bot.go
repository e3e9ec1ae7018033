// Package bot holds the player policies that drive decisions at the table.
// Every policy satisfies game.Agent and is safe to share between sessions
// only when it holds no per-hand state; the registry hands out a fresh value
// for each caller regardless.
package bot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/game"
)

// DefaultStrategy names the policy used when none is configured.
const DefaultStrategy = "basic"

// ErrUnknownStrategy is returned by New for names outside the registry.
var ErrUnknownStrategy = errors.New("unknown strategy")

type factory struct {
	description string
	build       func(logger *log.Logger) game.Agent
}

var registry = map[string]factory{
	"basic": {
		description: "minimal house edge chart, never takes insurance",
		build:       func(logger *log.Logger) game.Agent { return NewBasicStrategy(logger) },
	},
	"always-insure": {
		description: "basic strategy that takes insurance whenever offered",
		build: func(logger *log.Logger) game.Agent {
			b := NewBasicStrategy(logger)
			b.insure = true
			return b
		},
	},
	"mimic-dealer": {
		description: "hits below 17 and on soft 17, never doubles or splits",
		build:       func(*log.Logger) game.Agent { return MimicDealer{} },
	},
	"never-bust": {
		description: "draws only while the hard total is 11 or less",
		build:       func(*log.Logger) game.Agent { return NeverBust{} },
	},
}

// New returns the named policy. A nil logger discards decision traces.
func New(name string, logger *log.Logger) (game.Agent, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownStrategy, name, Names())
	}
	return f.build(logger), nil
}

// Names lists the registered policies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one line summary of the named policy.
func Describe(name string) string {
	return registry[name].description
}
