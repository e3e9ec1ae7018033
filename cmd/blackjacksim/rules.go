package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/report"
)

// RulesCmd prints one preset, or every preset when none is named.
type RulesCmd struct {
	Preset string `arg:"" optional:"" help:"Preset name"`
}

func (c *RulesCmd) Run(g *Globals) error {
	return c.run(g.stdout())
}

func (c *RulesCmd) run(w io.Writer) error {
	names := game.PresetNames()
	if c.Preset != "" {
		names = []string{c.Preset}
	}

	var sections []string
	for _, name := range names {
		rules, ok := game.Preset(name)
		if !ok {
			return fmt.Errorf("unknown rules preset %q (available: %s)", name, strings.Join(game.PresetNames(), ", "))
		}
		sections = append(sections, report.RenderRules(name, rules))
	}
	_, err := fmt.Fprintln(w, strings.Join(sections, "\n"))
	return err
}
