package main

import (
	"fmt"
	"io"

	"github.com/lox/blackjacksim/internal/report"
)

// StrategiesCmd lists the player strategies accepted by --strategy.
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(g *Globals) error {
	return c.run(g.stdout())
}

func (c *StrategiesCmd) run(w io.Writer) error {
	_, err := fmt.Fprintln(w, report.RenderStrategies())
	return err
}
