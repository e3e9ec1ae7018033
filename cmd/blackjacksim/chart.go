package main

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/report"
)

// ChartCmd prints the basic strategy chart for auditing.
type ChartCmd struct{}

func (c *ChartCmd) Run(g *Globals) error {
	_, err := fmt.Fprintln(g.stdout(), report.RenderChart(bot.BasicChart))
	return err
}
