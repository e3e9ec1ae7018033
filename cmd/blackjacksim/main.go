package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/game"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Simulate   SimulateCmd      `cmd:"" default:"withargs" help:"Run a Monte Carlo simulation"`
	Chart      ChartCmd         `cmd:"" help:"Print the basic strategy chart"`
	Rules      RulesCmd         `cmd:"" help:"Print the rules of a preset"`
	Strategies StrategiesCmd    `cmd:"" help:"List the player strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjacksim"),
		kong.Description("Monte Carlo blackjack simulator for continuous shuffler tables"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": strings.Join(bot.Names(), ", "),
			"presets":    strings.Join(game.PresetNames(), ", "),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
