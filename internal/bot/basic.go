package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// BasicStrategy plays the basic strategy chart. Pairs are looked up first;
// a pair the chart does not split is played off its hard or soft total.
type BasicStrategy struct {
	chart  *Chart
	logger *log.Logger
	insure bool
}

// NewBasicStrategy creates a policy playing BasicChart
func NewBasicStrategy(logger *log.Logger) *BasicStrategy {
	return NewChartStrategy(BasicChart, logger)
}

// NewChartStrategy creates a policy playing an arbitrary chart.
func NewChartStrategy(chart *Chart, logger *log.Logger) *BasicStrategy {
	if logger != nil {
		logger = logger.WithPrefix("strategy")
	}
	return &BasicStrategy{chart: chart, logger: logger}
}

// Decide implements game.Agent
func (b *BasicStrategy) Decide(hand *game.Hand, upcard deck.Card, ctx game.DecisionContext) game.Action {
	action, cat := b.decide(hand, upcard, ctx)
	if b.logger != nil {
		b.logger.Debug("decision", "hand", hand, "upcard", upcard, "row", cat.Kind, "total", cat.Total, "action", action)
	}
	return action
}

func (b *BasicStrategy) decide(hand *game.Hand, upcard deck.Card, ctx game.DecisionContext) (game.Action, Category) {
	if ctx.CanSplit {
		cat := Classify(hand, true)
		if m, ok := b.chart.Lookup(cat, upcard); ok && m.Splits(ctx) {
			return game.Split, cat
		}
	}

	cat := Classify(hand, false)
	m, ok := b.chart.Lookup(cat, upcard)
	if !ok {
		// only reachable for hard totals the chart has no row for
		if cat.Total >= 17 {
			return game.Stand, cat
		}
		return game.Hit, cat
	}
	return m.Resolve(ctx), cat
}

// TakeInsurance declines insurance unless the policy was built to take it.
// Without tracking the shoe the side bet always carries a negative
// expectation.
func (b *BasicStrategy) TakeInsurance(*game.Hand, deck.Card) bool {
	return b.insure
}
