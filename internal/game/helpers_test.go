package game

import (
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
)

// scriptedAgent replays a fixed list of actions and stands once it runs out.
type scriptedAgent struct {
	actions  []Action
	insure   bool
	contexts []DecisionContext
	totals   []int
	asked    int
}

func (a *scriptedAgent) Decide(hand *Hand, _ deck.Card, ctx DecisionContext) Action {
	a.contexts = append(a.contexts, ctx)
	a.totals = append(a.totals, hand.Total())
	if len(a.actions) == 0 {
		return Stand
	}
	next := a.actions[0]
	a.actions = a.actions[1:]
	return next
}

func (a *scriptedAgent) TakeInsurance(*Hand, deck.Card) bool {
	a.asked++
	return a.insure
}

func stacked(t *testing.T, cards string) *deck.Stacked {
	t.Helper()
	return deck.NewStacked(nil, deck.MustParseCards(cards)...)
}

func hand(cards string) *Hand {
	return NewHand(deck.MustParseCards(cards)...)
}
