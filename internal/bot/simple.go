package bot

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// MimicDealer plays the player hand by the house's drawing rule.
type MimicDealer struct{}

func (MimicDealer) Decide(hand *game.Hand, _ deck.Card, _ game.DecisionContext) game.Action {
	total, soft := hand.Value()
	if total < 17 || (total == 17 && soft) {
		return game.Hit
	}
	return game.Stand
}

func (MimicDealer) TakeInsurance(*game.Hand, deck.Card) bool { return false }

// NeverBust only draws when no card can bust the hand.
type NeverBust struct{}

func (NeverBust) Decide(hand *game.Hand, _ deck.Card, _ game.DecisionContext) game.Action {
	if hand.HardTotal() <= 11 {
		return game.Hit
	}
	return game.Stand
}

func (NeverBust) TakeInsurance(*game.Hand, deck.Card) bool { return false }
