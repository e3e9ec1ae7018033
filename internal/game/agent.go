package game

import "github.com/lox/blackjacksim/internal/deck"

// Action is a player decision on a hand.
type Action int

const (
	Stand Action = iota
	Hit
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// DecisionContext tells an agent which optional actions are legal right now.
type DecisionContext struct {
	// CanDouble is true on the first action of a hard 9-11 when the table and
	// the remaining bankroll allow it.
	CanDouble bool
	// CanSplit is true on an unsplit pair when the split limit and bankroll
	// allow another hand.
	CanSplit bool
	// DoubleAfterSplit mirrors the table rule, so an agent can judge whether
	// a split hand would later be allowed to double.
	DoubleAfterSplit bool
	// FromSplit is set when the hand being played came from a split.
	FromSplit bool
}

// Allows reports whether the action is legal in this context.
func (c DecisionContext) Allows(a Action) bool {
	switch a {
	case Stand, Hit:
		return true
	case Double:
		return c.CanDouble
	case Split:
		return c.CanSplit
	default:
		return false
	}
}

// Agent is the player's decision policy. Agents receive the hand and the
// dealer upcard and must not mutate either.
type Agent interface {
	// Decide picks the next action for hand. It must only return Double or
	// Split when ctx allows them.
	Decide(hand *Hand, upcard deck.Card, ctx DecisionContext) Action
	// TakeInsurance is asked once per round, only when the upcard is an ace.
	TakeInsurance(hand *Hand, upcard deck.Card) bool
}
