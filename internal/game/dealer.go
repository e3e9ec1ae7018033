package game

import "github.com/lox/blackjacksim/internal/deck"

// DealerState is the state of the dealer's drawing policy.
type DealerState int

const (
	DealerHit DealerState = iota
	DealerStand
	DealerBust
)

// String returns the string representation of a dealer state
func (s DealerState) String() string {
	switch s {
	case DealerHit:
		return "hit"
	case DealerStand:
		return "stand"
	case DealerBust:
		return "bust"
	default:
		return "unknown"
	}
}

// NextDealerState applies the fixed dealer rule to the current hand: draw
// below 17, draw on soft 17 when the table hits soft 17, otherwise stand. Any
// total above 21, including exactly 22, is a bust.
func NextDealerState(h *Hand, rules Rules) DealerState {
	total, soft := h.Value()
	switch {
	case total > 21:
		return DealerBust
	case total < 17:
		return DealerHit
	case total == 17 && soft && rules.DealerHitsSoft17:
		return DealerHit
	default:
		return DealerStand
	}
}

// PlayDealer draws for the dealer until the policy stands or busts and
// returns the terminal state.
func PlayDealer(h *Hand, src deck.Source, rules Rules) DealerState {
	for {
		state := NextDealerState(h, rules)
		if state != DealerHit {
			return state
		}
		h.AddCard(src.Draw())
	}
}
