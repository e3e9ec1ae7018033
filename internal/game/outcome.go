package game

import "github.com/lox/blackjacksim/internal/deck"

// Outcome is the settled result of one player hand.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeBust      Outcome = "bust"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// Multiplier returns the signed payout per unit staked.
func (o Outcome) Multiplier(rules Rules) float64 {
	switch o {
	case OutcomeBlackjack:
		return rules.BlackjackPayout
	case OutcomeWin:
		return 1
	case OutcomeLoss, OutcomeBust:
		return -1
	default:
		return 0
	}
}

// HandResult is one settled player hand.
type HandResult struct {
	Cards     []deck.Card
	Total     int
	Outcome   Outcome
	Stake     float64
	Net       float64
	Doubled   bool
	FromSplit bool
	// Parent is the arena index of the hand this one was split from, or -1.
	Parent int
}

// InsuranceResult is the settled insurance side bet.
type InsuranceResult struct {
	Offered bool
	Taken   bool
	Stake   float64
	Net     float64
}

// RoundResult is everything that survives a round.
type RoundResult struct {
	Bet             float64
	Hands           []HandResult
	Dealer          []deck.Card
	DealerTotal     int
	DealerBlackjack bool
	DealerPlayed    bool
	Insurance       InsuranceResult
	Splits          int
	// Net is the bankroll delta of the round, insurance included.
	Net float64
}

// Wagered returns the total amount put at risk on main hands.
func (r RoundResult) Wagered() float64 {
	total := 0.0
	for _, h := range r.Hands {
		total += h.Stake
	}
	return total
}
