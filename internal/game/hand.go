package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
)

// ErrInvariant marks an internal consistency failure. It always indicates a
// programming defect and is never retried.
var ErrInvariant = errors.New("invariant violation")

// Hand is an ordered set of cards held by the dealer or by one player
// position.
type Hand struct {
	Cards []deck.Card

	// FromSplit is set on both hands produced by a split. Such hands can
	// never be a natural blackjack.
	FromSplit bool
	// SplitAces is set when the hand was produced by splitting aces. It is
	// dealt exactly one card and then closed.
	SplitAces bool
}

// NewHand creates a hand holding the given cards.
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{Cards: make([]deck.Card, 0, 4)}
	h.Cards = append(h.Cards, cards...)
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// HardTotal returns the total with every ace counted as one.
func (h *Hand) HardTotal() int {
	total := 0
	for _, c := range h.Cards {
		total += c.Points()
	}
	return total
}

func (h *Hand) hasAce() bool {
	for _, c := range h.Cards {
		if c.IsAce() {
			return true
		}
	}
	return false
}

// Value returns the best total and whether it is soft. At most one ace is
// ever promoted to eleven, and only when that keeps the total at 21 or less.
func (h *Hand) Value() (total int, soft bool) {
	hard := h.HardTotal()
	if h.hasAce() && hard+10 <= 21 {
		return hard + 10, true
	}
	return hard, false
}

// Total returns the best total of the hand.
func (h *Hand) Total() int {
	total, _ := h.Value()
	return total
}

// IsSoft reports whether the best total counts an ace as eleven.
func (h *Hand) IsSoft() bool {
	_, soft := h.Value()
	return soft
}

// IsBlackjack reports a natural: exactly two cards worth 21 that were dealt,
// not produced by a split.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && !h.FromSplit && h.Total() == 21
}

// IsBust reports whether even the hard total exceeds 21.
func (h *Hand) IsBust() bool {
	return h.HardTotal() > 21
}

// IsPair reports whether the first two cards have the same point value. Only
// two-card hands can be pairs.
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Points() == h.Cards[1].Points()
}

// CanSplit reports whether the hand is a two-card pair that has not been
// played on. Table limits on the number of hands are enforced by the resolver.
func (h *Hand) CanSplit() bool {
	return h.IsPair()
}

// CanDouble reports whether the table allows doubling this hand: two cards
// making a hard 9, 10 or 11. Soft totals never qualify.
func (h *Hand) CanDouble() bool {
	if len(h.Cards) != 2 {
		return false
	}
	total, soft := h.Value()
	return !soft && total >= 9 && total <= 11
}

// Validate cross-checks the derived totals of the hand.
func (h *Hand) Validate() error {
	hard := h.HardTotal()
	n := len(h.Cards)
	if hard < n || hard > 10*n {
		return fmt.Errorf("%w: hard total %d impossible for %d cards", ErrInvariant, hard, n)
	}
	total, soft := h.Value()
	switch {
	case soft && total != hard+10:
		return fmt.Errorf("%w: soft total %d is not hard total %d plus 10", ErrInvariant, total, hard)
	case soft && total > 21:
		return fmt.Errorf("%w: soft total %d above 21", ErrInvariant, total)
	case !soft && total != hard:
		return fmt.Errorf("%w: hard hand reports total %d, cards sum to %d", ErrInvariant, total, hard)
	}
	for _, c := range h.Cards {
		if !c.Rank.Valid() {
			return fmt.Errorf("%w: card with invalid rank %d", ErrInvariant, c.Rank)
		}
	}
	return nil
}

// String renders the cards and best total, e.g. "A♠ 6♥ (soft 17)".
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	total, soft := h.Value()
	kind := "hard"
	if soft {
		kind = "soft"
	}
	return fmt.Sprintf("%s (%s %d)", strings.Join(parts, " "), kind, total)
}
