package deck

import (
	rand "math/rand/v2"
)

// DefaultDecks is the number of decks loaded into a standard shoe.
const DefaultDecks = 6

// Source is anything cards can be drawn from.
type Source interface {
	Draw() Card
}

// Shoe models a continuous shuffling machine. Every card goes back into the
// machine after each round, so each draw is an independent pick from the full
// composition: every rank carries weight 4*decks/(52*decks) no matter how many
// decks are loaded. The shoe never runs out and keeps no depletion state.
type Shoe struct {
	rng   *rand.Rand
	decks int
}

// NewShoe creates a shoe drawing from rng. Deck counts below one are treated
// as a single deck.
func NewShoe(rng *rand.Rand, decks int) *Shoe {
	if decks < 1 {
		decks = 1
	}
	return &Shoe{rng: rng, decks: decks}
}

// Draw returns the next card. Rank and suit are drawn uniformly over the 52
// distinct cards.
func (s *Shoe) Draw() Card {
	idx := s.rng.IntN(52)
	return Card{
		Rank: Two + Rank(idx/4),
		Suit: Suit(idx % 4),
	}
}

// Decks returns the number of decks the shoe represents.
func (s *Shoe) Decks() int {
	return s.decks
}

// Stacked deals a fixed sequence of cards, then falls through to an optional
// source. It is used to set up exact table situations.
type Stacked struct {
	cards    []Card
	next     int
	fallback Source
}

// NewStacked returns a source that deals cards in order. Drawing past the end
// of the stack with no fallback panics, since a rigged round asked for more
// cards than it was given.
func NewStacked(fallback Source, cards ...Card) *Stacked {
	return &Stacked{cards: cards, fallback: fallback}
}

// Draw returns the next stacked card.
func (s *Stacked) Draw() Card {
	if s.next < len(s.cards) {
		c := s.cards[s.next]
		s.next++
		return c
	}
	if s.fallback == nil {
		panic("deck: stacked source exhausted")
	}
	return s.fallback.Draw()
}

// Remaining returns how many stacked cards have not been dealt yet.
func (s *Stacked) Remaining() int {
	return len(s.cards) - s.next
}
