package deck

import (
	"fmt"
	"strings"
)

// ParseRank parses a single rank character. "10" is accepted as well as "T".
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return Rank(s[0] - '0'), nil
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	}
	return 0, fmt.Errorf("invalid suit %q", b)
}

// ParseCards parses a compact card string such as "AsKd9h" into cards.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string %q has odd length", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := ParseRank(s[i : i+1])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i/2+1, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i/2+1, err)
		}
		cards = append(cards, NewCard(suit, rank))
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
