package game

import (
	"errors"
	"fmt"
	"sort"
)

// Rules describes the house rules of a table.
type Rules struct {
	// Decks only informs reporting: a continuous shuffler draws every rank
	// with the same probability whatever the deck count.
	Decks            int     `json:"decks"`
	DealerHitsSoft17 bool    `json:"dealer_hits_soft_17"`
	BlackjackPayout  float64 `json:"blackjack_payout"`
	DoubleAfterSplit bool    `json:"double_after_split"`
	// MaxSplitHands caps the number of hands a player can hold after
	// splitting. Zero means unlimited.
	MaxSplitHands   int     `json:"max_split_hands"`
	ResplitAces     bool    `json:"resplit_aces"`
	InsurancePayout float64 `json:"insurance_payout"`
	// DealerPush22 turns a dealer total of exactly 22 into a push against
	// every live player hand instead of a dealer bust.
	DealerPush22    bool `json:"dealer_push_22"`
	FiveCardCharlie bool `json:"five_card_charlie"`
}

// DefaultPreset names the rule set used when none is configured.
const DefaultPreset = "skycity"

var presets = map[string]Rules{
	// Six decks in a continuous shuffler, dealer hits soft 17, doubles on
	// hard 9-11 only, unlimited splits except aces, dealer busts on 22.
	"skycity": {
		Decks:            6,
		DealerHitsSoft17: true,
		BlackjackPayout:  1.5,
		DoubleAfterSplit: true,
		MaxSplitHands:    0,
		ResplitAces:      false,
		InsurancePayout:  2,
	},
	"crown": {
		Decks:            8,
		DealerHitsSoft17: true,
		BlackjackPayout:  1.5,
		DoubleAfterSplit: true,
		MaxSplitHands:    0,
		InsurancePayout:  2,
	},
	"blackjack-plus": {
		Decks:            6,
		DealerHitsSoft17: true,
		BlackjackPayout:  1.2,
		DoubleAfterSplit: true,
		MaxSplitHands:    0,
		InsurancePayout:  2,
		DealerPush22:     true,
		FiveCardCharlie:  true,
	},
	// Free doubles are not modeled; the table otherwise plays 3:2 with a
	// dealer 22 pushing.
	"free-bet": {
		Decks:            6,
		DealerHitsSoft17: true,
		BlackjackPayout:  1.5,
		DoubleAfterSplit: true,
		MaxSplitHands:    0,
		InsurancePayout:  2,
		DealerPush22:     true,
	},
}

// DefaultRules returns the default table rules.
func DefaultRules() Rules {
	return presets[DefaultPreset]
}

// Preset returns the named rule set.
func Preset(name string) (Rules, bool) {
	r, ok := presets[name]
	return r, ok
}

// PresetNames lists the available rule presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the rule set for values the resolver cannot play.
func (r Rules) Validate() error {
	var errs []error
	if r.Decks < 1 {
		errs = append(errs, fmt.Errorf("decks must be at least 1, got %d", r.Decks))
	}
	if r.BlackjackPayout <= 0 {
		errs = append(errs, fmt.Errorf("blackjack payout must be positive, got %g", r.BlackjackPayout))
	}
	if r.InsurancePayout <= 0 {
		errs = append(errs, fmt.Errorf("insurance payout must be positive, got %g", r.InsurancePayout))
	}
	if r.MaxSplitHands < 0 || r.MaxSplitHands == 1 {
		errs = append(errs, fmt.Errorf("max split hands must be 0 (unlimited) or at least 2, got %d", r.MaxSplitHands))
	}
	return errors.Join(errs...)
}

// splitAllowed reports whether a player already holding hands can split once
// more.
func (r Rules) splitAllowed(hands int) bool {
	return r.MaxSplitHands == 0 || hands < r.MaxSplitHands
}
