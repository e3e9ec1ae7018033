package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	require.NoError(t, r.Validate())

	assert.Equal(t, 6, r.Decks)
	assert.True(t, r.DealerHitsSoft17)
	assert.Equal(t, 1.5, r.BlackjackPayout)
	assert.True(t, r.DoubleAfterSplit)
	assert.Equal(t, 0, r.MaxSplitHands)
	assert.False(t, r.ResplitAces)
	assert.Equal(t, 2.0, r.InsurancePayout)
	assert.False(t, r.DealerPush22)
	assert.False(t, r.FiveCardCharlie)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"blackjack-plus", "crown", "free-bet", "skycity"}, PresetNames())

	for _, name := range PresetNames() {
		r, ok := Preset(name)
		require.True(t, ok, name)
		assert.NoError(t, r.Validate(), name)
	}

	_, ok := Preset("atlantic-city")
	assert.False(t, ok)

	plus, _ := Preset("blackjack-plus")
	assert.Equal(t, 1.2, plus.BlackjackPayout)
	assert.True(t, plus.DealerPush22)

	free, _ := Preset("free-bet")
	assert.Equal(t, 1.5, free.BlackjackPayout)
	assert.True(t, free.DealerHitsSoft17)
	assert.True(t, free.DealerPush22)
	assert.False(t, free.FiveCardCharlie)
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Rules)
		errMsg string
	}{
		{"zero decks", func(r *Rules) { r.Decks = 0 }, "decks"},
		{"zero blackjack payout", func(r *Rules) { r.BlackjackPayout = 0 }, "blackjack payout"},
		{"negative insurance payout", func(r *Rules) { r.InsurancePayout = -2 }, "insurance payout"},
		{"single split hand", func(r *Rules) { r.MaxSplitHands = 1 }, "max split hands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.modify(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSplitAllowed(t *testing.T) {
	r := DefaultRules()
	assert.True(t, r.splitAllowed(50))

	r.MaxSplitHands = 4
	assert.True(t, r.splitAllowed(3))
	assert.False(t, r.splitAllowed(4))
}
