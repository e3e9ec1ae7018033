package simulator

import (
	"fmt"
	"math"

	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/statistics"
)

// Counts tallies round outcomes across one or more sessions.
type Counts struct {
	Rounds           int `json:"rounds"`
	Hands            int `json:"hands"`
	Wins             int `json:"wins"`
	Losses           int `json:"losses"`
	Pushes           int `json:"pushes"`
	Blackjacks       int `json:"blackjacks"`
	Busts            int `json:"busts"`
	Doubles          int `json:"doubles"`
	Splits           int `json:"splits"`
	DealerBlackjacks int `json:"dealer_blackjacks"`
	InsuranceTaken   int `json:"insurance_taken"`
	InsuranceWon     int `json:"insurance_won"`
}

func (c *Counts) add(res game.RoundResult) {
	c.Rounds++
	c.Splits += res.Splits
	if res.DealerBlackjack {
		c.DealerBlackjacks++
	}
	if res.Insurance.Taken {
		c.InsuranceTaken++
		if res.Insurance.Net > 0 {
			c.InsuranceWon++
		}
	}
	for _, h := range res.Hands {
		c.Hands++
		if h.Doubled {
			c.Doubles++
		}
		switch h.Outcome {
		case game.OutcomeWin:
			c.Wins++
		case game.OutcomeLoss:
			c.Losses++
		case game.OutcomePush:
			c.Pushes++
		case game.OutcomeBlackjack:
			c.Blackjacks++
		case game.OutcomeBust:
			c.Busts++
		}
	}
}

// Merge adds another tally into this one
func (c *Counts) Merge(o Counts) {
	c.Rounds += o.Rounds
	c.Hands += o.Hands
	c.Wins += o.Wins
	c.Losses += o.Losses
	c.Pushes += o.Pushes
	c.Blackjacks += o.Blackjacks
	c.Busts += o.Busts
	c.Doubles += o.Doubles
	c.Splits += o.Splits
	c.DealerBlackjacks += o.DealerBlackjacks
	c.InsuranceTaken += o.InsuranceTaken
	c.InsuranceWon += o.InsuranceWon
}

// Session is the record of one simulated session.
type Session struct {
	Index int
	Seed  int64
	// Trajectory holds the bankroll after each completed round.
	Trajectory []float64
	Final      float64
	Ruined     bool
	// Returns accumulates the per-round net in units of the wager.
	Returns statistics.Moments
	Counts  Counts
}

// HandsPlayed returns the number of completed rounds
func (s Session) HandsPlayed() int {
	return len(s.Trajectory)
}

// RunSession plays one session on its own shoe seeded with seed. It stops
// early once the bankroll can no longer cover the table minimum. A session
// whose last round leaves it below the minimum counts as ruined.
func RunSession(cfg config.Config, index int, seed int64) (Session, error) {
	agent, err := bot.New(cfg.Strategy, nil)
	if err != nil {
		return Session{}, err
	}
	shoe := deck.NewShoe(randutil.New(seed), cfg.Rules.Decks)
	resolver := game.NewResolver(cfg.Rules, shoe, agent)
	minimum := cfg.TableMinimum()

	s := Session{
		Index:      index,
		Seed:       seed,
		Trajectory: make([]float64, 0, cfg.Hands),
	}
	bankroll := cfg.InitialBankroll

	for hand := 0; hand < cfg.Hands && bankroll >= minimum; hand++ {
		wager := math.Min(cfg.BetSize, bankroll)
		res, err := resolver.Play(wager, bankroll)
		if err != nil {
			return Session{}, fmt.Errorf("session %d (seed %d) hand %d: %w", index, seed, hand+1, err)
		}
		bankroll += res.Net
		if bankroll < 0 {
			return Session{}, fmt.Errorf("session %d (seed %d) hand %d: %w: bankroll went negative (%g)",
				index, seed, hand+1, game.ErrInvariant, bankroll)
		}

		s.Trajectory = append(s.Trajectory, bankroll)
		s.Returns.Add(res.Net / wager)
		s.Counts.add(res)
	}

	s.Final = bankroll
	s.Ruined = bankroll < minimum
	return s, nil
}
