package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/blackjacksim/internal/deck"
)

// ErrInvalidBet is returned when a round is started with a bet the bankroll
// cannot cover or that is not a positive amount.
var ErrInvalidBet = errors.New("invalid bet")

// Resolver plays complete rounds for a single player seat.
type Resolver struct {
	rules Rules
	src   deck.Source
	agent Agent
}

// NewResolver creates a resolver dealing from src and asking agent for every
// player decision.
func NewResolver(rules Rules, src deck.Source, agent Agent) *Resolver {
	return &Resolver{rules: rules, src: src, agent: agent}
}

// Rules returns the table rules the resolver plays by.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// seat is one entry of the split arena. Split seats are replaced by their two
// children and never settled themselves.
type seat struct {
	hand    *Hand
	stake   float64
	parent  int
	doubled bool
	split   bool
	charlie bool
}

// Play deals and settles one round for bet. bankroll bounds the extra money
// that doubles, splits and insurance may commit on top of the bet.
func (r *Resolver) Play(bet, bankroll float64) (RoundResult, error) {
	if !(bet > 0) || math.IsInf(bet, 0) {
		return RoundResult{}, fmt.Errorf("%w: bet must be a positive amount, got %g", ErrInvalidBet, bet)
	}
	if bet > bankroll {
		return RoundResult{}, fmt.Errorf("%w: bet %g exceeds bankroll %g", ErrInvalidBet, bet, bankroll)
	}

	player := NewHand()
	dealer := NewHand()
	player.AddCard(r.src.Draw())
	dealer.AddCard(r.src.Draw())
	player.AddCard(r.src.Draw())
	dealer.AddCard(r.src.Draw())
	upcard := dealer.Cards[0]

	res := RoundResult{Bet: bet}
	available := bankroll - bet

	if upcard.IsAce() {
		res.Insurance.Offered = true
		stake := bet / 2
		if available >= stake && r.agent.TakeInsurance(player, upcard) {
			available -= stake
			res.Insurance.Taken = true
			res.Insurance.Stake = stake
			if dealer.IsBlackjack() {
				res.Insurance.Net = stake * r.rules.InsurancePayout
			} else {
				res.Insurance.Net = -stake
			}
		}
	}

	root := &seat{hand: player, stake: bet, parent: -1}

	if dealer.IsBlackjack() {
		res.DealerBlackjack = true
		outcome := OutcomeLoss
		if player.IsBlackjack() {
			outcome = OutcomePush
		}
		res.Hands = []HandResult{r.result(root, outcome)}
		return r.finish(res, dealer)
	}

	if player.IsBlackjack() {
		res.Hands = []HandResult{r.result(root, OutcomeBlackjack)}
		return r.finish(res, dealer)
	}

	arena, order, err := r.playHands(root, upcard, bet, available)
	if err != nil {
		return RoundResult{}, err
	}
	res.Splits = (len(arena) - 1) / 2

	live := false
	for _, i := range order {
		s := arena[i]
		if !s.hand.IsBust() && !s.charlie {
			live = true
			break
		}
	}

	state := NextDealerState(dealer, r.rules)
	if live {
		state = PlayDealer(dealer, r.src, r.rules)
		res.DealerPlayed = true
	}

	res.Hands = make([]HandResult, 0, len(order))
	for _, i := range order {
		s := arena[i]
		res.Hands = append(res.Hands, r.result(s, r.settle(s, dealer, state)))
	}
	return r.finish(res, dealer)
}

// playHands plays the player's hand and every hand split from it. Pending
// hands sit on an explicit stack so a long chain of resplits never deepens
// the call stack. It returns the arena and the indexes of the settled hands
// in the order they were played.
func (r *Resolver) playHands(root *seat, upcard deck.Card, bet, available float64) ([]*seat, []int, error) {
	arena := []*seat{root}
	pending := []int{0}
	order := make([]int, 0, 2)
	hands := 1

	split := func(i int) {
		s := arena[i]
		s.split = true
		aces := s.hand.Cards[0].IsAce()
		right := &seat{hand: NewHand(s.hand.Cards[1]), stake: bet, parent: i}
		left := &seat{hand: NewHand(s.hand.Cards[0]), stake: bet, parent: i}
		for _, child := range []*seat{left, right} {
			child.hand.FromSplit = true
			child.hand.SplitAces = aces
		}
		arena = append(arena, left, right)
		// right is pushed first so the left hand is played first
		pending = append(pending, len(arena)-1, len(arena)-2)
		hands++
		available -= bet
	}

next:
	for len(pending) > 0 {
		i := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		s := arena[i]
		h := s.hand
		if len(h.Cards) == 1 {
			h.AddCard(r.src.Draw())
		}

		for {
			if h.IsBust() {
				break
			}
			if h.SplitAces {
				if r.rules.ResplitAces && h.IsPair() && r.rules.splitAllowed(hands) && available >= bet {
					split(i)
					continue next
				}
				break
			}
			if r.rules.FiveCardCharlie && len(h.Cards) >= 5 {
				s.charlie = true
				break
			}
			if h.Total() == 21 {
				break
			}

			ctx := DecisionContext{
				CanDouble:        h.CanDouble() && (!h.FromSplit || r.rules.DoubleAfterSplit) && available >= s.stake,
				CanSplit:         h.CanSplit() && r.rules.splitAllowed(hands) && available >= bet,
				DoubleAfterSplit: r.rules.DoubleAfterSplit,
				FromSplit:        h.FromSplit,
			}
			action := r.agent.Decide(h, upcard, ctx)
			if !ctx.Allows(action) {
				return nil, nil, fmt.Errorf("%w: agent chose %s on %s when it was not allowed", ErrInvariant, action, h)
			}

			switch action {
			case Stand:
				order = append(order, i)
				continue next
			case Hit:
				h.AddCard(r.src.Draw())
			case Double:
				available -= s.stake
				s.stake *= 2
				s.doubled = true
				h.AddCard(r.src.Draw())
				order = append(order, i)
				continue next
			case Split:
				split(i)
				continue next
			}
		}
		order = append(order, i)
	}

	for _, i := range order {
		if err := arena[i].hand.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return arena, order, nil
}

// settle compares a finished player hand against the dealer.
func (r *Resolver) settle(s *seat, dealer *Hand, state DealerState) Outcome {
	switch {
	case s.hand.IsBust():
		return OutcomeBust
	case s.charlie:
		return OutcomeWin
	case state == DealerBust && r.rules.DealerPush22 && dealer.Total() == 22:
		return OutcomePush
	case state == DealerBust:
		return OutcomeWin
	}

	player, house := s.hand.Total(), dealer.Total()
	switch {
	case player > house:
		return OutcomeWin
	case player < house:
		return OutcomeLoss
	default:
		return OutcomePush
	}
}

func (r *Resolver) result(s *seat, outcome Outcome) HandResult {
	cards := make([]deck.Card, len(s.hand.Cards))
	copy(cards, s.hand.Cards)
	return HandResult{
		Cards:     cards,
		Total:     s.hand.Total(),
		Outcome:   outcome,
		Stake:     s.stake,
		Net:       outcome.Multiplier(r.rules) * s.stake,
		Doubled:   s.doubled,
		FromSplit: s.hand.FromSplit,
		Parent:    s.parent,
	}
}

func (r *Resolver) finish(res RoundResult, dealer *Hand) (RoundResult, error) {
	if err := dealer.Validate(); err != nil {
		return RoundResult{}, err
	}
	res.Dealer = make([]deck.Card, len(dealer.Cards))
	copy(res.Dealer, dealer.Cards)
	res.DealerTotal = dealer.Total()

	res.Net = res.Insurance.Net
	for _, h := range res.Hands {
		res.Net += h.Net
	}
	return res, nil
}
