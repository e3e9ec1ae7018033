// Package game implements the table side of casino blackjack: hand scoring,
// the dealer's fixed drawing policy, the rule set of a table and the round
// resolver that plays one bet from the deal to the payout.
//
// # Basic Usage
//
// Play a round against a continuous shuffling machine:
//
//	shoe := deck.NewShoe(randutil.New(42), deck.DefaultDecks)
//	r := game.NewResolver(game.DefaultRules(), shoe, agent)
//	res, err := r.Play(10, 1000) // bet 10 out of a 1000 bankroll
//	if err != nil {
//	    return err
//	}
//	bankroll += res.Net
//
// # Deterministic Testing
//
// Any deck.Source can feed the resolver. deck.NewStacked deals a fixed
// sequence so that a particular table situation can be replayed exactly:
//
//	src := deck.NewStacked(nil, deck.MustParseCards("AsKd9h7c")...)
//
// Cards are dealt player, dealer, player, dealer; the first dealer card is the
// upcard.
//
// # Architecture
//
// Resolver delegates to small, independently testable pieces:
//   - Hand: totals, soft/hard state, blackjack/bust/pair flags
//   - PlayDealer: the dealer state machine (Hit, Stand, Bust)
//   - Agent: the player's decision policy, implemented in internal/bot
//   - Rules: table variants such as soft 17, split limits and push-on-22
//
// Splits are played from an explicit work-list rather than by recursion, so
// stack depth is bounded whatever the number of resplits.
package game
