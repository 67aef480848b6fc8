// Package kuhn implements Kuhn Poker: three cards, one private card per
// player, and a single betting round.
package kuhn

import (
	"github.com/timpalpant/poker-cfr"
)

// Name is the configuration tag of this variant.
const Name = "kuhn"

// Poker implements cfr.Game for Kuhn Poker.
//
// The variant shares the generic action-count rule, so a raise is offered
// in response to a bet. The evaluator has no rule for it: a raise
// after a bet scores like a fold (+1 to the player who bet).
type Poker struct{}

var _ cfr.Game = Poker{}

// NewGame returns the Kuhn Poker variant.
func NewGame() Poker {
	return Poker{}
}

// Name implements cfr.Game.
func (Poker) Name() string {
	return Name
}

// Deck implements cfr.Game.
func (Poker) Deck() []cfr.Card {
	return []cfr.Card{1, 2, 3}
}

// InfoSet implements cfr.Game.
func (Poker) InfoSet(deal []cfr.Card, player int, h cfr.History) cfr.InfoSet {
	return cfr.InfoSet{Card: deal[player], History: h}
}

// NumActions implements cfr.Game.
func (Poker) NumActions(h cfr.History, roundCounter int) int {
	return cfr.NumActions(h, roundCounter)
}

// MaxHistoryLen implements cfr.Game.
func (Poker) MaxHistoryLen() int {
	return 3
}

// Utility implements cfr.Game.
func (Poker) Utility(deal []cfr.Card, h cfr.History) (float64, bool) {
	plays := len(h)
	if plays < 2 {
		return 0, false
	}

	// By convention the payoff is for the player whose turn it would be.
	player := plays % 2
	opponent := 1 - player

	last, prev := cfr.Action(h[plays-1]), cfr.Action(h[plays-2])
	leadingBet := prev == cfr.Bet
	if last == prev { // Showdown.
		pot := 1.0
		if leadingBet {
			pot = 2.0
		}

		if deal[player] > deal[opponent] {
			return pot, true
		}

		return -pot, true
	}

	if leadingBet {
		// Last player folded. The current player wins the ante.
		return 1.0, true
	}

	return 0, false
}
