// Package leduc implements Leduc Hold'em: a six-card deck of three ranks,
// one private card per player, a betting round, a community card, and a
// second betting round.
package leduc

import (
	"github.com/timpalpant/poker-cfr"
)

// Name is the configuration tag of this variant.
const Name = "leduc"

// communityIdx is the position of the community card in a dealt deck.
const communityIdx = 2

// Poker implements cfr.Game for Leduc Hold'em.
type Poker struct{}

var _ cfr.Game = Poker{}

// NewGame returns the Leduc Hold'em variant.
func NewGame() Poker {
	return Poker{}
}

// Name implements cfr.Game.
func (Poker) Name() string {
	return Name
}

// Deck implements cfr.Game.
func (Poker) Deck() []cfr.Card {
	return []cfr.Card{1, 1, 2, 2, 3, 3}
}

// InfoSet implements cfr.Game. The community card is part of the
// information set from the first decision of the second round onwards.
func (Poker) InfoSet(deal []cfr.Card, player int, h cfr.History) cfr.InfoSet {
	is := cfr.InfoSet{Card: deal[player], History: h}
	if r1, ok := parseRound(h); ok && !r1.fold {
		is.Community = deal[communityIdx]
	}

	return is
}

// NumActions implements cfr.Game.
func (Poker) NumActions(h cfr.History, roundCounter int) int {
	return cfr.NumActions(h, roundCounter)
}

// MaxHistoryLen implements cfr.Game.
func (Poker) MaxHistoryLen() int {
	return 2 * maxRoundLen
}

// Utility implements cfr.Game.
func (Poker) Utility(deal []cfr.Card, h cfr.History) (float64, bool) {
	r1, ok := parseRound(h)
	if !ok {
		return 0, false
	}

	if r1.fold {
		return r1.multiplier, true
	}

	round2 := h[r1.length:]
	r2, ok := parseRound(round2)
	if !ok {
		return 0, false
	}

	pot := r1.multiplier * r2.multiplier
	if r2.fold {
		return pot, true
	}

	// Player 0 opens the second round, so the player whose turn it
	// would be is given by the parity of the round's length.
	player := len(round2) % 2
	return pot * showdown(deal[player], deal[1-player], deal[communityIdx]), true
}

// showdown returns 1 if card beats opponent given the community card,
// -1 if it loses, and 0 for a split pot.
func showdown(card, opponent, community cfr.Card) float64 {
	if card == opponent {
		return 0
	}

	if card == community {
		return 1
	} else if opponent == community {
		return -1
	} else if card > opponent {
		return 1
	}

	return -1
}

// roundEnding describes how a completed betting round ended.
type roundEnding struct {
	fold bool
	// multiplier scales the pot: for a fold it is the amount forfeited,
	// otherwise the factor applied to the pot carried into the next round.
	multiplier float64
	length     int
}

const maxRoundLen = 4

// roundEndings lists every action sequence that ends a betting round.
var roundEndings = map[cfr.History]roundEnding{
	"bp":   {fold: true, multiplier: 1},
	"pbp":  {fold: true, multiplier: 1},
	"brp":  {fold: true, multiplier: 2},
	"pbrp": {fold: true, multiplier: 2},
	"pp":   {multiplier: 1},
	"bb":   {multiplier: 2},
	"pbb":  {multiplier: 2},
	"brb":  {multiplier: 4},
	"pbrb": {multiplier: 4},
}

// parseRound finds the betting round at the start of h. It returns
// false if the round is still in progress.
func parseRound(h cfr.History) (roundEnding, bool) {
	for n := 2; n <= len(h) && n <= maxRoundLen; n++ {
		if e, ok := roundEndings[h[:n]]; ok {
			e.length = n
			return e, true
		}
	}

	return roundEnding{}, false
}
