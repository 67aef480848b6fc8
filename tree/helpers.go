// Package tree enumerates the action tree of a game variant, for
// counting and inspecting positions and information sets.
package tree

import (
	"fmt"

	"github.com/timpalpant/poker-cfr"
)

// Node is a position in the action tree of a single deal.
type Node struct {
	History      cfr.History
	RoundCounter int
	// Terminal nodes have no Player.
	Terminal bool
	Player   int
}

// Visit calls visitor on every node of the action tree for deal, in
// depth-first order, starting from the empty history.
func Visit(game cfr.Game, deal []cfr.Card, visitor func(node Node)) {
	visitHelper(game, deal, "", 0, visitor)
}

func visitHelper(game cfr.Game, deal []cfr.Card, h cfr.History, roundCounter int, visitor func(node Node)) {
	if _, ok := game.Utility(deal, h); ok {
		visitor(Node{History: h, RoundCounter: roundCounter, Terminal: true})
		return
	}

	visitor(Node{History: h, RoundCounter: roundCounter, Player: cfr.PlayerToAct(roundCounter)})
	for i := 0; i < game.NumActions(h, roundCounter); i++ {
		child := h.Append(cfr.NthAction(i))
		visitHelper(game, deal, child, cfr.NextRoundCounter(child, roundCounter), visitor)
	}
}

// Deals returns every distinct ordering of the game's deck.
func Deals(game cfr.Game) [][]cfr.Card {
	seen := make(map[string]struct{})
	var result [][]cfr.Card
	permute(game.Deck(), 0, func(deal []cfr.Card) {
		key := fmt.Sprint(deal)
		if _, ok := seen[key]; ok {
			return
		}

		seen[key] = struct{}{}
		result = append(result, append([]cfr.Card(nil), deal...))
	})

	return result
}

func permute(deck []cfr.Card, k int, cb func(deal []cfr.Card)) {
	if k == len(deck) {
		cb(deck)
		return
	}

	for i := k; i < len(deck); i++ {
		deck[k], deck[i] = deck[i], deck[k]
		permute(deck, k+1, cb)
		deck[k], deck[i] = deck[i], deck[k]
	}
}

// VisitInfoSets calls visitor once for each distinct information set
// reachable under any deal.
func VisitInfoSets(game cfr.Game, visitor func(player int, infoSet cfr.InfoSet)) {
	seen := make(map[string]struct{})
	for _, deal := range Deals(game) {
		Visit(game, deal, func(node Node) {
			if node.Terminal {
				return
			}

			infoSet := game.InfoSet(deal, node.Player, node.History)
			key := infoSet.Key()
			if _, ok := seen[key]; ok {
				return
			}

			visitor(node.Player, infoSet)
			seen[key] = struct{}{}
		})
	}
}

func CountTerminalNodes(game cfr.Game, deal []cfr.Card) int {
	total := 0
	Visit(game, deal, func(node Node) {
		if node.Terminal {
			total++
		}
	})

	return total
}

func CountNodes(game cfr.Game, deal []cfr.Card) int {
	total := 0
	Visit(game, deal, func(node Node) { total++ })
	return total
}

func CountInfoSets(game cfr.Game) int {
	total := 0
	VisitInfoSets(game, func(player int, infoSet cfr.InfoSet) { total++ })
	return total
}
