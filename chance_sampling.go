package cfr

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ChanceSamplingCFR implements chance-sampled CFR: each call to Run walks
// the complete action tree of a single dealt hand, accumulating regrets
// and strategy sums into the StrategyProfile.
type ChanceSamplingCFR struct {
	game            Game
	strategyProfile StrategyProfile
	slicePool       *floatSlicePool

	deal []Card
}

// NewChanceSampling returns a CFR engine for the given game variant.
func NewChanceSampling(game Game, strategyProfile StrategyProfile) *ChanceSamplingCFR {
	return &ChanceSamplingCFR{
		game:            game,
		strategyProfile: strategyProfile,
		slicePool:       &floatSlicePool{},
	}
}

// Run performs one traversal of the hand dealt by deal, starting from the
// empty history with unit reach probabilities, and returns its value to player 0.
// The deal must not be modified until Run returns.
func (c *ChanceSamplingCFR) Run(deal []Card) float64 {
	c.deal = deal
	defer func() { c.deal = nil }()
	return c.runHelper("", player0, 0, 1.0, 1.0)
}

// runHelper returns the value of history h from the point of view of
// lastPlayer, the player whose action led to h.
func (c *ChanceSamplingCFR) runHelper(h History, lastPlayer, roundCounter int, reachP0, reachP1 float64) float64 {
	if u, ok := c.game.Utility(c.deal, h); ok {
		// Terminal payoffs are relative to the player who did not act last.
		return -u
	}

	if len(h) >= c.game.MaxHistoryLen() {
		panic(fmt.Errorf("%s: history %q exceeds max hand length %d without a verdict",
			c.game.Name(), h, c.game.MaxHistoryLen()))
	}

	player := PlayerToAct(roundCounter)
	return getSign(lastPlayer, player) * c.handlePlayerNode(h, player, roundCounter, reachP0, reachP1)
}

func (c *ChanceSamplingCFR) handlePlayerNode(h History, player, roundCounter int, reachP0, reachP1 float64) float64 {
	nActions := c.game.NumActions(h, roundCounter)
	is := c.game.InfoSet(c.deal, player, h)
	policy := c.strategyProfile.GetPolicy(is, nActions)
	strategy := policy.GetStrategy(reachProb(player, reachP0, reachP1))

	regrets := c.slicePool.alloc(nActions)
	defer c.slicePool.free(regrets)
	var cfValue float64
	for i := 0; i < nActions; i++ {
		child := h.Append(NthAction(i))
		childRoundCounter := NextRoundCounter(child, roundCounter)
		p := strategy[i]
		var util float64
		if player == player0 {
			util = c.runHelper(child, player, childRoundCounter, p*reachP0, reachP1)
		} else {
			util = c.runHelper(child, player, childRoundCounter, reachP0, p*reachP1)
		}

		regrets[i] = util
		cfValue += p * util
	}

	// Transform action utilities into instantaneous regrets by
	// subtracting out the expected utility over all possible actions.
	floats.AddConst(-cfValue, regrets)
	policy.AddRegret(counterFactualProb(player, reachP0, reachP1), regrets)
	return cfValue
}

const player0 = 0

// getSign converts a value from the point of view of player to that
// of lastPlayer. Players usually alternate, but the first player to act in
// a new betting round may be the one who closed the previous round.
func getSign(lastPlayer, player int) float64 {
	if player == lastPlayer {
		return 1.0
	}

	return -1.0
}

func reachProb(player int, reachP0, reachP1 float64) float64 {
	if player == player0 {
		return reachP0
	}

	return reachP1
}

// The probability of reaching this node, assuming that the current player
// tried to reach it.
func counterFactualProb(player int, reachP0, reachP1 float64) float64 {
	if player == player0 {
		return reachP1
	}

	return reachP0
}
