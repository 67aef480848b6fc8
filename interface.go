package cfr

import (
	"strconv"
)

// Card is the rank of a playing card. Suits are irrelevant in the
// games supported here, so a deck may hold several cards of equal rank.
type Card int

// String implements fmt.Stringer.
func (c Card) String() string {
	return strconv.Itoa(int(c))
}

// Action is a single public betting action, encoded as one byte of History.
type Action byte

const (
	Pass  Action = 'p' // Check, or fold when facing a bet.
	Bet   Action = 'b' // Bet, or call when facing a bet or raise.
	Raise Action = 'r'
)

// actions is the canonical action ordering. Strategies are indexed by
// position in this list, so a node with n actions offers actions[:n].
var actions = [...]Action{Pass, Bet, Raise}

// MaxActions is the largest number of actions offered at any node.
const MaxActions = len(actions)

// NthAction returns the action played by choosing index i of a strategy.
func NthAction(i int) Action {
	return actions[i]
}

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case Pass:
		return "Pass"
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	}

	return "Action(" + strconv.Itoa(int(a)) + ")"
}

// InfoSet is the observable game history from the point of view of one player:
// their private card, the community card once it has been revealed, and
// the public action history.
type InfoSet struct {
	Card      Card
	Community Card // Zero until revealed.
	History   History
}

// Key is an identifier used to uniquely look up this InfoSet
// when accumulating regrets in tabular CFR.
func (is InfoSet) Key() string {
	buf := make([]byte, 0, len(is.History)+2)
	buf = strconv.AppendInt(buf, int64(is.Card), 10)
	if is.Community != 0 {
		buf = strconv.AppendInt(buf, int64(is.Community), 10)
	}

	return string(append(buf, is.History...))
}

// Game describes one variant of poker: its deck, who sees what, which
// actions are legal, and how hands are scored. The CFR engine is agnostic
// to the variant and only ever interacts with it through this interface.
type Game interface {
	// Name is the configuration tag of the variant, e.g. "kuhn".
	Name() string

	// Deck returns a fresh copy of the full deck. The first two cards of a
	// shuffled deck are the players' private cards; variants with a
	// community card read it from a fixed later index.
	Deck() []Card

	// InfoSet returns the information set of player at history h given
	// the dealt cards.
	InfoSet(deal []Card, player int, h History) InfoSet

	// NumActions returns the number of legal actions (2 or 3) at the
	// non-terminal history h, where roundCounter is the number of
	// actions taken so far in the current betting round.
	NumActions(h History, roundCounter int) int

	// Utility reports whether h is terminal and, if so, the payoff for
	// the player who did NOT make the last action in h. Utility must
	// be a pure function of its arguments.
	Utility(deal []Card, h History) (float64, bool)

	// MaxHistoryLen bounds the length of any legal hand.
	MaxHistoryLen() int
}

// NodePolicy learns a strategy for play at a single information set.
type NodePolicy interface {
	// NumActions is the fixed number of actions available at the node.
	NumActions() int
	// GetStrategy performs regret matching and returns the current strategy.
	// It also accumulates the strategy, weighted by reachP, into the
	// running sum that defines the average strategy.
	GetStrategy(reachP float64) []float64
	// AddRegret adds instantaneousRegrets, weighted by the counterfactual
	// reach probability w, to the accumulated regret.
	AddRegret(w float64, instantaneousRegrets []float64)
	// GetAverageStrategy returns the average strategy over all iterations.
	GetAverageStrategy() []float64
}

// StrategyProfile maintains a collection of NodePolicy for each information
// set that is visited in a traversal of the game tree.
type StrategyProfile interface {
	// GetPolicy returns the NodePolicy for the given information set,
	// creating it with nActions actions on first visit.
	GetPolicy(is InfoSet, nActions int) NodePolicy
	// Update finishes the current iteration, applying any configured
	// discounting to the policies touched during it.
	Update()
	// Iter is the current (1-based) iteration.
	Iter() int
	// Len is the number of information sets visited so far.
	Len() int
	// AverageStrategies returns the average strategy of every information
	// set, keyed by InfoSet.Key().
	AverageStrategies() map[string][]float64
}
