package cfr

import (
	"math"
	"reflect"
	"testing"
)

// scriptedGame is a two-action, two-level game with fixed payoffs,
// independent of the deal.
type scriptedGame struct {
	payoffs map[History]float64
	maxLen  int
}

func (g scriptedGame) Name() string { return "scripted" }
func (g scriptedGame) Deck() []Card { return []Card{1, 2} }
func (g scriptedGame) MaxHistoryLen() int {
	if g.maxLen > 0 {
		return g.maxLen
	}
	return 2
}

func (g scriptedGame) InfoSet(deal []Card, player int, h History) InfoSet {
	return InfoSet{Card: deal[player], History: h}
}

func (g scriptedGame) NumActions(h History, roundCounter int) int {
	return 2
}

func (g scriptedGame) Utility(deal []Card, h History) (float64, bool) {
	u, ok := g.payoffs[h]
	return u, ok
}

// Payoffs are for player 0, who never acts last.
var twoLevelPayoffs = map[History]float64{
	"pp": 1,
	"pb": -2,
	"bp": 3,
	"bb": 0,
}

func almostEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}

	return true
}

func TestChanceSampling_TwoLevelTraversal(t *testing.T) {
	game := scriptedGame{payoffs: twoLevelPayoffs}
	st := NewStrategyTable(DiscountParams{})
	cs := NewChanceSampling(game, st)
	deal := []Card{1, 2}

	// Uniform play: the mean of all payoffs.
	if ev := cs.Run(deal); math.Abs(ev-0.5) > 1e-9 {
		t.Errorf("expected value %v, got %v", 0.5, ev)
	}
	st.Update()

	expectedRegrets := map[string][]float64{
		"1":  {-1.0, 1.0},
		"2p": {-0.75, 0.75},
		"2b": {-0.75, 0.75},
	}
	if st.Len() != len(expectedRegrets) {
		t.Errorf("expected %d infosets, got %d", len(expectedRegrets), st.Len())
	}
	for key, expected := range expectedRegrets {
		p, ok := st.policies[key]
		if !ok {
			t.Fatalf("missing infoset %q", key)
		}

		if !almostEqual(p.GetRegretSum(), expected) {
			t.Errorf("%s: expected regret sum %v, got %v", key, expected, p.GetRegretSum())
		}

		if !almostEqual(p.GetStrategySum(), []float64{0.5, 0.5}) {
			t.Errorf("%s: expected strategy sum %v, got %v", key, []float64{0.5, 0.5}, p.GetStrategySum())
		}
	}

	// Everyone now bets with probability 1, reaching "bb".
	if ev := cs.Run(deal); math.Abs(ev) > 1e-9 {
		t.Errorf("expected value %v, got %v", 0.0, ev)
	}
	st.Update()

	avg := st.AverageStrategies()
	if !almostEqual(avg["1"], []float64{0.25, 0.75}) {
		t.Errorf("unexpected root average strategy: %v", avg["1"])
	}

	// "2p" is reached with probability 0 by player 0 on the second
	// iteration, but player 1's own reach is 1.
	if !almostEqual(avg["2p"], []float64{0.25, 0.75}) {
		t.Errorf("unexpected average strategy at 2p: %v", avg["2p"])
	}
	if p := st.policies["2p"]; !almostEqual(p.GetRegretSum(), []float64{-0.75, 0.75}) {
		t.Errorf("regret at unreached node changed: %v", p.GetRegretSum())
	}
}

func TestChanceSampling_SamePlayerKeepsSign(t *testing.T) {
	// Player 0 acts, the round closes, and player 0 acts again.
	game := roundTransitionGame{}
	st := NewStrategyTable(DiscountParams{})
	cs := NewChanceSampling(game, st)

	// Player 0 wins 1 in every terminal state.
	if ev := cs.Run([]Card{1, 2}); math.Abs(ev-1.0) > 1e-9 {
		t.Errorf("expected value %v, got %v", 1.0, ev)
	}
}

// roundTransitionGame has a first round closed by "pp" or "bb", after
// which player 0 acts again and the game ends.
type roundTransitionGame struct{}

func (roundTransitionGame) Name() string { return "transition" }
func (roundTransitionGame) Deck() []Card { return []Card{1, 2} }
func (roundTransitionGame) MaxHistoryLen() int { return 4 }

func (roundTransitionGame) InfoSet(deal []Card, player int, h History) InfoSet {
	return InfoSet{Card: deal[player], History: h}
}

func (roundTransitionGame) NumActions(h History, roundCounter int) int {
	return 2
}

// Histories: "" (p0) -> "p"/"b" (p1) -> "pp"/"bb" close the round, so
// p0 acts again -> terminal. "pb"/"bp" end immediately.
func (roundTransitionGame) Utility(deal []Card, h History) (float64, bool) {
	switch len(h) {
	case 2:
		if h == "pb" || h == "bp" {
			// Player 1 acted last: payoff to player 0.
			return 1, true
		}
	case 3:
		// Player 0 acted last: payoff to player 1.
		return -1, true
	}

	return 0, false
}

func TestChanceSampling_PanicsWithoutVerdict(t *testing.T) {
	game := scriptedGame{payoffs: map[History]float64{}, maxLen: 3}
	cs := NewChanceSampling(game, NewStrategyTable(DiscountParams{}))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unterminated hand")
		}
	}()
	cs.Run([]Card{1, 2})
}

func TestStrategyTable_PanicsOnActionCountMismatch(t *testing.T) {
	st := NewStrategyTable(DiscountParams{})
	is := InfoSet{Card: 1, History: "b"}
	st.GetPolicy(is, 3)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for mismatched action count")
		}
	}()
	st.GetPolicy(is, 2)
}

func TestStrategyTable_Discounting(t *testing.T) {
	st := NewStrategyTable(DiscountParams{UseRegretMatchingPlus: true})
	is := InfoSet{Card: 1}
	p := st.GetPolicy(is, 2)
	p.AddRegret(1.0, []float64{1.0, -1.0})
	st.Update()

	if got := st.policies[is.Key()].GetRegretSum(); !reflect.DeepEqual(got, []float64{1.0, 0.0}) {
		t.Errorf("expected negative regret to be discarded, got %v", got)
	}

	if st.Iter() != 2 {
		t.Errorf("expected iteration %d, got %d", 2, st.Iter())
	}
}
