package cfr

import (
	"testing"
)

func TestNextRoundCounter(t *testing.T) {
	testCases := []struct {
		next         History
		roundCounter int
		expected     int
	}{
		{"p", 0, 1},
		{"b", 0, 1},
		{"pp", 1, 0},
		{"pb", 1, 2},
		{"bb", 1, 0},
		{"br", 1, 2},
		{"pbb", 2, 0},
		{"brb", 2, 0},
		{"pbr", 2, 3},
		{"pbrb", 3, 0},
		// First action of the second round never closes it.
		{"ppp", 0, 1},
		{"pbbb", 0, 1},
		{"ppbb", 1, 0},
	}

	for _, tc := range testCases {
		if got := NextRoundCounter(tc.next, tc.roundCounter); got != tc.expected {
			t.Errorf("NextRoundCounter(%q, %d): expected %d, got %d",
				tc.next, tc.roundCounter, tc.expected, got)
		}
	}
}

func TestNumActions(t *testing.T) {
	testCases := []struct {
		h            History
		roundCounter int
		expected     int
	}{
		{"", 0, 2},
		{"p", 1, 2},
		{"b", 1, 3},
		{"pb", 2, 3},
		{"br", 2, 2},
		{"pbr", 3, 2},
		// A bet closing the previous round does not open a raise.
		{"bb", 0, 2},
		{"ppb", 1, 3},
	}

	for _, tc := range testCases {
		if got := NumActions(tc.h, tc.roundCounter); got != tc.expected {
			t.Errorf("NumActions(%q, %d): expected %d, got %d",
				tc.h, tc.roundCounter, tc.expected, got)
		}
	}
}

func TestInfoSetKey(t *testing.T) {
	testCases := []struct {
		is       InfoSet
		expected string
	}{
		{InfoSet{Card: 2}, "2"},
		{InfoSet{Card: 2, History: "pb"}, "2pb"},
		{InfoSet{Card: 1, Community: 3, History: "pp"}, "13pp"},
		{InfoSet{Card: 3, Community: 3, History: "pbbb"}, "33pbbb"},
	}

	for _, tc := range testCases {
		if got := tc.is.Key(); got != tc.expected {
			t.Errorf("expected key %q, got %q", tc.expected, got)
		}
	}
}

func TestHistory(t *testing.T) {
	var h History
	if h.Last() != 0 {
		t.Errorf("expected no last action for empty history, got %v", h.Last())
	}

	h = h.Append(Bet).Append(Raise)
	if h != "br" {
		t.Errorf("expected history %q, got %q", "br", h)
	}

	if h.Last() != Raise {
		t.Errorf("expected last action %v, got %v", Raise, h.Last())
	}

	actions := h.Actions()
	if len(actions) != 2 || actions[0] != Bet || actions[1] != Raise {
		t.Errorf("unexpected actions: %v", actions)
	}
}
