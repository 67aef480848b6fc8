package cfr

// History is the public sequence of actions since the start of the hand,
// one byte per Action.
type History string

// Append returns a new History extended by a.
func (h History) Append(a Action) History {
	return h + History([]byte{byte(a)})
}

// Last returns the most recent action, or zero if h is empty.
func (h History) Last() Action {
	if len(h) == 0 {
		return 0
	}

	return Action(h[len(h)-1])
}

// Actions returns the actions of h in order.
func (h History) Actions() []Action {
	result := make([]Action, len(h))
	for i := range h {
		result[i] = Action(h[i])
	}

	return result
}

// NumActions is the action-count rule shared by all supported variants:
// a raise is offered only as the immediate response to an opening bet,
// which caps each betting round at one raise.
func NumActions(h History, roundCounter int) int {
	if (roundCounter == 1 || roundCounter == 2) && h.Last() == Bet {
		return 3
	}

	return 2
}

// NextRoundCounter returns the round counter after next, the history
// extended by one action, was reached from a node with the given
// roundCounter. The counter resets when the action closed a betting round:
// two passes, a bet and a call, or a raise and a call. The first action of
// a round never closes it.
func NextRoundCounter(next History, roundCounter int) int {
	if roundCounter != 0 && closesRound(next) {
		return 0
	}

	return roundCounter + 1
}

func closesRound(h History) bool {
	if len(h) < 2 {
		return false
	}

	switch h[len(h)-2:] {
	case "pp", "bb", "rb":
		return true
	}

	return false
}

// PlayerToAct returns the player who acts at a node with the given round counter.
func PlayerToAct(roundCounter int) int {
	return roundCounter % 2
}
