package game

// BettingRoundHistory is the append-only log of actions on one street.
type BettingRoundHistory struct {
	State   GameState
	Actions []PlayerAction
}

// Count returns how many actions of type t were taken.
func (h BettingRoundHistory) Count(t ActionType) int {
	n := 0
	for _, a := range h.Actions {
		if a.Type == t {
			n++
		}
	}
	return n
}

// ActionsBy returns the actions taken by one player, in order.
func (h BettingRoundHistory) ActionsBy(playerID int) []PlayerAction {
	var out []PlayerAction
	for _, a := range h.Actions {
		if a.PlayerID == playerID {
			out = append(out, a)
		}
	}
	return out
}

func (h BettingRoundHistory) clone() BettingRoundHistory {
	return BettingRoundHistory{State: h.State, Actions: append([]PlayerAction(nil), h.Actions...)}
}

// bettingRound tracks the live betting state of the current street.
type bettingRound struct {
	history  BettingRoundHistory
	highest  int
	minRaise int
	// lastRaiser is the id of the last player to bet or raise, -1 if none.
	lastRaiser int
	raises     int
}

func newBettingRound(state GameState, bigBlind int) bettingRound {
	return bettingRound{
		history:    BettingRoundHistory{State: state},
		minRaise:   bigBlind,
		lastRaiser: -1,
	}
}

// recordAggression updates the tracker after p's contribution rose to to.
func (br *bettingRound) recordAggression(playerID, to int) {
	if to <= br.highest {
		return
	}
	if inc := to - br.highest; inc >= br.minRaise {
		br.minRaise = inc
	}
	if br.highest > 0 {
		br.raises++
	}
	br.highest = to
	br.lastRaiser = playerID
}
