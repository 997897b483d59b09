package statistics

import (
	"github.com/lox/holdem-engine/internal/game"
)

// StreetCounts are the action counters for one street. All-in actions count
// as raises.
type StreetCounts struct {
	Hands  int
	Folds  int
	Checks int
	Calls  int
	Bets   int
	Raises int
}

// PlayerStatistics aggregates the play of one strategy at one table size.
type PlayerStatistics struct {
	Strategy     string
	TablePlayers int

	Hands            int
	VPIPHands        int
	PFRHands         int
	Limps            int
	ThreeBets        int
	ContinuationBets int
	Streets          [game.PostRiver]StreetCounts
}

// Key identifies the aggregate a player's hand is counted under.
type Key struct {
	Strategy     string
	TablePlayers int
}

// Key returns the aggregate key.
func (s PlayerStatistics) Key() Key {
	return Key{Strategy: s.Strategy, TablePlayers: s.TablePlayers}
}

// VPIP is the percentage of hands with money voluntarily put in preflop.
func (s PlayerStatistics) VPIP() float64 {
	return percent(s.VPIPHands, s.Hands)
}

// PFR is the percentage of hands raised preflop.
func (s PlayerStatistics) PFR() float64 {
	return percent(s.PFRHands, s.Hands)
}

// AggressionFactor is postflop (bets + raises) / calls. With no calls it is
// the aggressive action count.
func (s PlayerStatistics) AggressionFactor() float64 {
	aggressive, calls := 0, 0
	for st := game.Flop; st < game.PostRiver; st++ {
		aggressive += s.Streets[st].Bets + s.Streets[st].Raises
		calls += s.Streets[st].Calls
	}
	if calls == 0 {
		return float64(aggressive)
	}
	return float64(aggressive) / float64(calls)
}

// Merge adds o's counters into s.
func (s *PlayerStatistics) Merge(o PlayerStatistics) {
	s.Hands += o.Hands
	s.VPIPHands += o.VPIPHands
	s.PFRHands += o.PFRHands
	s.Limps += o.Limps
	s.ThreeBets += o.ThreeBets
	s.ContinuationBets += o.ContinuationBets
	for st := range s.Streets {
		a, b := &s.Streets[st], o.Streets[st]
		a.Hands += b.Hands
		a.Folds += b.Folds
		a.Checks += b.Checks
		a.Calls += b.Calls
		a.Bets += b.Bets
		a.Raises += b.Raises
	}
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) * 100 / float64(d)
}

// Tally computes one hand's counters for every player who acted preflop. A
// big blind who was never asked to act is left out.
func Tally(hand game.HandSnapshot) []PlayerStatistics {
	var preflop, flop []game.PlayerAction
	for _, h := range hand.History {
		switch h.State {
		case game.Preflop:
			preflop = h.Actions
		case game.Flop:
			flop = h.Actions
		}
	}

	limps := make(map[int]int)
	threeBets := make(map[int]int)
	raises, lastRaiser := 0, -1
	for _, a := range preflop {
		switch a.Type {
		case game.Call:
			if raises == 0 {
				limps[a.PlayerID]++
			}
		case game.Raise, game.Allin, game.Bet:
			if raises == 1 {
				threeBets[a.PlayerID]++
			}
			raises++
			lastRaiser = a.PlayerID
		}
	}

	cbet := -1
	for _, a := range flop {
		if a.Type == game.Bet || a.Type == game.Allin {
			if a.PlayerID == lastRaiser {
				cbet = a.PlayerID
			}
			break
		}
	}

	var out []PlayerStatistics
	for _, p := range hand.Players {
		if len(p.Actions[game.Preflop]) == 0 {
			continue
		}
		s := PlayerStatistics{
			Strategy:     strategyName(p),
			TablePlayers: len(hand.Players),
			Hands:        1,
			Limps:        limps[p.ID],
			ThreeBets:    threeBets[p.ID],
		}
		if p.VoluntarilyPutMoneyIn() {
			s.VPIPHands = 1
		}
		if p.ID == cbet {
			s.ContinuationBets = 1
		}
		for st := game.Preflop; st < game.PostRiver; st++ {
			actions := p.Actions[st]
			if len(actions) == 0 {
				continue
			}
			c := &s.Streets[st]
			c.Hands = 1
			for _, a := range actions {
				switch a.Type {
				case game.Fold:
					c.Folds++
				case game.Check:
					c.Checks++
				case game.Call:
					c.Calls++
				case game.Bet:
					c.Bets++
				case game.Raise, game.Allin:
					c.Raises++
				}
			}
		}
		if s.Streets[game.Preflop].Raises+s.Streets[game.Preflop].Bets > 0 {
			s.PFRHands = 1
		}
		out = append(out, s)
	}
	return out
}

func strategyName(p game.PlayerSnapshot) string {
	if p.Strategy == "" {
		return "unknown"
	}
	return p.Strategy
}
