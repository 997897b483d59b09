package game

import "github.com/lox/holdem-engine/internal/deck"

// PlayerSnapshot is an immutable copy of one player's hand state.
type PlayerSnapshot struct {
	ID                 int
	Name               string
	Strategy           string
	StartingStack      int
	Stack              int
	StreetContribution int
	TotalContribution  int
	Role               Role
	Status             Status
	LastAction         PlayerAction
	HoleCards          deck.HoleCards
	HandRank           int
	Actions            [PostRiver][]PlayerAction
}

// VoluntarilyPutMoneyIn reports whether the player called, bet or raised preflop.
func (p PlayerSnapshot) VoluntarilyPutMoneyIn() bool {
	for _, a := range p.Actions[Preflop] {
		switch a.Type {
		case Call, Bet, Raise, Allin:
			return true
		}
	}
	return false
}

// HandSnapshot is an immutable copy of the whole hand.
type HandSnapshot struct {
	HandID        string
	State         GameState
	Blinds        Blinds
	DealerID      int
	CurrentPlayer int // -1 when nobody is to act
	Board         []deck.Card
	Pot           int
	Highest       int
	MinRaise      int
	Players       []PlayerSnapshot
	History       []BettingRoundHistory
	Terminal      bool
}

// Player returns the snapshot of the player with id.
func (s HandSnapshot) Player(id int) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

// BotContext is the read-only view a BotStrategy decides from. It contains
// only the acting player's own hole cards.
type BotContext struct {
	HandID     string
	PlayerID   int
	State      GameState
	HoleCards  deck.HoleCards
	Board      []deck.Card
	Blinds     Blinds
	NumPlayers int
	// NumInHand counts non-folded players including this one.
	NumInHand int
	// Position is the number of seats clockwise from the dealer (0 is the dealer).
	Position int

	Stack             int
	Contribution      int
	TotalContribution int
	Highest           int
	ToCall            int
	MinRaise          int
	Pot               int
	PotOdds           int
	MRatio            float64

	StreetRaises      int
	StreetCalls       int
	PreflopRaises     int
	LastRaiserID      int // -1 when nobody bet or raised this street
	PreflopLastRaiser int // -1 when nobody raised preflop
	ValidActions      []ValidAction
}

// Can reports whether t is among the valid actions.
func (c BotContext) Can(t ActionType) (ValidAction, bool) {
	for _, v := range c.ValidActions {
		if v.Type == t {
			return v, true
		}
	}
	return ValidAction{}, false
}

// HandResult is returned by Conclude.
type HandResult struct {
	HandID      string
	Board       []deck.Card
	Pots        []Pot
	Payouts     map[int]int
	Winners     []int
	RevealOrder []int
	Showdown    bool
	AllInRunout bool
	Players     []PlayerSnapshot
}

// FinalStacks maps player id to the post-hand stack.
func (r HandResult) FinalStacks() map[int]int {
	out := make(map[int]int, len(r.Players))
	for _, p := range r.Players {
		out[p.ID] = p.Stack
	}
	return out
}
