package game

// GameState is the street the hand is on. PostRiver is terminal.
type GameState int

const (
	Preflop GameState = iota
	Flop
	Turn
	River
	PostRiver
)

func (s GameState) String() string {
	if s < Preflop || s > PostRiver {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "postriver"}[s]
}

// IsBettingRound reports whether players act in this state.
func (s GameState) IsBettingRound() bool {
	return s >= Preflop && s < PostRiver
}

// Next returns the state that follows s. PostRiver maps to itself.
func (s GameState) Next() GameState {
	switch s {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	default:
		return PostRiver
	}
}

// BoardSize is the number of community cards visible in s.
func (s GameState) BoardSize() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}
