package game

import "fmt"

// ActionType is the kind of move a player makes.
type ActionType int

const (
	None ActionType = iota
	Fold
	Check
	Call
	Bet
	Raise
	Allin
)

func (a ActionType) String() string {
	if a < None || a > Allin {
		return "unknown"
	}
	return [...]string{"none", "fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseActionType is the inverse of String.
func ParseActionType(s string) (ActionType, error) {
	for a := Fold; a <= Allin; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return None, fmt.Errorf("unknown action %q", s)
}

// PlayerAction is a proposed or applied action.
//
// Amount semantics: Bet is the chips put in; Raise is the total street
// contribution after raising ("raise to"); Allin is the remaining stack; Call is
// the chips needed to match, or 0 to let the engine compute it.
type PlayerAction struct {
	PlayerID int
	Type     ActionType
	Amount   int
}

func (a PlayerAction) String() string {
	switch a.Type {
	case Fold, Check, None:
		return fmt.Sprintf("player %d %s", a.PlayerID, a.Type)
	default:
		return fmt.Sprintf("player %d %s %d", a.PlayerID, a.Type, a.Amount)
	}
}

// ValidAction describes one legal action type with its amount bounds.
type ValidAction struct {
	Type      ActionType
	MinAmount int
	MaxAmount int
}
