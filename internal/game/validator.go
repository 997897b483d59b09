package game

import "fmt"

// BettingContext is everything Validate needs to judge an action.
type BettingContext struct {
	Stack        int // acting player's remaining chips
	Contribution int // acting player's chips in this street
	Highest      int // highest street contribution at the table
	MinRaise     int // minimum raise increment over Highest
	MinBet       int // smallest opening bet, normally the big blind
}

// ToCall is the amount needed to match the highest contribution, capped by the stack.
func (c BettingContext) ToCall() int {
	return max(0, min(c.Highest-c.Contribution, c.Stack))
}

// Verdict is the outcome of Validate. When Accepted, Action is the action to
// apply, which may differ from the proposal by a documented correction (a short
// call or bet becomes Allin). When rejected, Reason explains why and Suggestion
// holds the closest legal action.
type Verdict struct {
	Accepted   bool
	Action     PlayerAction
	Reason     string
	Suggestion PlayerAction
}

func accept(a PlayerAction) Verdict {
	return Verdict{Accepted: true, Action: a}
}

func reject(a PlayerAction, suggestion PlayerAction, format string, args ...any) Verdict {
	return Verdict{Action: a, Reason: fmt.Sprintf(format, args...), Suggestion: suggestion}
}

// Validate decides whether a is legal in ctx. It never mutates anything.
func Validate(ctx BettingContext, a PlayerAction) Verdict {
	id := a.PlayerID
	allin := PlayerAction{PlayerID: id, Type: Allin, Amount: ctx.Stack}
	fold := PlayerAction{PlayerID: id, Type: Fold}

	if a.Amount < 0 {
		return reject(a, fold, "negative amount %d", a.Amount)
	}
	if ctx.Stack == 0 && a.Type != Fold && a.Type != Check {
		return reject(a, PlayerAction{PlayerID: id, Type: Check}, "player has no chips behind")
	}

	owed := ctx.Highest - ctx.Contribution

	switch a.Type {
	case Fold:
		return accept(PlayerAction{PlayerID: id, Type: Fold})

	case Check:
		if owed > 0 {
			return reject(a, callOrAllin(ctx, id), "cannot check facing a bet of %d", owed)
		}
		return accept(PlayerAction{PlayerID: id, Type: Check})

	case Call:
		if owed <= 0 {
			return reject(a, PlayerAction{PlayerID: id, Type: Check}, "nothing to call")
		}
		// The amount owed is computed here; a proposed amount is ignored.
		return accept(callOrAllin(ctx, id))

	case Bet:
		if ctx.Highest > 0 {
			return reject(a, minRaiseOrAllin(ctx, id), "cannot bet, a bet of %d already exists", ctx.Highest)
		}
		switch {
		case a.Amount > ctx.Stack:
			return reject(a, allin, "bet of %d exceeds stack of %d", a.Amount, ctx.Stack)
		case a.Amount == ctx.Stack:
			return accept(allin)
		case a.Amount <= 0:
			return reject(a, minBetOrAllin(ctx, id), "bet amount must be positive")
		case a.Amount < ctx.MinBet:
			if ctx.Stack < ctx.MinBet {
				return accept(allin)
			}
			return reject(a, minBetOrAllin(ctx, id), "bet of %d below minimum %d", a.Amount, ctx.MinBet)
		}
		return accept(PlayerAction{PlayerID: id, Type: Bet, Amount: a.Amount})

	case Raise:
		if ctx.Highest == 0 {
			return reject(a, minBetOrAllin(ctx, id), "nothing to raise, bet instead")
		}
		put := a.Amount - ctx.Contribution
		minTo := ctx.Highest + ctx.MinRaise
		switch {
		case put > ctx.Stack:
			return reject(a, allin, "raise to %d exceeds stack of %d", a.Amount, ctx.Stack+ctx.Contribution)
		case put == ctx.Stack && a.Amount > ctx.Highest:
			return accept(allin)
		case a.Amount < minTo:
			return reject(a, minRaiseOrAllin(ctx, id), "raise to %d below minimum %d", a.Amount, minTo)
		}
		return accept(PlayerAction{PlayerID: id, Type: Raise, Amount: a.Amount})

	case Allin:
		if a.Amount != ctx.Stack {
			return reject(a, allin, "all-in amount must equal remaining stack %d", ctx.Stack)
		}
		return accept(allin)
	}

	return reject(a, fold, "unknown action type %s", a.Type)
}

// ValidActions lists the legal action types in ctx with their amount bounds.
func ValidActions(ctx BettingContext) []ValidAction {
	if ctx.Stack == 0 {
		return nil
	}
	actions := []ValidAction{{Type: Fold}}
	owed := ctx.Highest - ctx.Contribution
	reach := ctx.Stack + ctx.Contribution

	if owed <= 0 {
		actions = append(actions, ValidAction{Type: Check})
	} else if owed < ctx.Stack {
		actions = append(actions, ValidAction{Type: Call, MinAmount: owed, MaxAmount: owed})
	}

	switch {
	case ctx.Highest == 0 && ctx.Stack > ctx.MinBet:
		actions = append(actions, ValidAction{Type: Bet, MinAmount: ctx.MinBet, MaxAmount: ctx.Stack - 1})
	case ctx.Highest > 0 && reach > ctx.Highest+ctx.MinRaise:
		actions = append(actions, ValidAction{Type: Raise, MinAmount: ctx.Highest + ctx.MinRaise, MaxAmount: reach - 1})
	}

	return append(actions, ValidAction{Type: Allin, MinAmount: ctx.Stack, MaxAmount: ctx.Stack})
}

func callOrAllin(ctx BettingContext, id int) PlayerAction {
	want := ctx.ToCall()
	if want >= ctx.Stack {
		return PlayerAction{PlayerID: id, Type: Allin, Amount: ctx.Stack}
	}
	return PlayerAction{PlayerID: id, Type: Call, Amount: want}
}

func minBetOrAllin(ctx BettingContext, id int) PlayerAction {
	if ctx.Stack <= ctx.MinBet {
		return PlayerAction{PlayerID: id, Type: Allin, Amount: ctx.Stack}
	}
	return PlayerAction{PlayerID: id, Type: Bet, Amount: ctx.MinBet}
}

func minRaiseOrAllin(ctx BettingContext, id int) PlayerAction {
	to := ctx.Highest + ctx.MinRaise
	if to-ctx.Contribution >= ctx.Stack {
		return PlayerAction{PlayerID: id, Type: Allin, Amount: ctx.Stack}
	}
	return PlayerAction{PlayerID: id, Type: Raise, Amount: to}
}
