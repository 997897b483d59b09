package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	facing := BettingContext{Stack: 1000, Highest: 10, MinRaise: 10, MinBet: 10}
	unopened := BettingContext{Stack: 1000, MinRaise: 10, MinBet: 10}

	act := func(typ ActionType, amount int) PlayerAction {
		return PlayerAction{PlayerID: 7, Type: typ, Amount: amount}
	}

	tests := []struct {
		name       string
		ctx        BettingContext
		action     PlayerAction
		accepted   bool
		applied    PlayerAction
		suggestion PlayerAction
	}{
		{"fold", facing, act(Fold, 0), true, act(Fold, 0), PlayerAction{}},
		{"fold ignores amount", facing, act(Fold, 50), true, act(Fold, 0), PlayerAction{}},
		{"check facing bet", facing, act(Check, 0), false, PlayerAction{}, act(Call, 10)},
		{"call computed", facing, act(Call, 0), true, act(Call, 10), PlayerAction{}},
		{"call exact", facing, act(Call, 10), true, act(Call, 10), PlayerAction{}},
		{"call with stale amount", facing, act(Call, 7), true, act(Call, 10), PlayerAction{}},
		{"over-sized call is allin", BettingContext{Stack: 50, Highest: 100, MinRaise: 100, MinBet: 10}, act(Call, 100), true, act(Allin, 50), PlayerAction{}},
		{"short call is allin", BettingContext{Stack: 6, Highest: 10, MinRaise: 10, MinBet: 10}, act(Call, 0), true, act(Allin, 6), PlayerAction{}},
		{"bet into bet", facing, act(Bet, 50), false, PlayerAction{}, act(Raise, 20)},
		{"raise below minimum", facing, act(Raise, 15), false, PlayerAction{}, act(Raise, 20)},
		{"min raise", facing, act(Raise, 20), true, act(Raise, 20), PlayerAction{}},
		{"raise above stack", facing, act(Raise, 1001), false, PlayerAction{}, act(Allin, 1000)},
		{"raise whole stack", facing, act(Raise, 1000), true, act(Allin, 1000), PlayerAction{}},
		{"short allin raise", BettingContext{Stack: 15, Highest: 10, MinRaise: 10, MinBet: 10}, act(Raise, 15), true, act(Allin, 15), PlayerAction{}},
		{"raise counts contribution", BettingContext{Stack: 990, Contribution: 10, Highest: 30, MinRaise: 20, MinBet: 10}, act(Raise, 50), true, act(Raise, 50), PlayerAction{}},
		{"allin wrong amount", facing, act(Allin, 10), false, PlayerAction{}, act(Allin, 1000)},
		{"allin", facing, act(Allin, 1000), true, act(Allin, 1000), PlayerAction{}},
		{"negative amount", facing, act(Raise, -5), false, PlayerAction{}, act(Fold, 0)},
		{"check unopened", unopened, act(Check, 0), true, act(Check, 0), PlayerAction{}},
		{"call unopened", unopened, act(Call, 0), false, PlayerAction{}, act(Check, 0)},
		{"raise unopened", unopened, act(Raise, 40), false, PlayerAction{}, act(Bet, 10)},
		{"bet below minimum", unopened, act(Bet, 5), false, PlayerAction{}, act(Bet, 10)},
		{"bet zero", unopened, act(Bet, 0), false, PlayerAction{}, act(Bet, 10)},
		{"bet", unopened, act(Bet, 40), true, act(Bet, 40), PlayerAction{}},
		{"bet whole stack", unopened, act(Bet, 1000), true, act(Allin, 1000), PlayerAction{}},
		{"bet above stack", unopened, act(Bet, 1200), false, PlayerAction{}, act(Allin, 1000)},
		{"short stack bet", BettingContext{Stack: 8, MinRaise: 10, MinBet: 10}, act(Bet, 5), true, act(Allin, 8), PlayerAction{}},
		{"no chips behind", BettingContext{Highest: 10, MinRaise: 10, MinBet: 10}, act(Call, 0), false, PlayerAction{}, act(Check, 0)},
		{"unknown type", facing, act(None, 0), false, PlayerAction{}, act(Fold, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.ctx, tt.action)
			assert.Equal(t, tt.accepted, v.Accepted, v.Reason)
			if tt.accepted {
				assert.Equal(t, tt.applied, v.Action)
				assert.Empty(t, v.Reason)
				return
			}
			assert.NotEmpty(t, v.Reason)
			assert.Equal(t, tt.suggestion, v.Suggestion)
		})
	}
}

func TestValidActions(t *testing.T) {
	tests := []struct {
		name string
		ctx  BettingContext
		want []ValidAction
	}{
		{
			name: "unopened",
			ctx:  BettingContext{Stack: 1000, MinRaise: 10, MinBet: 10},
			want: []ValidAction{
				{Type: Fold},
				{Type: Check},
				{Type: Bet, MinAmount: 10, MaxAmount: 999},
				{Type: Allin, MinAmount: 1000, MaxAmount: 1000},
			},
		},
		{
			name: "facing a raise",
			ctx:  BettingContext{Stack: 990, Contribution: 10, Highest: 30, MinRaise: 20, MinBet: 10},
			want: []ValidAction{
				{Type: Fold},
				{Type: Call, MinAmount: 20, MaxAmount: 20},
				{Type: Raise, MinAmount: 50, MaxAmount: 999},
				{Type: Allin, MinAmount: 990, MaxAmount: 990},
			},
		},
		{
			name: "cannot cover the call",
			ctx:  BettingContext{Stack: 8, Highest: 10, MinRaise: 10, MinBet: 10},
			want: []ValidAction{{Type: Fold}, {Type: Allin, MinAmount: 8, MaxAmount: 8}},
		},
		{
			name: "cannot reach a full raise",
			ctx:  BettingContext{Stack: 15, Highest: 10, MinRaise: 10, MinBet: 10},
			want: []ValidAction{
				{Type: Fold},
				{Type: Call, MinAmount: 10, MaxAmount: 10},
				{Type: Allin, MinAmount: 15, MaxAmount: 15},
			},
		},
		{
			name: "no chips",
			ctx:  BettingContext{Highest: 10, MinRaise: 10, MinBet: 10},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidActions(tt.ctx)
			assert.Equal(t, tt.want, got)

			// Both bounds of every listed action must pass validation unchanged.
			for _, v := range got {
				for _, amount := range []int{v.MinAmount, v.MaxAmount} {
					verdict := Validate(tt.ctx, PlayerAction{Type: v.Type, Amount: amount})
					assert.True(t, verdict.Accepted, "%s %d: %s", v.Type, amount, verdict.Reason)
					assert.Equal(t, v.Type, verdict.Action.Type)
				}
			}
		})
	}
}

func TestToCall(t *testing.T) {
	assert.Equal(t, 10, BettingContext{Stack: 100, Highest: 10}.ToCall())
	assert.Equal(t, 5, BettingContext{Stack: 5, Highest: 10}.ToCall())
	assert.Equal(t, 0, BettingContext{Stack: 100, Contribution: 10, Highest: 10}.ToCall())
}
