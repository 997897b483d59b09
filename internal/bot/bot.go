// Package bot provides the BotStrategy implementations players are seated
// with. Strategies only read the context they are given and propose an
// action; the hand validates it.
package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
)

// Strategy names accepted by New.
const (
	HumanPendingName    = "human"
	TightAggressiveName = "tight-aggressive"
	LooseAggressiveName = "loose-aggressive"
	ManiacName          = "maniac"
	UltraTightName      = "ultra-tight"
)

// ErrUnknownStrategy is returned by New for unregistered names.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := []string{HumanPendingName, TightAggressiveName, LooseAggressiveName, ManiacName, UltraTightName}
	slices.Sort(names)
	return names
}

// New builds the strategy registered under name.
func New(name string, rng *rand.Rand, logger *log.Logger, eval *evaluator.Evaluator) (game.BotStrategy, error) {
	logger = logger.WithPrefix(name)
	switch name {
	case HumanPendingName:
		return NewHumanPending(), nil
	case TightAggressiveName:
		return newProfileBot(tightAggressive, rng, logger, eval), nil
	case LooseAggressiveName:
		return newProfileBot(looseAggressive, rng, logger, eval), nil
	case UltraTightName:
		return newProfileBot(ultraTight, rng, logger, eval), nil
	case ManiacName:
		return NewManiac(rng, logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func action(ctx game.BotContext, t game.ActionType, amount int) game.PlayerAction {
	return game.PlayerAction{PlayerID: ctx.PlayerID, Type: t, Amount: amount}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// aggress bets or raises so the street contribution reaches to, clamped to the
// legal range. Without a legal bet or raise it shoves, then falls back to passive.
func aggress(ctx game.BotContext, to int) game.PlayerAction {
	if v, ok := ctx.Can(game.Raise); ok {
		return action(ctx, game.Raise, clamp(to, v.MinAmount, v.MaxAmount))
	}
	if v, ok := ctx.Can(game.Bet); ok {
		return action(ctx, game.Bet, clamp(to-ctx.Contribution, v.MinAmount, v.MaxAmount))
	}
	if v, ok := ctx.Can(game.Allin); ok {
		return action(ctx, game.Allin, v.MinAmount)
	}
	return passive(ctx)
}

// passive checks when free, otherwise calls. A call that needs the whole
// stack is an all-in.
func passive(ctx game.BotContext) game.PlayerAction {
	if _, ok := ctx.Can(game.Check); ok {
		return action(ctx, game.Check, 0)
	}
	if v, ok := ctx.Can(game.Call); ok {
		return action(ctx, game.Call, v.MinAmount)
	}
	if v, ok := ctx.Can(game.Allin); ok {
		return action(ctx, game.Allin, v.MinAmount)
	}
	return action(ctx, game.Fold, 0)
}

func checkOrFold(ctx game.BotContext) game.PlayerAction {
	if _, ok := ctx.Can(game.Check); ok {
		return action(ctx, game.Check, 0)
	}
	return action(ctx, game.Fold, 0)
}

// potSized returns the street total for a bet or raise of fraction of the pot
// after calling.
func potSized(ctx game.BotContext, fraction float64) int {
	afterCall := ctx.Pot + ctx.ToCall
	return ctx.Highest + int(float64(afterCall)*fraction)
}

// madeHand returns the category of the best hand using the board, or false
// before the flop.
func madeHand(eval *evaluator.Evaluator, ctx game.BotContext) (evaluator.Category, bool) {
	if len(ctx.Board) < 3 {
		return evaluator.HighCard, false
	}
	cards := append(ctx.HoleCards.Cards(), ctx.Board...)
	rank, err := eval.Rank(cards)
	if err != nil {
		return evaluator.HighCard, false
	}
	return eval.Category(rank), true
}

// pairsBoard reports whether a hole card pairs a board card or the hole cards
// are a pocket pair above the board.
func pairsBoard(ctx game.BotContext) bool {
	h := ctx.HoleCards
	if h[0].Rank == h[1].Rank {
		over := true
		for _, c := range ctx.Board {
			if c.Rank >= h[0].Rank {
				over = false
			}
		}
		return over
	}
	for _, c := range ctx.Board {
		if c.Rank == h[0].Rank || c.Rank == h[1].Rank {
			return true
		}
	}
	return false
}

func highCard(h deck.HoleCards) deck.Rank {
	return max(h[0].Rank, h[1].Rank)
}
