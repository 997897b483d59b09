package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Maniac bets and raises almost every hand and shoves often. It ignores its
// cards entirely.
type Maniac struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiac returns a Maniac drawing from rng.
func NewManiac(rng *rand.Rand, logger *log.Logger) *Maniac {
	return &Maniac{rng: rng, logger: logger}
}

func (m *Maniac) Name() string {
	return ManiacName
}

func (m *Maniac) Decide(ctx game.BotContext) (game.PlayerAction, bool) {
	if len(ctx.ValidActions) == 0 {
		return game.PlayerAction{}, false
	}

	var a game.PlayerAction
	var reason string
	short := ctx.Stack <= 20*ctx.Blinds.Big

	if ctx.ToCall == 0 {
		switch roll := m.rng.Float64(); {
		case roll >= 0.85:
			a, reason = passive(ctx), "checking"
		case short || m.rng.Float64() < 0.3:
			a, reason = action(ctx, game.Allin, ctx.Stack), "shove"
		default:
			a, reason = aggress(ctx, potSized(ctx, 1.5)), "big bet"
		}
	} else {
		switch roll := m.rng.Float64(); {
		case roll < 0.4:
			a, reason = action(ctx, game.Allin, ctx.Stack), "shove over bet"
		case roll < 0.8:
			a, reason = passive(ctx), "call"
		default:
			a, reason = action(ctx, game.Fold, 0), "fold"
		}
	}

	m.logger.Debug("decision", "player", ctx.PlayerID, "state", ctx.State, "action", a.Type, "amount", a.Amount, "reason", reason)
	return a, true
}
