package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
)

// profile holds the tendencies that separate the hand-reading strategies.
// Preflop thresholds are starting hand percentiles (1.0 is aces).
type profile struct {
	name string

	raiseAbove   float64 // open or raise with hands at least this good
	reraiseAbove float64 // re-raise an existing raise
	callAbove    float64 // call a raise
	shoveAbove   float64 // shove when short (M ratio below 5)
	openSize     int     // open raise in big blinds

	valueCategory evaluator.Category // bet made hands this strong
	betFraction   float64            // postflop bet size as a fraction of pot
	maxPotOdds    int                // call a pair up to these pot odds
	bluff         float64            // chance to bet with nothing when checked to
	cbet          float64            // chance to continuation bet the flop
}

var (
	tightAggressive = profile{
		name:          TightAggressiveName,
		raiseAbove:    0.85,
		reraiseAbove:  0.95,
		callAbove:     0.75,
		shoveAbove:    0.80,
		openSize:      3,
		valueCategory: evaluator.TwoPair,
		betFraction:   0.75,
		maxPotOdds:    30,
		bluff:         0.05,
		cbet:          0.65,
	}
	looseAggressive = profile{
		name:          LooseAggressiveName,
		raiseAbove:    0.65,
		reraiseAbove:  0.85,
		callAbove:     0.45,
		shoveAbove:    0.60,
		openSize:      3,
		valueCategory: evaluator.Pair,
		betFraction:   0.8,
		maxPotOdds:    40,
		bluff:         0.25,
		cbet:          0.8,
	}
	ultraTight = profile{
		name:          UltraTightName,
		raiseAbove:    0.95,
		reraiseAbove:  0.98,
		callAbove:     0.90,
		shoveAbove:    0.93,
		openSize:      4,
		valueCategory: evaluator.ThreeOfAKind,
		betFraction:   0.6,
		maxPotOdds:    20,
		bluff:         0,
		cbet:          0.4,
	}
)

// profileBot plays starting hands by percentile and postflop by made hand.
type profileBot struct {
	profile
	rng    *rand.Rand
	logger *log.Logger
	eval   *evaluator.Evaluator
}

func newProfileBot(p profile, rng *rand.Rand, logger *log.Logger, eval *evaluator.Evaluator) *profileBot {
	return &profileBot{profile: p, rng: rng, logger: logger, eval: eval}
}

func (b *profileBot) Name() string {
	return b.name
}

func (b *profileBot) Decide(ctx game.BotContext) (game.PlayerAction, bool) {
	if len(ctx.ValidActions) == 0 {
		return game.PlayerAction{}, false
	}

	var a game.PlayerAction
	var reason string
	if ctx.State == game.Preflop {
		a, reason = b.preflop(ctx)
	} else {
		a, reason = b.postflop(ctx)
	}

	b.logger.Debug("decision",
		"player", ctx.PlayerID,
		"state", ctx.State,
		"hole", ctx.HoleCards,
		"action", a.Type,
		"amount", a.Amount,
		"reason", reason)
	return a, true
}

func (b *profileBot) preflop(ctx game.BotContext) (game.PlayerAction, string) {
	pct := deck.StartingHandPercentile(ctx.HoleCards)

	if ctx.MRatio < 5 && pct >= b.shoveAbove {
		return action(ctx, game.Allin, ctx.Stack), "short stack shove"
	}

	raised := ctx.Highest > ctx.Blinds.Big
	switch {
	case !raised && pct >= b.raiseAbove:
		to := b.openSize*ctx.Blinds.Big + ctx.StreetCalls*ctx.Blinds.Big
		return aggress(ctx, to), "open raise"
	case raised && pct >= b.reraiseAbove:
		return aggress(ctx, 3*ctx.Highest), "re-raise"
	case raised && pct >= b.callAbove:
		return passive(ctx), "call raise"
	case !raised && pct >= b.callAbove:
		return passive(ctx), "limp"
	}
	return checkOrFold(ctx), "weak hand"
}

func (b *profileBot) postflop(ctx game.BotContext) (game.PlayerAction, string) {
	cat, ok := madeHand(b.eval, ctx)
	if !ok {
		return passive(ctx), "no evaluation"
	}

	switch {
	case cat >= b.valueCategory:
		return aggress(ctx, potSized(ctx, b.betFraction)), "value " + cat.String()
	case ctx.ToCall == 0 && ctx.State == game.Flop && ctx.PreflopLastRaiser == ctx.PlayerID && b.rng.Float64() < b.cbet:
		return aggress(ctx, potSized(ctx, 0.5)), "continuation bet"
	case cat >= evaluator.Pair && pairsBoard(ctx):
		if ctx.ToCall == 0 || ctx.PotOdds <= b.maxPotOdds {
			return passive(ctx), "pot control " + cat.String()
		}
		return checkOrFold(ctx), "price too high"
	case ctx.ToCall == 0 && b.rng.Float64() < b.bluff:
		return aggress(ctx, potSized(ctx, b.betFraction)), "bluff"
	case ctx.ToCall == 0 && highCard(ctx.HoleCards) == deck.Ace:
		return passive(ctx), "ace high check"
	}
	return checkOrFold(ctx), "missed"
}
