package game

import "github.com/lox/holdem-engine/internal/deck"

// Logger is the logging capability. *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Error(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
}

// HandEvaluator ranks a set of 5 to 7 cards. Higher ranks beat lower ranks and
// equal ranks tie.
type HandEvaluator interface {
	Rank(cards []deck.Card) (int, error)
}

// StatisticsStore persists per-player statistics once per concluded hand.
type StatisticsStore interface {
	Save(hand HandSnapshot) error
}

// BotStrategy proposes an action from a read-only context. ok is false when the
// strategy is waiting on outside input, as for a human seat.
type BotStrategy interface {
	Name() string
	Decide(ctx BotContext) (action PlayerAction, ok bool)
}

// Capabilities are the collaborators a Hand depends on. Statistics is optional.
type Capabilities struct {
	Randomizer deck.Randomizer
	Evaluator  HandEvaluator
	Logger     Logger
	Statistics StatisticsStore
}
