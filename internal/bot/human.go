package bot

import (
	"sync"

	"github.com/lox/holdem-engine/internal/game"
)

// HumanPending is the strategy of a seat driven from outside the process. It
// has no opinion of its own: Decide returns the action queued with Submit, or
// reports that input is still pending.
type HumanPending struct {
	mu      sync.Mutex
	pending *game.PlayerAction
}

// NewHumanPending returns a strategy with nothing queued.
func NewHumanPending() *HumanPending {
	return &HumanPending{}
}

func (h *HumanPending) Name() string {
	return HumanPendingName
}

// Submit queues the next action, replacing any unconsumed one.
func (h *HumanPending) Submit(a game.PlayerAction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = &a
}

// Pending reports whether an action is queued.
func (h *HumanPending) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

func (h *HumanPending) Decide(ctx game.BotContext) (game.PlayerAction, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return game.PlayerAction{}, false
	}
	a := *h.pending
	h.pending = nil
	a.PlayerID = ctx.PlayerID
	return a, true
}
