// Package history records a readable log of each hand from the hand's
// notifications and optionally writes it to disk when the hand concludes.
package history

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
)

// Record is the history of one hand.
type Record struct {
	HandID   string
	Started  time.Time
	Finished time.Time
	Lines    []string
}

func (r Record) String() string {
	return strings.Join(r.Lines, "\n") + "\n"
}

// Duration is how long the hand took by the recorder's clock.
func (r Record) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Recorder builds a Record per hand. Attach it with game.WithEvents(r.Events()).
// When dir is set each concluded hand is written to dir/<hand id>.txt.
type Recorder struct {
	clock  quartz.Clock
	logger *log.Logger
	dir    string

	mu      sync.Mutex
	current *Record
	seats   []int
	names   map[int]string
	hole    map[int]deck.HoleCards
	pot     int
	last    Record
}

// NewRecorder returns a recorder stamping hands with clock.
func NewRecorder(dir string, clock quartz.Clock, logger *log.Logger) *Recorder {
	return &Recorder{
		clock:  clock,
		logger: logger.WithPrefix("history"),
		dir:    dir,
	}
}

// Last returns the most recently concluded hand.
func (r *Recorder) Last() Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Events returns the callbacks that feed the recorder.
func (r *Recorder) Events() game.Events {
	return game.Events{
		OnHandInitialized:     r.handInitialized,
		OnPotUpdated:          r.potUpdated,
		OnHoleCardsDealt:      r.holeCardsDealt,
		OnBettingRoundStarted: r.bettingRoundStarted,
		OnBoardDealt:          r.boardDealt,
		OnPlayerActed:         r.playerActed,
		OnInvalidPlayerAction: r.invalidPlayerAction,
		OnShowdownStarted:     r.showdownStarted,
		OnHandConcluded:       r.handConcluded,
		OnEngineError:         r.engineError,
	}
}

func (r *Recorder) linef(format string, args ...any) {
	if r.current == nil {
		return
	}
	r.current.Lines = append(r.current.Lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) name(id int) string {
	if n := r.names[id]; n != "" {
		return n
	}
	return fmt.Sprintf("player %d", id)
}

func (r *Recorder) handInitialized(s game.HandSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.current = &Record{HandID: s.HandID, Started: now}
	r.seats = r.seats[:0]
	r.names = make(map[int]string, len(s.Players))
	r.hole = make(map[int]deck.HoleCards, len(s.Players))
	r.pot = 0

	r.linef("Hand %s - Hold'em No Limit (%d/%d) - %s", s.HandID, s.Blinds.Small, s.Blinds.Big, now.UTC().Format(time.RFC3339))
	for i, p := range s.Players {
		r.seats = append(r.seats, p.ID)
		r.names[p.ID] = p.Name
		marker := ""
		if p.ID == s.DealerID {
			marker = " (button)"
		}
		r.linef("Seat %d: %s (%d in chips)%s", i+1, r.name(p.ID), p.Stack, marker)
	}
}

func (r *Recorder) potUpdated(amount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pot = amount
}

func (r *Recorder) holeCardsDealt(id int, cards deck.HoleCards) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hole != nil {
		r.hole[id] = cards
	}
}

func (r *Recorder) bettingRoundStarted(s game.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s != game.Preflop {
		return
	}
	r.linef("*** HOLE CARDS *** (pot %d)", r.pot)
	for _, id := range r.seats {
		if cards, ok := r.hole[id]; ok {
			r.linef("Dealt to %s [%s]", r.name(id), cards)
		}
	}
}

func (r *Recorder) boardDealt(s game.GameState, board []deck.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linef("*** %s *** [%s] (pot %d)", strings.ToUpper(s.String()), deck.FormatCards(board), r.pot)
}

func (r *Recorder) playerActed(a game.PlayerAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linef("%s: %s", r.name(a.PlayerID), describe(a))
}

func describe(a game.PlayerAction) string {
	switch a.Type {
	case game.Fold:
		return "folds"
	case game.Check:
		return "checks"
	case game.Call:
		return fmt.Sprintf("calls %d", a.Amount)
	case game.Bet:
		return fmt.Sprintf("bets %d", a.Amount)
	case game.Raise:
		return fmt.Sprintf("raises to %d", a.Amount)
	case game.Allin:
		return fmt.Sprintf("all-in for %d", a.Amount)
	}
	return a.Type.String()
}

func (r *Recorder) invalidPlayerAction(id int, a game.PlayerAction, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linef("%s: invalid %s (%s)", r.name(id), describe(a), reason)
}

func (r *Recorder) showdownStarted(order []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linef("*** SHOWDOWN ***")
	for _, id := range order {
		r.linef("%s: shows [%s]", r.name(id), r.hole[id])
	}
}

func (r *Recorder) engineError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linef("engine error: %s", msg)
}

func (r *Recorder) handConcluded(winners []int, amounts map[int]int) {
	r.mu.Lock()
	if r.current == nil {
		r.mu.Unlock()
		return
	}
	r.linef("*** SUMMARY ***")
	r.linef("Total pot %d", r.pot)
	for _, id := range winners {
		r.linef("%s collected %d", r.name(id), amounts[id])
	}
	r.current.Finished = r.clock.Now()
	rec := *r.current
	r.last = rec
	r.current = nil
	r.mu.Unlock()

	if r.dir == "" {
		return
	}
	path := filepath.Join(r.dir, rec.HandID+".txt")
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, rec.String())
		return err
	})
	if err != nil {
		r.logger.Error("failed to write hand history", "hand", rec.HandID, "path", path, "err", err)
		return
	}
	r.logger.Debug("hand history written", "hand", rec.HandID, "path", path, "duration", rec.Duration())
}
