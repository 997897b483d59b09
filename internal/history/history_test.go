package history

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

var start = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newHand(t *testing.T, r *Recorder, id string, cards string) *game.Hand {
	t.Helper()
	d, err := deck.NewStackedDeck(deck.MustParseCards(cards)...)
	require.NoError(t, err)
	return game.NewHand(game.Capabilities{
		Randomizer: randutil.NewRandomizer(1),
		Evaluator:  evaluator.New(),
		Logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}, game.WithEvents(r.Events()), game.WithDeck(d), game.WithHandID(id))
}

func act(t *testing.T, h *game.Hand, id int, typ game.ActionType, amount int) {
	t.Helper()
	res, err := h.SubmitAction(game.PlayerAction{PlayerID: id, Type: typ, Amount: amount})
	require.NoError(t, err)
	require.True(t, res.Accepted, res.Reason)
}

func TestRecorderWritesHand(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	clock.Set(start).MustWait(ctx)

	dir := t.TempDir()
	r := NewRecorder(dir, clock, log.NewWithOptions(io.Discard, log.Options{}))
	h := newHand(t, r, "h1", "Ah Ad Kh Kd Qh Qd")

	seats := []game.Seat{
		{ID: 0, Name: "alice", Stack: 1000},
		{ID: 1, Name: "bob", Stack: 1000},
		{ID: 2, Name: "carol", Stack: 1000},
	}
	require.NoError(t, h.Initialize(seats, game.Blinds{Small: 5, Big: 10}, 0))

	act(t, h, 0, game.Raise, 30)
	act(t, h, 1, game.Fold, 0)
	act(t, h, 2, game.Call, 0)
	for _, street := range []game.GameState{game.Flop, game.Turn} {
		require.Equal(t, street, h.CurrentState())
		act(t, h, 2, game.Check, 0)
		act(t, h, 0, game.Check, 0)
	}
	act(t, h, 2, game.Bet, 50)
	act(t, h, 0, game.Fold, 0)

	clock.Advance(5 * time.Second).MustWait(ctx)
	_, err := h.Conclude()
	require.NoError(t, err)

	rec := r.Last()
	assert.Equal(t, "h1", rec.HandID)
	assert.Equal(t, 5*time.Second, rec.Duration())

	lines := rec.Lines
	require.GreaterOrEqual(t, len(lines), 10)
	assert.Equal(t, "Hand h1 - Hold'em No Limit (5/10) - 2026-03-14T15:09:26Z", lines[0])
	assert.Equal(t, "Seat 1: alice (1000 in chips) (button)", lines[1])
	assert.Equal(t, "Seat 2: bob (1000 in chips)", lines[2])
	assert.Equal(t, "*** HOLE CARDS *** (pot 15)", lines[4])
	assert.Equal(t, "Dealt to alice [Qh Qd]", lines[5])
	assert.Equal(t, "Dealt to bob [Ah Ad]", lines[6])
	assert.Equal(t, []string{"alice: raises to 30", "bob: folds", "carol: calls 20"}, lines[8:11])
	assert.Contains(t, lines[11], "*** FLOP *** [")
	assert.Contains(t, lines[11], "(pot 65)")
	assert.Contains(t, lines, "carol: bets 50")
	assert.Equal(t, []string{"*** SUMMARY ***", "Total pot 115", "carol collected 115"}, lines[len(lines)-3:])
	assert.NotContains(t, lines, "*** SHOWDOWN ***")

	written, err := os.ReadFile(filepath.Join(dir, "h1.txt"))
	require.NoError(t, err)
	assert.Equal(t, rec.String(), string(written))
}

func TestRecorderShowdownAndInvalidActions(t *testing.T) {
	clock := quartz.NewMock(t)
	r := NewRecorder("", clock, log.NewWithOptions(io.Discard, log.Options{}))
	h := newHand(t, r, "h2", "Kh Kd Ah Ad 2c 7s 9h Jd 3c")

	seats := []game.Seat{{ID: 0, Name: "alice", Stack: 500}, {ID: 1, Name: "bob", Stack: 500}}
	require.NoError(t, h.Initialize(seats, game.Blinds{Small: 5, Big: 10}, 0))

	act(t, h, 0, game.Call, 0)
	res, err := h.SubmitAction(game.PlayerAction{PlayerID: 1, Type: game.Call})
	require.NoError(t, err)
	require.False(t, res.Accepted)
	act(t, h, 1, game.Check, 0)
	for h.CurrentState() != game.PostRiver {
		act(t, h, 1, game.Check, 0)
		act(t, h, 0, game.Check, 0)
	}

	result, err := h.Conclude()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, result.Winners)

	lines := r.Last().Lines
	assert.Contains(t, lines, "bob: invalid calls 0 (nothing to call)")
	assert.Contains(t, lines, "*** SHOWDOWN ***")
	assert.Contains(t, lines, "alice: shows [Ah Ad]")
	assert.NotContains(t, lines, "bob: shows [Kh Kd]", "a beaten hand with no extra chips mucks")
	assert.Equal(t, "alice collected 20", lines[len(lines)-1])
}

func TestRecordDuration(t *testing.T) {
	assert.Zero(t, Record{Started: start}.Duration())
	assert.Equal(t, time.Minute, Record{Started: start, Finished: start.Add(time.Minute)}.Duration())
	assert.Equal(t, "a\nb\n", Record{Lines: []string{"a", "b"}}.String())
}
