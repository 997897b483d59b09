package game

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// maxRandomizer always picks the top of the range, which leaves a
// Fisher-Yates shuffle in natural order.
type maxRandomizer struct{}

func (maxRandomizer) GetRandom(min, max, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = max
	}
	return out
}

// holeRanker ranks a hand by its first card, which is the player's first hole
// card. Unlisted cards rank 1.
type holeRanker map[deck.Card]int

func (r holeRanker) Rank(cards []deck.Card) (int, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("need 5 to 7 cards, got %d", len(cards))
	}
	if rank, ok := r[cards[0]]; ok {
		return rank, nil
	}
	return 1, nil
}

func card(s string) deck.Card {
	c, err := deck.ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

type failingStore struct{ calls int }

func (s *failingStore) Save(HandSnapshot) error {
	s.calls++
	return fmt.Errorf("disk full")
}

// eventLog captures every notification.
type eventLog struct {
	initialized   int
	pots          []int
	holeCards     map[int]deck.HoleCards
	rounds        []GameState
	boards        [][]deck.Card
	acted         []PlayerAction
	invalid       []string
	showdown      []int
	showdownCalls int
	winners       []int
	amounts       map[int]int
	concluded     int
	errors        []string
}

func (l *eventLog) events() Events {
	l.holeCards = make(map[int]deck.HoleCards)
	return Events{
		OnHandInitialized:     func(HandSnapshot) { l.initialized++ },
		OnPotUpdated:          func(n int) { l.pots = append(l.pots, n) },
		OnHoleCardsDealt:      func(id int, c deck.HoleCards) { l.holeCards[id] = c },
		OnBettingRoundStarted: func(s GameState) { l.rounds = append(l.rounds, s) },
		OnBoardDealt:          func(_ GameState, b []deck.Card) { l.boards = append(l.boards, b) },
		OnPlayerActed:         func(a PlayerAction) { l.acted = append(l.acted, a) },
		OnInvalidPlayerAction: func(_ int, _ PlayerAction, reason string) { l.invalid = append(l.invalid, reason) },
		OnShowdownStarted: func(order []int) {
			l.showdownCalls++
			l.showdown = order
		},
		OnHandConcluded: func(w []int, a map[int]int) {
			l.concluded++
			l.winners, l.amounts = w, a
		},
		OnEngineError: func(msg string) { l.errors = append(l.errors, msg) },
	}
}

type handFixture struct {
	hand *Hand
	log  *eventLog
}

// newFixture starts a hand with players 0..n-1 holding stacks, blinds 5/10.
// deckCards stacks the top of the deck; hole cards go two at a time to each
// player starting left of the dealer, then five board cards.
func newFixture(t *testing.T, ranks holeRanker, dealer int, deckCards string, stacks []int, opts ...HandOption) *handFixture {
	t.Helper()

	l := &eventLog{}
	caps := Capabilities{Randomizer: maxRandomizer{}, Evaluator: ranks, Logger: testLogger()}
	all := []HandOption{WithEvents(l.events()), WithHandID("test-hand")}
	if deckCards != "" {
		d, err := deck.NewStackedDeck(deck.MustParseCards(deckCards)...)
		require.NoError(t, err)
		all = append(all, WithDeck(d))
	}
	h := NewHand(caps, append(all, opts...)...)
	require.NoError(t, h.Initialize(seats(stacks...), Blinds{Small: 5, Big: 10}, dealer))
	return &handFixture{hand: h, log: l}
}

func seats(stacks ...int) []Seat {
	out := make([]Seat, len(stacks))
	for i, s := range stacks {
		out[i] = Seat{ID: i, Name: fmt.Sprintf("p%d", i), Stack: s}
	}
	return out
}

func (f *handFixture) submit(t *testing.T, id int, typ ActionType, amount int) ActionResult {
	t.Helper()
	res, err := f.hand.SubmitAction(PlayerAction{PlayerID: id, Type: typ, Amount: amount})
	require.NoError(t, err)
	return res
}

func (f *handFixture) accept(t *testing.T, id int, typ ActionType, amount int) ActionResult {
	t.Helper()
	res := f.submit(t, id, typ, amount)
	require.True(t, res.Accepted, "player %d %s %d rejected: %s", id, typ, amount, res.Reason)
	return res
}

func (f *handFixture) player(t *testing.T, id int) PlayerSnapshot {
	t.Helper()
	p, ok := f.hand.Snapshot().Player(id)
	require.True(t, ok)
	return p
}
