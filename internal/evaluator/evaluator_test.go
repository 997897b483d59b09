package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
)

func rank(t *testing.T, s string) int {
	t.Helper()
	r, err := New().Rank(deck.MustParseCards(s))
	require.NoError(t, err)
	return r
}

func TestRankOrdering(t *testing.T) {
	hands := []string{
		"2c 3d 4h 5s 7c 9d Jh", // high card
		"Ah Ad 4h 5s 7c 9d Jh", // pair
		"Ah Ad 4h 4s 7c 9d Jh", // two pair
		"Ah Ad As 5s 7c 9d Jh", // trips
		"Ah 2d 3h 4s 5c 9d Jh", // wheel
		"Ah 2h 7h 4h 9h 9d Jc", // flush
		"Ah Ad As 9s 9c 2d Jh", // full house
		"Ah Ad As Ac 7c 9d Jh", // quads
		"Th Jh Qh Kh Ah 9d 2c", // royal flush
	}
	prev := 0
	for _, h := range hands {
		r := rank(t, h)
		assert.Greater(t, r, prev, h)
		prev = r
	}
	assert.Equal(t, MaxRank, prev)
}

func TestCategory(t *testing.T) {
	e := New()
	tests := []struct {
		cards string
		want  Category
	}{
		{"2c 3d 4h 5s 7c", HighCard},
		{"Ah Ad 4h 5s 7c", Pair},
		{"Ah Ad 4h 4s 7c", TwoPair},
		{"Ah Ad As 5s 7c", ThreeOfAKind},
		{"6h 2d 3h 4s 5c", Straight},
		{"Ah 2h 7h 4h 9h", Flush},
		{"Ah Ad As 9s 9c", FullHouse},
		{"Ah Ad As Ac 7c", FourOfAKind},
		{"9h Th Jh Qh Kh", StraightFlush},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, e.Category(rank(t, tt.cards)))
		})
	}
}

func TestDescribe(t *testing.T) {
	desc, err := New().Describe(deck.MustParseCards("Ah Ad As 9s 9c 2d 3h"))
	require.NoError(t, err)
	assert.Equal(t, "Full House", desc)
}

func TestSixAndSevenCardsUseBestFive(t *testing.T) {
	five := rank(t, "Ah Ad As 9s 9c")
	assert.Equal(t, five, rank(t, "Ah Ad As 9s 9c 2d"))
	assert.Equal(t, five, rank(t, "Ah Ad As 9s 9c 2d 3h"))
}

func TestCompare(t *testing.T) {
	e := New()
	board := "Kc Kd 7h 2s 3c"

	cmp, err := e.Compare(deck.MustParseCards("Ah Qh "+board), deck.MustParseCards("Jh Th "+board))
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = e.Compare(deck.MustParseCards("Ah 4h "+board), deck.MustParseCards("As 4s "+board))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestRankInvalid(t *testing.T) {
	e := New()
	tests := map[string][]deck.Card{
		"too few":   deck.MustParseCards("Ah Kh Qh Jh"),
		"too many":  deck.MustParseCards("Ah Kh Qh Jh Th 9h 8h 7h"),
		"duplicate": deck.MustParseCards("Ah Ah Qh Jh Th"),
		"unset":     {deck.NoCard, deck.NoCard, deck.NoCard, deck.NoCard, deck.NoCard},
	}
	for name, cards := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := e.Rank(cards)
			assert.ErrorIs(t, err, ErrInvalidHand)
		})
	}
}

func TestEstimateEquity(t *testing.T) {
	e := New()
	aces := deck.HoleCards(deck.MustParseCards("Ah As"))
	trash := deck.HoleCards(deck.MustParseCards("7c 2d"))

	strong, err := e.EstimateEquity(context.Background(), aces, nil, 1, 2000, 1)
	require.NoError(t, err)
	weak, err := e.EstimateEquity(context.Background(), trash, nil, 1, 2000, 1)
	require.NoError(t, err)

	assert.InDelta(t, 0.85, strong, 0.05)
	assert.Less(t, weak, 0.4)
}

func TestEstimateEquityMadeNuts(t *testing.T) {
	hole := deck.HoleCards(deck.MustParseCards("Ah Kh"))
	board := deck.MustParseCards("Qh Jh Th 2c 3d")

	eq, err := New().EstimateEquity(context.Background(), hole, board, 3, 500, 7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, eq)
}

func TestEstimateEquityDeterministic(t *testing.T) {
	e := New()
	hole := deck.HoleCards(deck.MustParseCards("9s 9d"))
	a, err := e.EstimateEquity(context.Background(), hole, nil, 2, 1000, 42)
	require.NoError(t, err)
	b, err := e.EstimateEquity(context.Background(), hole, nil, 2, 1000, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateEquityCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().EstimateEquity(ctx, deck.HoleCards(deck.MustParseCards("Ah As")), nil, 1, 1000, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
