package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRandomizer returns the upper bound on every draw, which leaves the deck in natural order.
type scriptedRandomizer struct {
	calls [][2]int
}

func (s *scriptedRandomizer) GetRandom(min, max, count int) []int {
	s.calls = append(s.calls, [2]int{min, max})
	out := make([]int, count)
	for i := range out {
		out[i] = max
	}
	return out
}

// zeroRandomizer always swaps with index 0.
type zeroRandomizer struct{}

func (zeroRandomizer) GetRandom(min, _, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = min
	}
	return out
}

func TestShuffleWalksFromLastIndexDown(t *testing.T) {
	t.Parallel()

	rng := &scriptedRandomizer{}
	d := NewDeck(rng)
	d.ShuffleAndReset()

	require.Len(t, rng.calls, DeckSize-1)
	for k, call := range rng.calls {
		assert.Equal(t, [2]int{0, DeckSize - 1 - k}, call)
	}

	cards, err := d.Deal(DeckSize)
	require.NoError(t, err)
	for i, c := range cards {
		assert.Equal(t, i, c.Index(), "identity swaps keep natural order")
	}
}

func TestShuffleIsAPermutation(t *testing.T) {
	t.Parallel()

	d := NewDeck(zeroRandomizer{})
	d.ShuffleAndReset()

	cards, err := d.Deal(DeckSize)
	require.NoError(t, err)

	seen := make(map[Card]bool, DeckSize)
	for _, c := range cards {
		require.True(t, c.IsValid())
		require.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, DeckSize)
	assert.NotEqual(t, 0, cards[0].Index(), "zero swaps move the first card")
}

func TestDealTracksRemaining(t *testing.T) {
	t.Parallel()

	d := NewDeck(zeroRandomizer{})
	d.ShuffleAndReset()

	hole, err := d.Deal(2)
	require.NoError(t, err)
	assert.Len(t, hole, 2)
	assert.Equal(t, DeckSize-2, d.Remaining())

	_, err = d.Deal(DeckSize)
	require.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, DeckSize-2, d.Remaining(), "failed deal must not move the cursor")

	rest, err := d.Deal(d.Remaining())
	require.NoError(t, err)
	assert.Len(t, rest, DeckSize-2)
	assert.Equal(t, 0, d.Remaining())

	_, err = d.Deal(1)
	require.ErrorIs(t, err, ErrInsufficientCards)

	d.ShuffleAndReset()
	assert.Equal(t, DeckSize, d.Remaining())
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()

	top := MustParseCards("AsAhKsKh")
	d, err := NewStackedDeck(top...)
	require.NoError(t, err)

	got, err := d.Deal(4)
	require.NoError(t, err)
	assert.Equal(t, top, got)
	assert.Equal(t, top, d.Dealt())

	rest, err := d.Deal(d.Remaining())
	require.NoError(t, err)
	for _, c := range rest {
		assert.NotContains(t, top, c)
	}

	_, err = NewStackedDeck(MustParseCards("AsAs")...)
	assert.Error(t, err)
}
