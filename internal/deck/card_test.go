package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "space separated",
			input: "Ah Kd 2c",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AsKx", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Card{{Rank: Ace, Suit: Spades}}, MustParseCards("As"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardStringAndIndex(t *testing.T) {
	t.Parallel()

	c := NewCard(Ace, Hearts)
	assert.Equal(t, "Ah", c.String())
	assert.Equal(t, "--", NoCard.String())
	assert.False(t, NoCard.IsValid())
	assert.Equal(t, -1, NoCard.Index())

	seen := make(map[int]bool)
	for i := 0; i < DeckSize; i++ {
		card, err := CardFromIndex(i)
		require.NoError(t, err)
		require.True(t, card.IsValid())
		assert.Equal(t, i, card.Index())
		seen[card.Index()] = true
	}
	assert.Len(t, seen, DeckSize)

	_, err := CardFromIndex(DeckSize)
	assert.Error(t, err)
}

func TestCardCompareUsesRankOnly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, NewCard(King, Spades).Compare(NewCard(King, Hearts)))
	assert.Equal(t, -1, NewCard(Two, Spades).Compare(NewCard(Three, Clubs)))
	assert.Equal(t, 1, NewCard(Ace, Diamonds).Compare(NewCard(King, Diamonds)))
}

func TestHoleCards(t *testing.T) {
	t.Parallel()

	var h HoleCards
	assert.False(t, h.IsValid())

	h = HoleCards{NewCard(Ace, Spades), NewCard(King, Spades)}
	assert.True(t, h.IsValid())
	assert.Equal(t, "As Ks", h.String())
	assert.Equal(t, "AKs", StartingHandClass(h))
	assert.InDelta(t, 0.982, StartingHandPercentile(h), 1e-9)

	pair := HoleCards{NewCard(Nine, Hearts), NewCard(Nine, Clubs)}
	assert.Equal(t, "99", StartingHandClass(pair))

	worst := HoleCards{NewCard(Two, Hearts), NewCard(Seven, Clubs)}
	assert.Equal(t, "72o", StartingHandClass(worst))
	assert.Zero(t, StartingHandPercentile(worst))
}

func TestBoardCardsCardinality(t *testing.T) {
	t.Parallel()

	var b BoardCards
	require.Equal(t, 0, b.Len())

	err := b.Add(MustParseCards("Ah")...)
	require.ErrorIs(t, err, ErrInvalidBoard)

	require.NoError(t, b.Add(MustParseCards("AhKhQh")...))
	assert.Equal(t, 3, b.Len())

	err = b.Add(MustParseCards("2c3c")...)
	require.ErrorIs(t, err, ErrInvalidBoard)

	err = b.Add(MustParseCards("Kh")...)
	require.ErrorIs(t, err, ErrInvalidBoard, "duplicate card")

	require.NoError(t, b.Add(MustParseCards("Jh")...))
	require.NoError(t, b.Add(MustParseCards("Th")...))
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, "Ah Kh Qh Jh Th", b.String())

	err = b.Add(MustParseCards("2c")...)
	require.ErrorIs(t, err, ErrInvalidBoard)
	assert.Equal(t, 5, b.Len())
}
