package deck

import (
	"cmp"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Diamonds Suit = iota
	Hearts
	Spades
	Clubs
)

const suitChars = "dhsc"

// String returns the single-letter form of the suit ("d", "h", "s", "c")
func (s Suit) String() string {
	if s < Diamonds || s > Clubs {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the single-character form of the rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Card is an immutable playing card. The zero value is NoCard.
type Card struct {
	Rank Rank
	Suit Suit
}

// NoCard marks an unset card slot.
var NoCard = Card{}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsValid reports whether the card is one of the 52 real cards.
func (c Card) IsValid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit >= Diamonds && c.Suit <= Clubs
}

// Index maps the card to [0,52). NoCard returns -1.
func (c Card) Index() int {
	if !c.IsValid() {
		return -1
	}
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// CardFromIndex is the inverse of Index.
func CardFromIndex(i int) (Card, error) {
	if i < 0 || i >= DeckSize {
		return NoCard, fmt.Errorf("card index %d out of range", i)
	}
	return Card{Rank: Rank(i%13) + Two, Suit: Suit(i / 13)}, nil
}

// String returns the canonical form of the card, e.g. "Ah". NoCard renders as "--".
func (c Card) String() string {
	if !c.IsValid() {
		return "--"
	}
	return c.Rank.String() + c.Suit.String()
}

// Compare orders cards by rank only.
func (c Card) Compare(other Card) int {
	return cmp.Compare(c.Rank, other.Rank)
}

// ParseCard parses a two-character card such as "Ah" or "td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return NoCard, fmt.Errorf("invalid card %q", s)
	}
	r := strings.IndexByte(rankChars, strings.ToUpper(s[:1])[0])
	if r < 0 {
		return NoCard, fmt.Errorf("invalid rank in card %q", s)
	}
	su := strings.IndexByte(suitChars, strings.ToLower(s[1:])[0])
	if su < 0 {
		return NoCard, fmt.Errorf("invalid suit in card %q", s)
	}
	return Card{Rank: Rank(r) + Two, Suit: Suit(su)}, nil
}

// ParseCards parses a run of cards, with or without separating spaces ("AsKs", "As Ks").
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string %q: odd length", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed inputs; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
