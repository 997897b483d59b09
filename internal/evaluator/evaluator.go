// Package evaluator ranks Hold'em hands. Ranks are 1..7462 with higher being
// better, the inverse of the Cactus Kev ordering used underneath.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/chehsunliu/poker"

	"github.com/lox/holdem-engine/internal/deck"
)

// MaxRank is the rank of a royal flush.
const MaxRank = 7462

// ErrInvalidHand is returned for card sets that cannot be ranked.
var ErrInvalidHand = errors.New("invalid hand")

// Category is the class of a made hand, weakest first.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	if c < HighCard || c > StraightFlush {
		return "Unknown"
	}
	return [...]string{
		"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
		"Flush", "Full House", "Four of a Kind", "Straight Flush",
	}[c]
}

// Evaluator ranks 5 to 7 cards. The zero value is ready to use and it is safe
// for concurrent use.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Rank returns the strength of the best five card hand in cards.
func (e *Evaluator) Rank(cards []deck.Card) (int, error) {
	pc, err := convert(cards)
	if err != nil {
		return 0, err
	}
	return MaxRank + 1 - int(poker.Evaluate(pc)), nil
}

// Category returns the hand class of a rank returned by Rank.
func (e *Evaluator) Category(rank int) Category {
	if rank < 1 || rank > MaxRank {
		return HighCard
	}
	// RankClass counts 1 for straight flush down to 9 for high card.
	return Category(9 - poker.RankClass(int32(MaxRank+1-rank)))
}

// Describe names the best hand in cards, such as "Full House".
func (e *Evaluator) Describe(cards []deck.Card) (string, error) {
	rank, err := e.Rank(cards)
	if err != nil {
		return "", err
	}
	return e.Category(rank).String(), nil
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a tie.
func (e *Evaluator) Compare(a, b []deck.Card) (int, error) {
	ra, err := e.Rank(a)
	if err != nil {
		return 0, err
	}
	rb, err := e.Rank(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ra > rb:
		return 1, nil
	case ra < rb:
		return -1, nil
	}
	return 0, nil
}

func convert(cards []deck.Card) ([]poker.Card, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return nil, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidHand, len(cards))
	}
	var seen [deck.DeckSize]bool
	out := make([]poker.Card, len(cards))
	for i, c := range cards {
		if !c.IsValid() {
			return nil, fmt.Errorf("%w: unset card at %d", ErrInvalidHand, i)
		}
		if seen[c.Index()] {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen[c.Index()] = true
		out[i] = poker.NewCard(c.String())
	}
	return out, nil
}
