package deck

import (
	"errors"
	"fmt"
)

// ErrInvalidBoard is returned when community cards are added out of sequence.
var ErrInvalidBoard = errors.New("invalid board transition")

// HoleCards are the two private cards of one player.
type HoleCards [2]Card

// IsValid reports whether both cards are set.
func (h HoleCards) IsValid() bool {
	return h[0].IsValid() && h[1].IsValid() && h[0] != h[1]
}

// Cards returns the hole cards as a slice.
func (h HoleCards) Cards() []Card {
	return []Card{h[0], h[1]}
}

func (h HoleCards) String() string {
	return h[0].String() + " " + h[1].String()
}

// BoardCards accumulates community cards. The only legal sizes are 0, 3, 4 and 5.
type BoardCards struct {
	cards [5]Card
	n     int
}

// Add appends the next tranche: three cards on an empty board, then one at a time.
func (b *BoardCards) Add(cards ...Card) error {
	want := 1
	switch b.n {
	case 0:
		want = 3
	case 5:
		return fmt.Errorf("%w: board already complete", ErrInvalidBoard)
	}
	if len(cards) != want {
		return fmt.Errorf("%w: expected %d cards with %d on board, got %d", ErrInvalidBoard, want, b.n, len(cards))
	}
	for _, c := range cards {
		if !c.IsValid() {
			return fmt.Errorf("%w: unset card", ErrInvalidBoard)
		}
		if b.Contains(c) {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidBoard, c)
		}
	}
	copy(b.cards[b.n:], cards)
	b.n += len(cards)
	return nil
}

// Contains reports whether c is already on the board.
func (b BoardCards) Contains(c Card) bool {
	for _, bc := range b.cards[:b.n] {
		if bc == c {
			return true
		}
	}
	return false
}

// Len returns the number of community cards dealt.
func (b BoardCards) Len() int {
	return b.n
}

// Cards returns a copy of the dealt community cards.
func (b BoardCards) Cards() []Card {
	out := make([]Card, b.n)
	copy(out, b.cards[:b.n])
	return out
}

func (b BoardCards) String() string {
	return FormatCards(b.cards[:b.n])
}
