package deck

import (
	"errors"
	"fmt"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// ErrInsufficientCards is returned when more cards are requested than remain.
var ErrInsufficientCards = errors.New("insufficient cards")

// Randomizer supplies count integers drawn uniformly from [min, max].
type Randomizer interface {
	GetRandom(min, max, count int) []int
}

// Deck is a permutation of the 52 cards with a cursor to the next card to deal.
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   Randomizer
}

// NewDeck returns an unshuffled deck bound to rng.
func NewDeck(rng Randomizer) *Deck {
	d := &Deck{rng: rng}
	d.reset()
	return d
}

// NewStackedDeck returns a deck whose first cards are top, in order, followed by
// the remaining cards in natural order. It is meant for reproducing hands.
func NewStackedDeck(top ...Card) (*Deck, error) {
	d := &Deck{}
	var seen [DeckSize]bool
	i := 0
	for _, c := range top {
		if !c.IsValid() {
			return nil, fmt.Errorf("stacked deck: invalid card %v", c)
		}
		if seen[c.Index()] {
			return nil, fmt.Errorf("stacked deck: duplicate card %s", c)
		}
		seen[c.Index()] = true
		d.cards[i] = c
		i++
	}
	for idx := 0; idx < DeckSize; idx++ {
		if seen[idx] {
			continue
		}
		d.cards[i], _ = CardFromIndex(idx)
		i++
	}
	return d, nil
}

func (d *Deck) reset() {
	for i := range d.cards {
		d.cards[i], _ = CardFromIndex(i)
	}
	d.next = 0
}

// ShuffleAndReset rebuilds the full deck and permutes it with Fisher-Yates,
// walking from the last index down to 1 and swapping with a random index in [0, i].
func (d *Deck) ShuffleAndReset() {
	if d.rng == nil {
		panic("deck: shuffle requires a randomizer")
	}
	d.reset()
	for i := DeckSize - 1; i > 0; i-- {
		j := d.rng.GetRandom(0, i, 1)[0]
		if j < 0 || j > i {
			panic(fmt.Sprintf("deck: randomizer returned %d outside [0, %d]", j, i))
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal returns the next n cards and advances the cursor.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("deal: negative count %d", n)
	}
	if n > d.Remaining() {
		return nil, fmt.Errorf("%w: requested %d, %d remaining", ErrInsufficientCards, n, d.Remaining())
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return DeckSize - d.next
}

// Dealt returns a copy of the cards dealt so far, in dealing order.
func (d *Deck) Dealt() []Card {
	out := make([]Card, d.next)
	copy(out, d.cards[:d.next])
	return out
}
