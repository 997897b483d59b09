package game

import "github.com/lox/holdem-engine/internal/deck"

// DefaultMaxIterations bounds the number of state transitions one call may run.
const DefaultMaxIterations = 16

// MaxSeats is the largest table a hand accepts.
const MaxSeats = 10

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	events           Events
	deck             *deck.Deck
	handID           string
	invalidThreshold int
	maxIterations    int
}

// WithEvents installs observer callbacks. Use Combine to attach several.
func WithEvents(events Events) HandOption {
	return func(c *handConfig) {
		c.events = events
	}
}

// WithDeck uses a pre-arranged deck for the next Initialize instead of
// shuffling. Hole cards are dealt two per player in seat order starting left
// of the dealer, then five board cards.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = d
	}
}

// WithHandID fixes the identifier of the next hand instead of generating one.
func WithHandID(id string) HandOption {
	return func(c *handConfig) {
		c.handID = id
	}
}

// WithInvalidActionThreshold overrides the consecutive illegal attempts allowed
// before a forced fold.
func WithInvalidActionThreshold(n int) HandOption {
	return func(c *handConfig) {
		c.invalidThreshold = n
	}
}

// WithMaxIterations overrides the transition guard.
func WithMaxIterations(n int) HandOption {
	return func(c *handConfig) {
		c.maxIterations = n
	}
}
