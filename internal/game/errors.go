package game

import "errors"

var (
	// ErrHandNotInitialized is returned when a hand is driven before Initialize.
	ErrHandNotInitialized = errors.New("hand not initialized")
	// ErrHandConcluded is returned for any action on a hand that has been concluded.
	ErrHandConcluded = errors.New("hand already concluded")
	// ErrHandInProgress is returned when Initialize or Conclude is called mid-hand.
	ErrHandInProgress = errors.New("hand in progress")
	// ErrInvalidSeats is returned for an unusable seating or blind structure.
	ErrInvalidSeats = errors.New("invalid seats")
	// ErrIterationLimit is returned when the state machine fails to settle.
	ErrIterationLimit = errors.New("state machine iteration limit reached")
	// ErrChipConservation is returned when chips were created or destroyed.
	ErrChipConservation = errors.New("chip conservation violated")
)
