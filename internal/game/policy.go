package game

// DefaultInvalidActionThreshold is the number of consecutive illegal attempts
// that forces a fold.
const DefaultInvalidActionThreshold = 3

// InvalidActionPolicy counts consecutive illegal attempts per player.
type InvalidActionPolicy struct {
	threshold int
	counts    map[int]int
}

// NewInvalidActionPolicy returns a policy that trips after threshold attempts.
// A non-positive threshold uses DefaultInvalidActionThreshold.
func NewInvalidActionPolicy(threshold int) *InvalidActionPolicy {
	if threshold <= 0 {
		threshold = DefaultInvalidActionThreshold
	}
	return &InvalidActionPolicy{threshold: threshold, counts: make(map[int]int)}
}

// RecordInvalid counts one illegal attempt and reports whether the threshold is reached.
func (p *InvalidActionPolicy) RecordInvalid(playerID int) bool {
	p.counts[playerID]++
	return p.counts[playerID] >= p.threshold
}

// Reset clears the player's counter.
func (p *InvalidActionPolicy) Reset(playerID int) {
	delete(p.counts, playerID)
}

// Count returns the player's current consecutive invalid attempts.
func (p *InvalidActionPolicy) Count(playerID int) int {
	return p.counts[playerID]
}

// Threshold returns the configured threshold.
func (p *InvalidActionPolicy) Threshold() int {
	return p.threshold
}
