package game

// Calculator derives table metrics for bot contexts.
type Calculator struct {
	logger Logger
}

// NewCalculator returns a Calculator that reports anomalies to logger.
func NewCalculator(logger Logger) *Calculator {
	return &Calculator{logger: logger}
}

// PotOdds returns the chips still owed as a percentage of the pot,
// |min(stack, highest) - contribution| * 100 / pot. A zero pot is an anomaly:
// it is logged and 0 is returned.
func (c *Calculator) PotOdds(stack, contribution, pot, highest int) int {
	if pot == 0 {
		c.logger.Error("pot odds on an empty pot", "stack", stack, "contribution", contribution, "highest", highest)
		return 0
	}
	odds := (min(stack, highest) - contribution) * 100 / pot
	if odds < 0 {
		odds = -odds
	}
	return odds
}

// MRatio is the number of orbits the stack survives: stack / (small + big blind).
func (c *Calculator) MRatio(stack int, blinds Blinds) float64 {
	orbit := blinds.Small + blinds.Big
	if orbit <= 0 || stack <= 0 {
		return 0
	}
	return float64(stack) / float64(orbit)
}
