package statistics

import (
	"math"
	"slices"
)

// Summary accumulates per-hand results, in big blinds, for one strategy.
type Summary struct {
	Hands  int
	Sum    float64
	SumSq  float64
	Values []float64

	Wins            int
	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64
}

// Add incorporates one hand.
func (s *Summary) Add(netBB float64, showdown bool) {
	s.Hands++
	s.Sum += netBB
	s.SumSq += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		s.Wins++
		if showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if showdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
}

// Mean is the average result per hand.
func (s *Summary) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Summary) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Summary) StdDev() float64 {
	return math.Sqrt(max(0, s.Variance()))
}

// StdError returns the standard error of the mean.
func (s *Summary) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median result.
func (s *Summary) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the linearly interpolated value at p in [0, 1].
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced reports whether showdown and non-showdown results add up to
// the total.
func (s *Summary) IsLedgerBalanced() bool {
	return math.Abs(s.Sum-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Merge adds o into s.
func (s *Summary) Merge(o *Summary) {
	s.Hands += o.Hands
	s.Sum += o.Sum
	s.SumSq += o.SumSq
	s.Values = append(s.Values, o.Values...)
	s.Wins += o.Wins
	s.ShowdownWins += o.ShowdownWins
	s.NonShowdownWins += o.NonShowdownWins
	s.ShowdownBB += o.ShowdownBB
	s.NonShowdownBB += o.NonShowdownBB
}
