package rl

import "math"

// RunningStats is an EMA mean/variance tracker used both to z-score the
// RND novelty signal and to drive the beta schedule's sample count.
type RunningStats struct {
	Alpha float64
	N     int
	Mean  float64
	M2    float64 // EMA variance accumulator
}

// NewRunningStats returns a tracker with the default alpha=0.1.
func NewRunningStats() *RunningStats {
	return &RunningStats{Alpha: 0.1}
}

// PeekZ returns the z-score of x against the current mean/variance
// without updating them. Returns 0 before any samples have been seen.
func (s *RunningStats) PeekZ(x float64) float64 {
	if s.N == 0 {
		return 0
	}
	std := math.Sqrt(s.M2)
	if std == 0 {
		return 0
	}
	return (x - s.Mean) / std
}

// Update refreshes the EMA mean/variance with one new sample x. The
// variance term uses two deltas, one against the pre-update mean and one
// against the post-update mean, not a single delta against the old mean:
// that is what gives the new sample an effective weight of (1-Alpha)^2
// rather than Alpha.
func (s *RunningStats) Update(x float64) {
	s.N++
	if s.N == 1 {
		s.Mean = x
		s.M2 = 0
		return
	}
	delta1 := x - s.Mean
	s.Mean += s.Alpha * delta1
	delta2 := x - s.Mean
	s.M2 = (1 - s.Alpha) * (s.M2 + delta1*delta2)
}
