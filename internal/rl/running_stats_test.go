package rl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningStatsConstantInputConvergesToZeroZ(t *testing.T) {
	s := NewRunningStats()
	for i := 0; i < 200; i++ {
		s.Update(3.0)
	}
	assert.InDelta(t, 0.0, s.PeekZ(3.0), 1e-9)
}

func TestRunningStatsPeekBeforeAnySampleIsZero(t *testing.T) {
	s := NewRunningStats()
	assert.Equal(t, 0.0, s.PeekZ(5.0))
}

// The variance accumulator uses two deltas (one against the pre-update
// mean, one against the post-update mean), not a single delta against the
// old mean — the two formulas diverge sharply once samples actually move.
func TestRunningStatsVarianceUsesTwoDeltaForm(t *testing.T) {
	s := NewRunningStats()
	s.Update(1)
	s.Update(5)
	assert.InDelta(t, 1.4, s.Mean, 1e-9)
	assert.InDelta(t, 12.96, s.M2, 1e-9) // (1-0.1)*(0 + 4*3.6), not 0.1*4^2=1.6
}

func TestRunningStatsIdenticalPredictorTargetScenario(t *testing.T) {
	s := NewRunningStats()
	for i := 0; i < 100; i++ {
		z := s.PeekZ(0)
		s.Update(0)
		_ = z
	}
	assert.Equal(t, 100, s.N)
	assert.InDelta(t, 0.0, s.Mean, 1e-9)
	assert.InDelta(t, 0.0, s.PeekZ(0), 1e-9)
}
