package rl

import "math"

// BetaSchedule computes the exploration weight beta(n) = beta_floor +
// (beta_initial - beta_floor) * exp(-decay_lambda * min(1, n/decay_horizon)).
// All four parameters are configurable fields. Only this exponential form
// is computed; there is no linear schedule.
type BetaSchedule struct {
	Initial      float64
	Floor        float64
	DecayLambda  float64
	DecayHorizon float64
}

// DefaultBetaSchedule returns the default schedule parameters.
func DefaultBetaSchedule() BetaSchedule {
	return BetaSchedule{Initial: 5.0, Floor: 0.01, DecayLambda: 0.1, DecayHorizon: 1e12}
}

// Beta returns beta(n) for running-stats sample count n.
func (b BetaSchedule) Beta(n int) float64 {
	ratio := float64(n) / b.DecayHorizon
	if ratio > 1 {
		ratio = 1
	}
	return b.Floor + (b.Initial-b.Floor)*math.Exp(-b.DecayLambda*ratio)
}
