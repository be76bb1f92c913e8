package rl

import (
	"math"

	"organism_rl/internal/nn"
)

// RewardEngine computes the shaped reward: an extrinsic component from
// observable game events, plus an RND-derived intrinsic component when
// enabled. The reward constants are overridable fields rather than
// compile-time constants, defaulted by NewRewardEngine.
type RewardEngine struct {
	WallPenalty  float64
	FoodReward   float64
	EatingBonus  float64
	EnergyWeight float64
	ClampLo      float64
	ClampHi      float64

	Beta  BetaSchedule
	Stats *RunningStats
}

// NewRewardEngine returns an engine with the default reward constants and
// a fresh running-stats tracker.
func NewRewardEngine() *RewardEngine {
	return &RewardEngine{
		WallPenalty:  -15.0,
		FoodReward:   10.0,
		EatingBonus:  10.0,
		EnergyWeight: 0.1,
		ClampLo:      -20.0,
		ClampHi:      20.0,
		Beta:         DefaultBetaSchedule(),
		Stats:        NewRunningStats(),
	}
}

// Extrinsic computes the extrinsic-only component of the reward, clamped
// to [ClampLo, ClampHi].
func (e *RewardEngine) Extrinsic(s State, hitWall bool) float64 {
	r := 0.0
	if hitWall {
		r += e.WallPenalty
	}
	r += e.FoodReward * float64(s.FoodCountInVision)
	if s.IsEating {
		r += e.EatingBonus
	}
	r -= e.EnergyWeight * (1 - s.EnergyLvl)
	return clamp(r, e.ClampLo, e.ClampHi)
}

// Compute returns the total reward for state s: the extrinsic component,
// plus beta*max(0, z) when rndEnabled, where z is the RND novelty
// z-score of s's RND encoding against predictor/target. No clamp is
// applied to the intrinsic term or the total when RND is enabled.
func (e *RewardEngine) Compute(s State, hitWall bool, rndEnabled bool, sector int, foodRates [9]float64, predictor, target *nn.Network) float64 {
	extrinsic := e.Extrinsic(s, hitWall)
	if !rndEnabled {
		return extrinsic
	}
	z := IntrinsicReward(EncodeRND(s, sector, foodRates), predictor, target, e.Stats)
	intrinsicTerm := e.Beta.Beta(e.Stats.N) * math.Max(0, z)
	return extrinsic + intrinsicTerm
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
