package nn

import "math"

// cosineAnnealCycle is the period, in steps, of the cosine-annealed
// portion of the learning-rate schedule.
const cosineAnnealCycle = 200000

// Scheduler computes the learning rate for a given step: linear warmup
// over the first max(1, maxSteps/100) steps, then a 200000-step cosine
// anneal down to lrMin.
type Scheduler struct {
	LRInitial float64
	LRMin     float64
	MaxSteps  int
}

// LR returns the learning rate for the given 1-indexed step.
func (s *Scheduler) LR(step int) float64 {
	warmup := s.MaxSteps / 100
	if warmup < 1 {
		warmup = 1
	}
	if step < warmup {
		return s.LRMin + (s.LRInitial-s.LRMin)*float64(step)/float64(warmup)
	}
	t := (step - warmup) % cosineAnnealCycle
	return s.LRMin + (s.LRInitial-s.LRMin)*0.5*(1+math.Cos(math.Pi*float64(t)/float64(cosineAnnealCycle)))
}
