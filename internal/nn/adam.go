package nn

import (
	"math"

	"organism_rl/internal/matrix"
)

// Adam is a per-network Adam optimizer: it owns the learning-rate
// scheduler and drives one layer at a time through Update. No
// back-reference from layer or scheduler to the optimizer.
type Adam struct {
	Scheduler *Scheduler
	Beta1     float64
	Beta2     float64
	Eps       float64

	step int
	lr   float64
}

// NewAdam builds an Adam optimizer over the given scheduler.
func NewAdam(scheduler *Scheduler, beta1, beta2, eps float64) *Adam {
	return &Adam{Scheduler: scheduler, Beta1: beta1, Beta2: beta2, Eps: eps}
}

// PreUpdateParams increments the step counter and refreshes the learning
// rate from the scheduler. Must be called once per training step, before
// any Update calls for that step.
func (a *Adam) PreUpdateParams() {
	a.step++
	a.lr = a.Scheduler.LR(a.step)
}

// Step returns the current 1-indexed optimizer step.
func (a *Adam) Step() int { return a.step }

// LR returns the optimizer's current effective learning rate.
func (a *Adam) LR() float64 { return a.lr }

// Update applies one Adam step to layer's weights and biases using its
// cached dW/dB, then probes all numeric state for NaN/Inf.
func (a *Adam) Update(l *Layer) {
	beta1Corr := 1 - math.Pow(a.Beta1, float64(a.step))
	beta2Corr := 1 - math.Pow(a.Beta2, float64(a.step))

	updateMoment := func(w, m, v, g *matrix.Dense) {
		for i := 0; i < w.Rows(); i++ {
			for j := 0; j < w.Cols(); j++ {
				gv := g.At(i, j)
				mv := a.Beta1*m.At(i, j) + (1-a.Beta1)*gv
				vv := a.Beta2*v.At(i, j) + (1-a.Beta2)*gv*gv
				m.Set(i, j, mv)
				v.Set(i, j, vv)
				mHat := mv / beta1Corr
				vHat := vv / beta2Corr
				w.Set(i, j, w.At(i, j)-a.lr*mHat/(math.Sqrt(vHat)+a.Eps))
			}
		}
	}

	updateMoment(l.W, l.mW, l.vW, l.dW)
	updateMoment(l.B, l.mB, l.vB, l.dB)

	l.assertFinite()
}
