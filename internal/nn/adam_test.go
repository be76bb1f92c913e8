package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"organism_rl/internal/matrix"
)

func TestAdamStepAndLRAdvance(t *testing.T) {
	a := NewAdam(&Scheduler{LRInitial: 0.01, LRMin: 0.0001, MaxSteps: 1000}, 0.9, 0.999, 1e-8)
	assert.Equal(t, 0, a.Step())
	a.PreUpdateParams()
	assert.Equal(t, 1, a.Step())
	assert.Greater(t, a.LR(), 0.0)
}

func TestAdamUpdateReducesLoss(t *testing.T) {
	l := NewLayer(2, 1, 0, 0, 0, 0, testRNG())
	a := NewAdam(&Scheduler{LRInitial: 0.1, LRMin: 0.0001, MaxSteps: 1000}, 0.9, 0.999, 1e-8)

	x := matrix.NewFromSlice(1, 2, []float64{1, 1})
	target := matrix.NewFromSlice(1, 1, []float64{0})

	out := l.Forward(x)
	diff := out.At(0, 0) - target.At(0, 0)
	lossBefore := diff * diff

	dY := matrix.NewFromSlice(1, 1, []float64{2 * diff})
	l.Backward(dY)
	a.PreUpdateParams()
	a.Update(l)

	out2 := l.Forward(x)
	diff2 := out2.At(0, 0) - target.At(0, 0)
	lossAfter := diff2 * diff2

	assert.Less(t, lossAfter, lossBefore)
}

func TestAdamUpdateKeepsStateFinite(t *testing.T) {
	l := NewLayer(2, 2, 0, 0, 0, 0, testRNG())
	a := NewAdam(&Scheduler{LRInitial: 0.01, LRMin: 0.0001, MaxSteps: 1000}, 0.9, 0.999, 1e-8)

	x := matrix.NewFromSlice(3, 2, []float64{1, 2, -1, 0, 0.5, 0.5})
	out := l.Forward(x)
	l.Backward(out)
	a.PreUpdateParams()
	a.Update(l)

	assert.False(t, matrix.HasNaNOrInf(l.W))
	assert.False(t, matrix.HasNaNOrInf(l.B))
	assert.False(t, matrix.HasNaNOrInf(l.mW))
	assert.False(t, matrix.HasNaNOrInf(l.vW))
}
