package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"organism_rl/internal/matrix"
)

func TestMSELoss(t *testing.T) {
	pred := matrix.NewFromSlice(1, 2, []float64{1, 2})
	target := matrix.NewFromSlice(1, 2, []float64{0, 0})
	loss, grad := MSELoss(pred, target)
	assert.Equal(t, 2.5, loss) // mean(1,4) = 2.5
	assert.Equal(t, []float64{1, 2}, grad.Data())
}

func TestHuberLossWithinDelta(t *testing.T) {
	pred := matrix.NewFromSlice(1, 1, []float64{0.5})
	target := matrix.NewFromSlice(1, 1, []float64{0})
	loss, grad := HuberLoss(pred, target, 1.0)
	assert.InDelta(t, 0.125, loss, 1e-9) // 0.5*0.5^2
	assert.InDelta(t, 0.5, grad.At(0, 0), 1e-9)
}

func TestHuberLossBeyondDelta(t *testing.T) {
	pred := matrix.NewFromSlice(1, 1, []float64{3})
	target := matrix.NewFromSlice(1, 1, []float64{0})
	loss, grad := HuberLoss(pred, target, 1.0)
	assert.InDelta(t, 1.0*(3-0.5), loss, 1e-9)
	assert.InDelta(t, 1.0, grad.At(0, 0), 1e-9)
}

func TestHuberDerivativeContinuousAtBoundary(t *testing.T) {
	delta := 1.0
	below := matrix.NewFromSlice(1, 1, []float64{delta - 1e-9})
	above := matrix.NewFromSlice(1, 1, []float64{delta + 1e-9})
	zero := matrix.NewFromSlice(1, 1, []float64{0})

	_, gradBelow := HuberLoss(below, zero, delta)
	_, gradAbove := HuberLoss(above, zero, delta)

	assert.InDelta(t, gradBelow.At(0, 0), gradAbove.At(0, 0), 1e-6)
}

func TestHuberDerivativeSignMatchesDiff(t *testing.T) {
	pred := matrix.NewFromSlice(1, 1, []float64{-3})
	target := matrix.NewFromSlice(1, 1, []float64{0})
	_, grad := HuberLoss(pred, target, 1.0)
	assert.Equal(t, -1.0, grad.At(0, 0))
	assert.False(t, math.IsNaN(grad.At(0, 0)))
}

// Unlike MSELoss, HuberLoss's gradient must not shrink as the batch/output
// width grows: every element's derivative is reported independently of n.
func TestHuberGradientNotScaledByBatchWidth(t *testing.T) {
	pred := matrix.NewFromSlice(2, 2, []float64{0.5, 3, -0.5, -3})
	target := matrix.NewFromSlice(2, 2, []float64{0, 0, 0, 0})
	_, grad := HuberLoss(pred, target, 1.0)
	assert.Equal(t, []float64{0.5, 1.0, -0.5, -1.0}, grad.Data())
}
