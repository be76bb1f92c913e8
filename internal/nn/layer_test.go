package nn

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organism_rl/internal/matrix"
)

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(42, 0)) }

func TestLayerForwardMatchingShapeOutputDims(t *testing.T) {
	// Forward on a mismatched shape calls log.Fatalf, which a test cannot
	// safely trigger in-process; this checks the matching-shape path only:
	// the output dimensions are correct and nothing panics.
	l := NewLayer(3, 4, 0, 0, 0, 0, testRNG())
	x := matrix.New(2, 3)
	y := l.Forward(x)
	assert.Equal(t, 2, y.Rows())
	assert.Equal(t, 4, y.Cols())
}

func TestLayerForwardBiasInit(t *testing.T) {
	l := NewLayer(2, 3, 0, 0, 0, 0, testRNG())
	for j := 0; j < 3; j++ {
		assert.Equal(t, 0.1, l.B.At(0, j))
	}
}

func TestLayerBackwardShapesAndClip(t *testing.T) {
	l := NewLayer(3, 2, 0, 0, 0, 0, testRNG())
	x := matrix.NewFromSlice(4, 3, []float64{
		1, 2, 3,
		-1, 0, 1,
		0.5, 0.5, 0.5,
		2, -2, 2,
	})
	l.Forward(x)

	dY := matrix.NewFromSlice(4, 2, []float64{
		100, -100,
		50, 50,
		-10, 10,
		0, 0,
	})
	dX := l.Backward(dY)

	require.Equal(t, 3, l.dW.Rows())
	require.Equal(t, 2, l.dW.Cols())
	require.Equal(t, 1, l.dB.Rows())
	require.Equal(t, 2, l.dB.Cols())
	require.Equal(t, 4, dX.Rows())
	require.Equal(t, 3, dX.Cols())

	for i := 0; i < l.dW.Rows(); i++ {
		for j := 0; j < l.dW.Cols(); j++ {
			v := l.dW.At(i, j)
			assert.True(t, v >= -1 && v <= 1, "dW not clamped: %v", v)
		}
	}
	for j := 0; j < l.dB.Cols(); j++ {
		v := l.dB.At(0, j)
		assert.True(t, v >= -1 && v <= 1, "dB not clamped: %v", v)
	}
}

func TestLayerRegularizationLoss(t *testing.T) {
	l := NewLayer(2, 2, 0, 0, 0, 0, testRNG())
	assert.Equal(t, 0.0, l.RegularizationLoss())

	l2 := NewLayer(2, 2, 0.1, 0.2, 0.1, 0.2, testRNG())
	loss := l2.RegularizationLoss()
	assert.Greater(t, loss, 0.0)
}

func TestLayerRandomizeWeightsInUnitInterval(t *testing.T) {
	l := NewLayer(3, 3, 0, 0, 0, 0, testRNG())
	l.RandomizeWeights(testRNG())
	for i := 0; i < l.W.Rows(); i++ {
		for j := 0; j < l.W.Cols(); j++ {
			v := l.W.At(i, j)
			assert.True(t, v >= 0 && v < 1)
		}
	}
	for j := 0; j < l.B.Cols(); j++ {
		v := l.B.At(0, j)
		assert.True(t, v >= 0 && v < 1)
	}
}

func TestLayerCloneIsIndependent(t *testing.T) {
	l := NewLayer(2, 2, 0, 0, 0, 0, testRNG())
	clone := l.Clone()
	clone.W.Set(0, 0, 999)
	assert.NotEqual(t, l.W.At(0, 0), clone.W.At(0, 0))
}

func TestLayerGradientCheck(t *testing.T) {
	l := NewLayer(3, 1, 0, 0, 0, 0, testRNG())
	x := matrix.NewFromSlice(1, 3, []float64{0.5, -0.3, 0.8})
	eps := 1e-5

	out := l.Forward(x)
	// A target 0.5 below the output gives dY = 1 and dW = x, inside the
	// [-1, 1] gradient clip, so Backward's dW is the unclipped gradient.
	target := out.At(0, 0) - 0.5
	diff := out.At(0, 0) - target
	dY := matrix.NewFromSlice(1, 1, []float64{2 * diff})
	l.Backward(dY)

	for i := 0; i < l.W.Rows(); i++ {
		for j := 0; j < l.W.Cols(); j++ {
			orig := l.W.At(i, j)

			l.W.Set(i, j, orig+eps)
			outPlus := l.Forward(x).At(0, 0)
			lossPlus := (outPlus - target) * (outPlus - target)

			l.W.Set(i, j, orig-eps)
			outMinus := l.Forward(x).At(0, 0)
			lossMinus := (outMinus - target) * (outMinus - target)

			l.W.Set(i, j, orig)

			numerical := (lossPlus - lossMinus) / (2 * eps)
			analytical := l.dW.At(i, j)
			denom := math.Max(math.Abs(numerical)+math.Abs(analytical), 1e-8)
			relErr := math.Abs(numerical-analytical) / denom

			assert.Less(t, relErr, 1e-4, "gradient check failed at W[%d][%d]", i, j)
		}
	}
}
