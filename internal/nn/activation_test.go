package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"organism_rl/internal/matrix"
)

func TestLeakyReLUForward(t *testing.T) {
	a := NewLeakyReLU(0.01)
	x := matrix.NewFromSlice(1, 4, []float64{-2, -1, 0, 3})
	y := a.Forward(x)
	assert.Equal(t, []float64{-0.02, -0.01, 0, 3}, y.Data())
}

func TestLeakyReLUBackward(t *testing.T) {
	a := NewLeakyReLU(0.01)
	x := matrix.NewFromSlice(1, 4, []float64{-2, -1, 0, 3})
	a.Forward(x)

	dY := matrix.NewFromSlice(1, 4, []float64{10, 10, 10, 10})
	dX := a.Backward(dY)
	assert.Equal(t, []float64{0.1, 0.1, 0.1, 10}, dX.Data())
}

func TestLeakyReLUNegativeSlopeLaw(t *testing.T) {
	a := NewLeakyReLU(0.01)
	x := matrix.NewFromSlice(1, 1, []float64{-5})
	y := a.Forward(x)
	assert.Equal(t, -0.01*5, y.At(0, 0))
}
