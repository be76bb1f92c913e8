package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatMul(t *testing.T) {
	a := NewFromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFromSlice(3, 2, []float64{7, 8, 9, 10, 11, 12})

	out, err := MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rows())
	assert.Equal(t, 2, out.Cols())
	assert.Equal(t, 58.0, out.At(0, 0))
	assert.Equal(t, 64.0, out.At(0, 1))
	assert.Equal(t, 139.0, out.At(1, 0))
	assert.Equal(t, 154.0, out.At(1, 1))
}

func TestMatMulDimensionMismatch(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3)
	_, err := MatMul(a, b)
	assert.Error(t, err)
}

func TestTranspose(t *testing.T) {
	a := NewFromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
	at := Transpose(a)
	require.Equal(t, 3, at.Rows())
	require.Equal(t, 2, at.Cols())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.At(i, j), at.At(j, i))
		}
	}
}

func TestAddRowBroadcast(t *testing.T) {
	a := NewFromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
	bias := NewFromSlice(1, 3, []float64{10, 20, 30})

	out, err := AddRowBroadcast(a, bias)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, out.Data())
}

func TestAddRowBroadcastShapeMismatch(t *testing.T) {
	a := New(2, 3)
	bad := New(2, 3)
	_, err := AddRowBroadcast(a, bad)
	assert.Error(t, err)
}

func TestColSums(t *testing.T) {
	a := NewFromSlice(3, 2, []float64{1, 2, 3, 4, 5, 6})
	sums := ColSums(a)
	assert.Equal(t, 1, sums.Rows())
	assert.Equal(t, 2, sums.Cols())
	assert.Equal(t, 9.0, sums.At(0, 0))
	assert.Equal(t, 12.0, sums.At(0, 1))
}

func TestElementWiseOps(t *testing.T) {
	a := NewFromSlice(1, 4, []float64{-2, -1, 0, 3})

	assert.Equal(t, []float64{4, 1, 0, 9}, Square(a).Data())
	assert.Equal(t, []float64{2, 1, 0, 3}, Abs(a).Data())
	assert.Equal(t, []float64{-1, -1, 0, 1}, Sign(a).Data())
	assert.Equal(t, []float64{-1, -1, 0, 1}, Clamp(a, -1, 1).Data())
}

func TestClampInPlace(t *testing.T) {
	a := NewFromSlice(1, 3, []float64{-5, 0, 5})
	ClampInPlace(a, -1, 1)
	assert.Equal(t, []float64{-1, 0, 1}, a.Data())
}

func TestHasNaNOrInf(t *testing.T) {
	finite := NewFromSlice(1, 2, []float64{1, 2})
	assert.False(t, HasNaNOrInf(finite))

	withNaN := NewFromSlice(1, 2, []float64{1, math.NaN()})
	assert.True(t, HasNaNOrInf(withNaN))

	withInf := NewFromSlice(1, 2, []float64{1, math.Inf(1)})
	assert.True(t, HasNaNOrInf(withInf))
}

func TestAddSubHadamardShapeMismatch(t *testing.T) {
	a := New(2, 2)
	b := New(3, 3)
	_, err := Add(a, b)
	assert.Error(t, err)
	_, err = Sub(a, b)
	assert.Error(t, err)
	_, err = Hadamard(a, b)
	assert.Error(t, err)
}

func TestScaleAndSum(t *testing.T) {
	a := NewFromSlice(1, 3, []float64{1, 2, 3})
	scaled := Scale(a, 2)
	assert.Equal(t, []float64{2, 4, 6}, scaled.Data())
	assert.Equal(t, 6.0, Sum(a))
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewFromSlice(1, 2, []float64{1, 2})
	b := a.Clone()
	b.Set(0, 0, 99)
	assert.Equal(t, 1.0, a.At(0, 0))
	assert.Equal(t, 99.0, b.At(0, 0))
}
