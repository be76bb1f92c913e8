package nn

import "organism_rl/internal/matrix"

// LeakyReLU is the leaky-rectified activation, Y = X where X > 0 else
// alpha*X. Stateless apart from the cached forward input needed by
// Backward.
type LeakyReLU struct {
	Alpha float64
	input *matrix.Dense
}

// NewLeakyReLU returns a leaky-rectified activation with the given slope.
func NewLeakyReLU(alpha float64) *LeakyReLU {
	return &LeakyReLU{Alpha: alpha}
}

// Forward applies the activation element-wise, caching X for Backward.
func (a *LeakyReLU) Forward(x *matrix.Dense) *matrix.Dense {
	a.input = x
	out := matrix.New(x.Rows(), x.Cols())
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			v := x.At(i, j)
			if v <= 0 {
				v *= a.Alpha
			}
			out.Set(i, j, v)
		}
	}
	return out
}

// Backward passes dY through unchanged where the cached forward input was
// positive, and scales it by alpha elsewhere.
func (a *LeakyReLU) Backward(dY *matrix.Dense) *matrix.Dense {
	out := matrix.New(dY.Rows(), dY.Cols())
	for i := 0; i < dY.Rows(); i++ {
		for j := 0; j < dY.Cols(); j++ {
			g := dY.At(i, j)
			if a.input.At(i, j) <= 0 {
				g *= a.Alpha
			}
			out.Set(i, j, g)
		}
	}
	return out
}
