package nn

import (
	"log"
	"math"
	"math/rand/v2"

	"organism_rl/internal/matrix"
)

// Layer is a fully-connected layer: weight matrix W [in, out], bias row
// vector b [1, out], their Adam moments, and the regularization
// coefficients applied to both during backward.
type Layer struct {
	W *matrix.Dense
	B *matrix.Dense

	mW, vW *matrix.Dense
	mB, vB *matrix.Dense

	L1W, L2W, L1B, L2B float64

	input *matrix.Dense // cached forward X, [batch, in]
	dW    *matrix.Dense
	dB    *matrix.Dense
}

// NewLayer builds a layer with He-initialized weights and biases at 0.1,
// and zero-filled Adam moments of matching shape.
func NewLayer(in, out int, l1w, l2w, l1b, l2b float64, rng *rand.Rand) *Layer {
	w := matrix.New(in, out)
	stddev := math.Sqrt(2.0 / float64(in))
	for i := 0; i < in; i++ {
		for j := 0; j < out; j++ {
			w.Set(i, j, rng.NormFloat64()*stddev)
		}
	}
	b := matrix.New(1, out)
	for j := 0; j < out; j++ {
		b.Set(0, j, 0.1)
	}
	return &Layer{
		W:   w,
		B:   b,
		mW:  matrix.New(in, out),
		vW:  matrix.New(in, out),
		mB:  matrix.New(1, out),
		vB:  matrix.New(1, out),
		L1W: l1w, L2W: l2w, L1B: l1b, L2B: l2b,
	}
}

// Forward computes Y = X*W + b (row broadcast), caching X for Backward.
// Fatal if X's column count doesn't match W's row count.
func (l *Layer) Forward(x *matrix.Dense) *matrix.Dense {
	if x.Cols() != l.W.Rows() {
		log.Fatalf("nn: layer forward dimension mismatch: input cols=%d, W rows=%d", x.Cols(), l.W.Rows())
	}
	l.input = x
	prod, err := matrix.MatMul(x, l.W)
	if err != nil {
		log.Fatalf("nn: layer forward: %v", err)
	}
	y, err := matrix.AddRowBroadcast(prod, l.B)
	if err != nil {
		log.Fatalf("nn: layer forward bias broadcast: %v", err)
	}
	return y
}

// Backward computes dW = X^T*dY (shape [in, out], already matching W, so
// the optimizer needs no transpose), dB, and dX = dY*W^T. Regularization terms
// are added to dW/dB, then both are clamped to [-1, 1].
func (l *Layer) Backward(dY *matrix.Dense) *matrix.Dense {
	xT := matrix.Transpose(l.input)
	dW, err := matrix.MatMul(xT, dY)
	if err != nil {
		log.Fatalf("nn: layer backward dW: %v", err)
	}
	dB := matrix.ColSums(dY)

	if l.L1W > 0 {
		dW, _ = matrix.Add(dW, matrix.Scale(matrix.Sign(l.W), l.L1W))
	}
	if l.L2W > 0 {
		dW, _ = matrix.Add(dW, matrix.Scale(l.W, 2*l.L2W))
	}
	if l.L1B > 0 {
		dB, _ = matrix.Add(dB, matrix.Scale(matrix.Sign(l.B), l.L1B))
	}
	if l.L2B > 0 {
		dB, _ = matrix.Add(dB, matrix.Scale(l.B, 2*l.L2B))
	}

	matrix.ClampInPlace(dW, -1, 1)
	matrix.ClampInPlace(dB, -1, 1)
	l.dW, l.dB = dW, dB

	wT := matrix.Transpose(l.W)
	dX, err := matrix.MatMul(dY, wT)
	if err != nil {
		log.Fatalf("nn: layer backward dX: %v", err)
	}
	return dX
}

// RegularizationLoss returns L1_w*sum|W| + L2_w*sum(W^2) + L1_b*sum|b| + L2_b*sum(b^2).
func (l *Layer) RegularizationLoss() float64 {
	var loss float64
	if l.L1W > 0 {
		loss += l.L1W * matrix.Sum(matrix.Abs(l.W))
	}
	if l.L2W > 0 {
		loss += l.L2W * matrix.Sum(matrix.Square(l.W))
	}
	if l.L1B > 0 {
		loss += l.L1B * matrix.Sum(matrix.Abs(l.B))
	}
	if l.L2B > 0 {
		loss += l.L2B * matrix.Sum(matrix.Square(l.B))
	}
	return loss
}

// RandomizeWeights re-draws every W and b uniformly in [0, 1).
func (l *Layer) RandomizeWeights(rng *rand.Rand) {
	for i := 0; i < l.W.Rows(); i++ {
		for j := 0; j < l.W.Cols(); j++ {
			l.W.Set(i, j, rng.Float64())
		}
	}
	for j := 0; j < l.B.Cols(); j++ {
		l.B.Set(0, j, rng.Float64())
	}
}

// assertFinite fails loudly if any of the layer's numeric state has gone
// non-finite, per the fail-loud error policy.
func (l *Layer) assertFinite() {
	for _, m := range []*matrix.Dense{l.W, l.B, l.mW, l.vW, l.mB, l.vB} {
		if matrix.HasNaNOrInf(m) {
			log.Fatalf("nn: non-finite layer state: %s", m.Dump())
		}
	}
}

// Clone returns a deep copy of the layer, including Adam moments.
func (l *Layer) Clone() *Layer {
	return &Layer{
		W: l.W.Clone(), B: l.B.Clone(),
		mW: l.mW.Clone(), vW: l.vW.Clone(),
		mB: l.mB.Clone(), vB: l.vB.Clone(),
		L1W: l.L1W, L2W: l.L2W, L1B: l.L1B, L2B: l.L2B,
	}
}
