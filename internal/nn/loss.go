package nn

import (
	"math"

	"organism_rl/internal/matrix"
)

// MSELoss returns mean((pred-target)^2) and its gradient 2*(pred-target)/n.
func MSELoss(pred, target *matrix.Dense) (float64, *matrix.Dense) {
	diff, err := matrix.Sub(pred, target)
	if err != nil {
		panic(err)
	}
	n := float64(pred.Rows() * pred.Cols())
	loss := matrix.Sum(matrix.Square(diff)) / n
	grad := matrix.Scale(diff, 2.0/n)
	return loss, grad
}

// HuberDelta is the Huber-loss transition point used throughout training.
const HuberDelta = 1.0

// HuberLoss returns the mean Huber loss (delta=1.0) between pred and
// target, and its gradient: d where |d| <= delta, delta*sign(d) otherwise.
// Unlike MSELoss, the gradient is not divided by n (matching the source's
// derivative_huber_loss, which returns the raw elementwise term while
// derivative_mse_loss divides by n_elem).
func HuberLoss(pred, target *matrix.Dense, delta float64) (float64, *matrix.Dense) {
	diff, err := matrix.Sub(pred, target)
	if err != nil {
		panic(err)
	}
	rows, cols := diff.Rows(), diff.Cols()
	grad := matrix.New(rows, cols)
	var total float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d := diff.At(i, j)
			ad := math.Abs(d)
			if ad <= delta {
				total += 0.5 * d * d
				grad.Set(i, j, d)
			} else {
				total += delta * (ad - 0.5*delta)
				sign := 1.0
				if d < 0 {
					sign = -1.0
				}
				grad.Set(i, j, delta*sign)
			}
		}
	}
	n := float64(rows * cols)
	return total / n, grad
}
