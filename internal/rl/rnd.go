package rl

import (
	"log"
	"math"

	"organism_rl/internal/nn"
)

// IntrinsicReward computes the RND novelty z-score for one RND-encoded
// input vector x: predictor and target both predict on a batch of 1, the
// relative RMSE between them is z-scored against stats (peeked, then
// stats is updated with the new sample).
func IntrinsicReward(x []float64, predictor, target *nn.Network, stats *RunningStats) float64 {
	pred := predictor.Predict(x, 1)
	targ := target.Predict(x, 1)

	if len(pred) != len(targ) {
		log.Fatalf("rl: predictor/target output length mismatch: %d vs %d", len(pred), len(targ))
	}

	var sumSq, sumAbsTarg float64
	for i := range pred {
		d := pred[i] - targ[i]
		sumSq += d * d
		sumAbsTarg += math.Abs(targ[i])
	}
	n := float64(len(pred))
	mse := sumSq / n
	rmse := math.Sqrt(mse)
	meanAbsTarg := sumAbsTarg / n
	relRMSE := rmse / (1 + meanAbsTarg)

	z := stats.PeekZ(relRMSE)
	stats.Update(relRMSE)
	return z
}
