// Package nn implements the dense feed-forward network primitive: layer,
// leaky-rectified activation, Huber/MSE loss, the warmup+cosine learning
// rate schedule, the Adam optimizer, and their composition into a
// role-tagged Network with binary persistence.
//
// Predict and Train accept and return batches in the column-major
// convention the original source's double* API boundary used: an
// [dim, batch] matrix stored column-by-column. Because that memory layout
// is byte-identical to a row-major [batch, dim] matrix (dim contiguous
// values per batch column == dim contiguous values per batch row), the
// conversion at the boundary is a type change, not a data rearrangement.
package nn

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"organism_rl/internal/matrix"
)

// Role identifies which of the four registry slots a network fills.
type Role int

const (
	RoleDqnOnline Role = iota
	RoleDqnTarget
	RoleRndPredictor
	RoleRndTarget
)

func (r Role) String() string {
	switch r {
	case RoleDqnOnline:
		return "dqn-online"
	case RoleDqnTarget:
		return "dqn-target"
	case RoleRndPredictor:
		return "rnd-predictor"
	case RoleRndTarget:
		return "rnd-target"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// logs to their own file. Every other role trains silently.
func (r Role) logs() bool { return r == RoleDqnOnline || r == RoleRndPredictor }

// Config holds everything needed to build or load a Network.
type Config struct {
	InputDim  int
	OutputDim int
	HiddenDim int
	NumLayers int
	BatchSize int
	Role      Role

	LRInitial      float64
	LRMin          float64
	Beta1          float64
	Beta2          float64
	Eps            float64
	MaxTrainSteps  int

	L1W, L2W, L1B, L2B float64

	// LogDir, if non-empty, is where the role's loss log is written
	// (only consulted for roles that log).
	LogDir string
}

// Network is an ordered list of (layer, activation) pairs for i=0..L-2,
// plus a final bare layer, per a single role.
type Network struct {
	Config Config

	Layers      []*Layer
	Activations []*LeakyReLU
	Optimizer   *Adam

	lossLog *os.File
}

// New builds a network with He-initialized layers per cfg. Layer sizes
// are (input, hidden, hidden, ..., hidden, output) with cfg.NumLayers
// layers total (cfg.NumLayers-1 activations, no final activation).
func New(cfg Config, rng *rand.Rand) *Network {
	if cfg.NumLayers < 3 {
		log.Fatalf("nn: NumLayers must be >= 3, got %d", cfg.NumLayers)
	}
	sizes := make([]int, cfg.NumLayers+1)
	sizes[0] = cfg.InputDim
	for i := 1; i < cfg.NumLayers; i++ {
		sizes[i] = cfg.HiddenDim
	}
	sizes[cfg.NumLayers] = cfg.OutputDim

	n := &Network{Config: cfg}
	for i := 0; i < cfg.NumLayers; i++ {
		n.Layers = append(n.Layers, NewLayer(sizes[i], sizes[i+1], cfg.L1W, cfg.L2W, cfg.L1B, cfg.L2B, rng))
		if i < cfg.NumLayers-1 {
			n.Activations = append(n.Activations, NewLeakyReLU(0.01))
		}
	}
	n.Optimizer = NewAdam(&Scheduler{LRInitial: cfg.LRInitial, LRMin: cfg.LRMin, MaxSteps: cfg.MaxTrainSteps}, cfg.Beta1, cfg.Beta2, cfg.Eps)

	if cfg.Role.logs() && cfg.LogDir != "" {
		n.openLossLog()
	}
	return n
}

func (n *Network) openLossLog() {
	if err := os.MkdirAll(n.Config.LogDir, 0o755); err != nil {
		log.Fatalf("nn: creating log dir %s: %v", n.Config.LogDir, err)
	}
	path := n.lossLogPath()
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("nn: truncating loss log %s: %v", path, err)
	}
	n.lossLog = f
}

func (n *Network) lossLogPath() string {
	name := "online_system.log"
	if n.Config.Role == RoleRndPredictor {
		name = "rnd_predictor_system.log"
	}
	return n.Config.LogDir + "/" + name
}

// flatToBatch interprets flat as a column-major [dim, batch] matrix, which
// is byte-identical to a row-major [batch, dim] matrix (see package doc).
func flatToBatch(flat []float64, dim, batch int) *matrix.Dense {
	if len(flat) != dim*batch {
		log.Fatalf("nn: flat input length %d does not match dim*batch=%d*%d", len(flat), dim, batch)
	}
	return matrix.NewFromSlice(batch, dim, flat)
}

// forward runs x ([batch, in]) through every layer/activation pair and
// returns the final layer's raw output (no trailing activation).
func (n *Network) forward(x *matrix.Dense) *matrix.Dense {
	cur := x
	for i, l := range n.Layers {
		cur = l.Forward(cur)
		if i < len(n.Activations) {
			cur = n.Activations[i].Forward(cur)
		}
	}
	return cur
}

// Predict interprets inputFlat as [InputDim, batch] column-major, forwards
// it through the network, and returns the output flattened the same way.
// Fatal on shape mismatch or non-finite output.
func (n *Network) Predict(inputFlat []float64, batch int) []float64 {
	x := flatToBatch(inputFlat, n.Config.InputDim, batch)
	y := n.forward(x)
	if matrix.HasNaNOrInf(y) {
		log.Fatalf("nn: %s predict produced non-finite output: %s", n.Config.Role, y.Dump())
	}
	return y.Data()
}

// Train forwards inputFlat, computes Huber loss against targetFlat (both
// [dim, batch] column-major), backpropagates, and applies one Adam step
// to every layer in order. Returns the reported (Huber + regularization)
// loss.
func (n *Network) Train(inputFlat, targetFlat []float64, batch int) float64 {
	x := flatToBatch(inputFlat, n.Config.InputDim, batch)
	target := flatToBatch(targetFlat, n.Config.OutputDim, batch)

	pred := n.forward(x)
	huber, grad := HuberLoss(pred, target, HuberDelta)

	regLoss := 0.0
	for _, l := range n.Layers {
		regLoss += l.RegularizationLoss()
	}
	totalLoss := huber + regLoss

	if n.Config.Role.logs() && n.lossLog != nil {
		fmt.Fprintf(n.lossLog, "%g\n", totalLoss)
		n.lossLog.Sync()
	}

	dY := grad
	for i := len(n.Layers) - 1; i >= 0; i-- {
		dY = n.Layers[i].Backward(dY)
		if i > 0 {
			dY = n.Activations[i-1].Backward(dY)
		}
	}

	n.Optimizer.PreUpdateParams()
	for _, l := range n.Layers {
		n.Optimizer.Update(l)
	}

	return totalLoss
}

// RandomizeWeights re-draws every layer's W and b uniformly in [0, 1).
func (n *Network) RandomizeWeights(rng *rand.Rand) {
	for _, l := range n.Layers {
		l.RandomizeWeights(rng)
	}
}

// Clone deep-copies the network's layers (weights, biases, and Adam
// moments) for a hard-update snapshot. The clone keeps its own Config
// and Optimizer state is copied by value (step/lr), not shared.
func (n *Network) Clone() *Network {
	clone := &Network{Config: n.Config}
	for _, l := range n.Layers {
		clone.Layers = append(clone.Layers, l.Clone())
	}
	for range n.Activations {
		clone.Activations = append(clone.Activations, NewLeakyReLU(0.01))
	}
	optCopy := *n.Optimizer
	clone.Optimizer = &optCopy
	return clone
}

// HardUpdateFrom overwrites n's layer weights/biases with src's (the DQN
// online->target sync). n's own Adam moments are left untouched: a target
// network is never trained, so they are never read.
func (n *Network) HardUpdateFrom(src *Network) {
	if len(n.Layers) != len(src.Layers) {
		log.Fatalf("nn: hard update layer count mismatch: %d vs %d", len(n.Layers), len(src.Layers))
	}
	for i, l := range src.Layers {
		n.Layers[i].W = l.W.Clone()
		n.Layers[i].B = l.B.Clone()
	}
}

// Close releases the loss log file handle, if one was opened.
func (n *Network) Close() error {
	if n.lossLog != nil {
		return n.lossLog.Close()
	}
	return nil
}
