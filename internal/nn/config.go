package nn

import (
	"bufio"
	"os"

	"organism_rl/internal/paramsfile"
)

// OptimizerParams is one role's block from nn_system.params.
type OptimizerParams struct {
	LRInitial     float64
	Beta1         float64
	Beta2         float64
	Eps           float64
	MaxTrainSteps int
	LRMin         float64
}

// OptimizerConfig is the parsed nn_system.params file: one block per role.
type OptimizerConfig struct {
	DQN OptimizerParams
	RND OptimizerParams
}

// LoadOptimizerConfig parses nn_system.params at path.
func LoadOptimizerConfig(path string) (*OptimizerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := paramsfile.Parse(path, bufio.NewScanner(f))
	if err != nil {
		return nil, err
	}

	dqn, err := parseOptimizerBlock(path, parsed, "DQN_specs")
	if err != nil {
		return nil, err
	}
	rnd, err := parseOptimizerBlock(path, parsed, "RND_specs")
	if err != nil {
		return nil, err
	}
	return &OptimizerConfig{DQN: dqn, RND: rnd}, nil
}

func parseOptimizerBlock(path string, f *paramsfile.File, blockName string) (OptimizerParams, error) {
	var p OptimizerParams
	b, err := f.Block(path, blockName)
	if err != nil {
		return p, err
	}
	if p.LRInitial, err = paramsfile.Float64(path, blockName, b, "LR_INITIAL"); err != nil {
		return p, err
	}
	if p.Beta1, err = paramsfile.Float64(path, blockName, b, "BETA1"); err != nil {
		return p, err
	}
	if p.Beta2, err = paramsfile.Float64(path, blockName, b, "BETA2"); err != nil {
		return p, err
	}
	if p.Eps, err = paramsfile.Float64(path, blockName, b, "EPS"); err != nil {
		return p, err
	}
	if p.MaxTrainSteps, err = paramsfile.Int(path, blockName, b, "max_training_steps"); err != nil {
		return p, err
	}
	if p.LRMin, err = paramsfile.Float64(path, blockName, b, "min_learning_rate"); err != nil {
		return p, err
	}
	return p, nil
}
