package rl

import (
	"bufio"
	"os"

	"organism_rl/internal/paramsfile"
)

// DimsSpec is one of DQN_req_specs / RND_req_specs.
type DimsSpec struct {
	InputDim  int
	OutputDim int
	HiddenDim int
	NumLayers int
	BatchSize int
}

// BoltzmannSpec is the BoltzmannPolicy_specs block (consumed by the
// external policy module, parsed here because it shares this file).
type BoltzmannSpec struct {
	InitialTemp    float64
	DecayRate      float64
	MinTemp        float64
	DecayInterval  int
}

// SystemConfig is the parsed rl_system.params file.
type SystemConfig struct {
	DQN             DimsSpec
	RND             DimsSpec
	Boltzmann       BoltzmannSpec
	BufferCapacity  int
}

// LoadSystemConfig parses rl_system.params at path.
func LoadSystemConfig(path string) (*SystemConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := paramsfile.Parse(path, bufio.NewScanner(f))
	if err != nil {
		return nil, err
	}

	cfg := &SystemConfig{}

	dqnBlock, err := parsed.Block(path, "DQN_req_specs")
	if err != nil {
		return nil, err
	}
	if cfg.DQN, err = parseDims(path, "DQN_req_specs", dqnBlock, "DQN"); err != nil {
		return nil, err
	}

	rndBlock, err := parsed.Block(path, "RND_req_specs")
	if err != nil {
		return nil, err
	}
	if cfg.RND, err = parseDims(path, "RND_req_specs", rndBlock, "RND"); err != nil {
		return nil, err
	}

	bBlock, err := parsed.Block(path, "BoltzmannPolicy_specs")
	if err != nil {
		return nil, err
	}
	if cfg.Boltzmann.InitialTemp, err = paramsfile.Float64(path, "BoltzmannPolicy_specs", bBlock, "initial_temp"); err != nil {
		return nil, err
	}
	if cfg.Boltzmann.DecayRate, err = paramsfile.Float64(path, "BoltzmannPolicy_specs", bBlock, "decay_rate"); err != nil {
		return nil, err
	}
	if cfg.Boltzmann.MinTemp, err = paramsfile.Float64(path, "BoltzmannPolicy_specs", bBlock, "min_temp"); err != nil {
		return nil, err
	}
	if cfg.Boltzmann.DecayInterval, err = paramsfile.Int(path, "BoltzmannPolicy_specs", bBlock, "decay_interval"); err != nil {
		return nil, err
	}

	cap, err := paramsfile.Int(path, "(standalone)", parsed.Standalone, "REPLAY_BUFFER_CAPACITY")
	if err != nil {
		return nil, err
	}
	cfg.BufferCapacity = cap

	return cfg, nil
}

func parseDims(path, blockName string, b map[string]string, prefix string) (DimsSpec, error) {
	var d DimsSpec
	var err error
	if d.InputDim, err = paramsfile.Int(path, blockName, b, prefix+"_INPUT_DIM"); err != nil {
		return d, err
	}
	if d.OutputDim, err = paramsfile.Int(path, blockName, b, prefix+"_OUTPUT_DIM"); err != nil {
		return d, err
	}
	if d.HiddenDim, err = paramsfile.Int(path, blockName, b, prefix+"_HIDDEN_DIM"); err != nil {
		return d, err
	}
	if d.NumLayers, err = paramsfile.Int(path, blockName, b, prefix+"_NUM_LAYERS"); err != nil {
		return d, err
	}
	if d.BatchSize, err = paramsfile.Int(path, blockName, b, prefix+"_BATCH_SIZE"); err != nil {
		return d, err
	}
	return d, nil
}
