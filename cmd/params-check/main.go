// Command params-check parses the two custom config files (rl_system.params
// and nn_system.params) and prints the resolved configuration, or the first
// parse error with its file and line number.
package main

import (
	"flag"
	"fmt"
	"log"

	"organism_rl/internal/nn"
	"organism_rl/internal/rl"
)

func main() {
	rlPath := flag.String("rl-params", "rl_system.params", "path to rl_system.params")
	nnPath := flag.String("nn-params", "nn_system.params", "path to nn_system.params")
	flag.Parse()

	rlCfg, err := rl.LoadSystemConfig(*rlPath)
	if err != nil {
		log.Fatalf("params-check: %v", err)
	}
	nnCfg, err := nn.LoadOptimizerConfig(*nnPath)
	if err != nil {
		log.Fatalf("params-check: %v", err)
	}

	fmt.Println("rl_system.params:")
	fmt.Printf("  DQN:       dims=%dx%d hidden=%d layers=%d batch=%d\n",
		rlCfg.DQN.InputDim, rlCfg.DQN.OutputDim, rlCfg.DQN.HiddenDim, rlCfg.DQN.NumLayers, rlCfg.DQN.BatchSize)
	fmt.Printf("  RND:       dims=%dx%d hidden=%d layers=%d batch=%d\n",
		rlCfg.RND.InputDim, rlCfg.RND.OutputDim, rlCfg.RND.HiddenDim, rlCfg.RND.NumLayers, rlCfg.RND.BatchSize)
	fmt.Printf("  Boltzmann: initial_temp=%v decay_rate=%v min_temp=%v decay_interval=%v\n",
		rlCfg.Boltzmann.InitialTemp, rlCfg.Boltzmann.DecayRate, rlCfg.Boltzmann.MinTemp, rlCfg.Boltzmann.DecayInterval)
	fmt.Printf("  replay_buffer_capacity=%d\n", rlCfg.BufferCapacity)

	fmt.Println("nn_system.params:")
	fmt.Printf("  DQN: lr_initial=%v lr_min=%v beta1=%v beta2=%v eps=%v max_training_steps=%d\n",
		nnCfg.DQN.LRInitial, nnCfg.DQN.LRMin, nnCfg.DQN.Beta1, nnCfg.DQN.Beta2, nnCfg.DQN.Eps, nnCfg.DQN.MaxTrainSteps)
	fmt.Printf("  RND: lr_initial=%v lr_min=%v beta1=%v beta2=%v eps=%v max_training_steps=%d\n",
		nnCfg.RND.LRInitial, nnCfg.RND.LRMin, nnCfg.RND.Beta1, nnCfg.RND.Beta2, nnCfg.RND.Eps, nnCfg.RND.MaxTrainSteps)
}
