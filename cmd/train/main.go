// Command train drives the DQN/RND trainer against a synthetic environment:
// no game engine is wired in, but every tick produces a plausible State,
// action, and reward so the full optimization loop (replay sampling, DQN
// bootstrap, RND intrinsic reward, target sync, telemetry) runs end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"

	"organism_rl/internal/nn"
	"organism_rl/internal/rl"
	"organism_rl/internal/telemetry"
	"organism_rl/internal/trainer"
)

func main() {
	modelDir := flag.String("model-dir", "models", "directory to load/save DQN+RND networks")
	ticks := flag.Int("ticks", 10000, "number of environment ticks to run")
	addr := flag.String("addr", "", "optional telemetry listen address, e.g. :8090 (empty disables telemetry)")
	rndEnabled := flag.Bool("rnd", true, "enable RND intrinsic reward and predictor training")
	seed := flag.Uint64("seed", 1, "PRNG seed for the synthetic environment and network init")
	rlParams := flag.String("rl-params", "", "optional rl_system.params path; falls back to built-in defaults")
	nnParams := flag.String("nn-params", "", "optional nn_system.params path; falls back to built-in defaults")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))

	params, err := buildParams(*modelDir, *rndEnabled, *rlParams, *nnParams)
	if err != nil {
		log.Fatalf("train: %v", err)
	}

	t, err := trainer.New(params, rng)
	if err != nil {
		log.Fatalf("train: constructing trainer: %v", err)
	}
	defer t.Close()

	var hub *telemetry.Hub
	if *addr != "" {
		hub = telemetry.NewHub()
		t.SetBridge(telemetry.NewBridge(hub))

		mux := http.NewServeMux()
		mux.Handle("/ws", telemetry.NewHandler(hub))
		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		go func() {
			log.Printf("train: telemetry listening on %s", *addr)
			if err := http.ListenAndServe(*addr, mux); err != nil {
				log.Printf("train: telemetry server stopped: %v", err)
			}
		}()
	}

	env := newSyntheticEnv(rng)
	for i := 0; i < *ticks; i++ {
		prev := env.state
		action := rl.Action(rng.IntN(4))
		next, hitWall := env.step(action)

		reward := t.RewardEngine().Compute(next, hitWall, *rndEnabled, env.sector, env.foodRates,
			t.Registry().RndPredictor, t.Registry().RndTarget)

		t.Observe(prev, next, action, reward, false, env.sector, env.foodRates)

		if i%1000 == 0 {
			if hub != nil {
				sent, dropped := hub.Stats()
				log.Printf("train: tick=%d transitions=%d telemetry_clients=%d telemetry_sent=%d telemetry_dropped=%d",
					i, i+1, hub.ClientCount(), sent, dropped)
			} else {
				log.Printf("train: tick=%d transitions=%d", i, i+1)
			}
		}
	}

	if err := t.SaveModels(*modelDir); err != nil {
		log.Fatalf("train: saving models: %v", err)
	}
	log.Printf("train: saved models to %s", *modelDir)
}

// buildParams assembles the trainer's construction parameters, pulling
// dimensions from rl_system.params and optimizer hyperparameters from
// nn_system.params when paths are given, and falling back to built-in
// defaults when they're empty (so the command runs standalone without a
// config directory).
func buildParams(modelDir string, rndEnabled bool, rlParamsPath, nnParamsPath string) (trainer.Params, error) {
	dqnDims := rl.DimsSpec{InputDim: 8, OutputDim: 4, HiddenDim: 64, NumLayers: 5, BatchSize: 64}
	rndDims := rl.DimsSpec{InputDim: 11, OutputDim: 64, HiddenDim: 64, NumLayers: 5, BatchSize: 32}
	bufferCapacity := 50000

	if rlParamsPath != "" {
		cfg, err := rl.LoadSystemConfig(rlParamsPath)
		if err != nil {
			return trainer.Params{}, fmt.Errorf("loading %s: %w", rlParamsPath, err)
		}
		dqnDims, rndDims, bufferCapacity = cfg.DQN, cfg.RND, cfg.BufferCapacity
	}

	dqnOpt := nn.OptimizerParams{LRInitial: 0.001, LRMin: 0.00001, Beta1: 0.9, Beta2: 0.999, Eps: 1e-8, MaxTrainSteps: 200000}
	rndOpt := nn.OptimizerParams{LRInitial: 0.0005, LRMin: 0.00001, Beta1: 0.9, Beta2: 0.999, Eps: 1e-8, MaxTrainSteps: 200000}

	if nnParamsPath != "" {
		cfg, err := nn.LoadOptimizerConfig(nnParamsPath)
		if err != nil {
			return trainer.Params{}, fmt.Errorf("loading %s: %w", nnParamsPath, err)
		}
		dqnOpt, rndOpt = cfg.DQN, cfg.RND
	}

	return trainer.Params{
		ModelDir:       modelDir,
		RNDEnabled:     rndEnabled,
		BufferCapacity: bufferCapacity,
		DQN:            dimsAndOptToConfig(dqnDims, dqnOpt),
		RND:            dimsAndOptToConfig(rndDims, rndOpt),
	}, nil
}

func dimsAndOptToConfig(d rl.DimsSpec, o nn.OptimizerParams) nn.Config {
	return nn.Config{
		InputDim: d.InputDim, OutputDim: d.OutputDim, HiddenDim: d.HiddenDim,
		NumLayers: d.NumLayers, BatchSize: d.BatchSize,
		LRInitial: o.LRInitial, LRMin: o.LRMin, Beta1: o.Beta1, Beta2: o.Beta2, Eps: o.Eps,
		MaxTrainSteps: o.MaxTrainSteps,
	}
}

// syntheticEnv stands in for the actual simulation: it produces States that
// exercise every feature the DQN and RND encoders read, without depending on
// any particular game engine.
type syntheticEnv struct {
	rng       *rand.Rand
	state     rl.State
	sector    int
	foodRates [9]float64
}

func newSyntheticEnv(rng *rand.Rand) *syntheticEnv {
	e := &syntheticEnv{
		rng: rng,
		state: rl.State{
			Gender:      rng.IntN(2),
			VisionDepth: 5,
			Speed:       1,
			Size:        1,
			EnergyLvl:   1.0,
		},
		sector: rng.IntN(9),
	}
	for i := range e.foodRates {
		e.foodRates[i] = rng.Float64()
	}
	return e
}

func (e *syntheticEnv) step(a rl.Action) (rl.State, bool) {
	hitWall := e.rng.Float64() < 0.05

	next := e.state
	next.EnergyLvl -= 0.01
	if next.EnergyLvl < 0 {
		next.EnergyLvl = 1.0
	}
	next.FoodCountInVision = int32(e.rng.IntN(4))
	next.WallInVision = hitWall
	next.IsEating = next.FoodCountInVision > 0 && e.rng.Float64() < 0.3

	e.sector = e.rng.IntN(9)
	for i := range e.foodRates {
		e.foodRates[i] = e.foodRates[i]*0.9 + e.rng.Float64()*0.1
	}

	e.state = next
	return next, hitWall
}
