// Package trainer owns the four role-tagged networks, the two replay
// buffers, and the tick-counter gating that decides when to run a DQN
// optimization step, an RND optimization step, or a target hard-sync.
package trainer

import (
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"

	"organism_rl/internal/nn"
	"organism_rl/internal/replay"
	"organism_rl/internal/rl"
)

const (
	targetSyncEvery = 1000
	learnEvery      = 4
	rndTrainEvery   = 100
	discountDefault = 0.9
)

// Bridge is implemented by an optional telemetry sink. A nil Bridge means
// no telemetry, no overhead.
type Bridge interface {
	OnTrainingStep(StepEvent)
}

// StepEvent summarizes one completed DQN/RND optimization step for an
// observer; fields are zero when that step didn't run this tick.
type StepEvent struct {
	Tick             int
	DQNLoss          float64
	DQNTrained       bool
	RNDLoss          float64
	RNDTrained       bool
	TargetSynced     bool
	TransitionBuffer int
	RNDBuffer        int
	Beta             float64
}

// Params configures trainer construction.
type Params struct {
	Discount       float64 // 0 selects the default of 0.9
	ModelDir       string
	BufferCapacity int
	RNDEnabled     bool

	DQN nn.Config // Role field is overwritten per-slot
	RND nn.Config
}

// Trainer is the DQN/RND training loop driven tick-by-tick by an external
// environment.
type Trainer struct {
	registry *nn.Registry
	reward   *rl.RewardEngine

	transitions *replay.TransitionBuffer
	rndBuffer   *replay.RNDBuffer

	discount   float64
	rndEnabled bool
	rng        *rand.Rand

	dqnBatchSize int
	rndBatchSize int

	learnCounter      int
	rndCounter        int
	targetSyncCounter int

	modelDir string
	bridge   Bridge
	tick     int
}

// New constructs a trainer: loads or fresh-inits the DQN online network
// from model_dir, always fresh-inits the target and hard copies online
// into it, loads or fresh-inits the RND predictor, and loads or
// fresh-inits-and-randomizes the RND target.
func New(p Params, rng *rand.Rand) (*Trainer, error) {
	if p.Discount == 0 {
		p.Discount = discountDefault
	}

	dqnOnlineCfg := p.DQN
	dqnOnlineCfg.Role = nn.RoleDqnOnline
	var online *nn.Network
	if nn.Exists(p.ModelDir) {
		loaded, err := nn.Load(p.ModelDir, dqnOnlineCfg, rng)
		if err != nil {
			return nil, fmt.Errorf("trainer: loading DQN online: %w", err)
		}
		online = loaded
	} else {
		online = nn.New(dqnOnlineCfg, rng)
	}

	dqnTargetCfg := p.DQN
	dqnTargetCfg.Role = nn.RoleDqnTarget
	target := nn.New(dqnTargetCfg, rng)
	target.HardUpdateFrom(online)

	predictorDir := filepath.Join(p.ModelDir, "predictor")
	rndPredictorCfg := p.RND
	rndPredictorCfg.Role = nn.RoleRndPredictor
	var predictor *nn.Network
	if nn.Exists(predictorDir) {
		loaded, err := nn.Load(predictorDir, rndPredictorCfg, rng)
		if err != nil {
			return nil, fmt.Errorf("trainer: loading RND predictor: %w", err)
		}
		predictor = loaded
	} else {
		predictor = nn.New(rndPredictorCfg, rng)
	}

	rndTargetDir := filepath.Join(p.ModelDir, "target")
	rndTargetCfg := p.RND
	rndTargetCfg.Role = nn.RoleRndTarget
	var rndTarget *nn.Network
	if nn.Exists(rndTargetDir) {
		loaded, err := nn.Load(rndTargetDir, rndTargetCfg, rng)
		if err != nil {
			return nil, fmt.Errorf("trainer: loading RND target: %w", err)
		}
		rndTarget = loaded
	} else {
		rndTarget = nn.New(rndTargetCfg, rng)
		rndTarget.RandomizeWeights(rng)
	}

	reg := &nn.Registry{DqnOnline: online, DqnTarget: target, RndPredictor: predictor, RndTarget: rndTarget}

	return &Trainer{
		registry:     reg,
		reward:       rl.NewRewardEngine(),
		transitions:  replay.NewTransitionBuffer(p.BufferCapacity),
		rndBuffer:    replay.NewRNDBuffer(p.BufferCapacity, p.RND.InputDim),
		discount:     p.Discount,
		rndEnabled:   p.RNDEnabled,
		rng:          rng,
		dqnBatchSize: p.DQN.BatchSize,
		rndBatchSize: p.RND.BatchSize,
		modelDir:     p.ModelDir,
	}, nil
}

// Registry exposes the four role-tagged networks (e.g. for an external
// policy module, or the reward engine's predictor/target lookups).
func (t *Trainer) Registry() *nn.Registry { return t.registry }

// RewardEngine exposes the trainer's reward engine, so the driver can
// compute reward before calling Observe.
func (t *Trainer) RewardEngine() *rl.RewardEngine { return t.reward }

// SetBridge attaches an optional telemetry sink.
func (t *Trainer) SetBridge(b Bridge) { t.bridge = b }

// Observe pushes one environment tick's transition into the buffers and
// runs whichever optimization steps the tick counters fire.
func (t *Trainer) Observe(prevState, nextState rl.State, action rl.Action, reward float64, done bool, sector int, foodRates [9]float64) {
	t.tick++
	t.transitions.Push(replay.Transition{
		State:     rl.EncodeDQN(prevState),
		Action:    int(action),
		Reward:    reward,
		NextState: rl.EncodeDQN(nextState),
		Done:      done,
	})
	t.rndBuffer.Push(rl.EncodeRND(nextState, sector, foodRates))

	event := StepEvent{Tick: t.tick, TransitionBuffer: t.transitions.Len(), RNDBuffer: t.rndBuffer.Len(), Beta: t.reward.Beta.Beta(t.reward.Stats.N)}

	t.targetSyncCounter++
	if t.targetSyncCounter >= targetSyncEvery {
		t.registry.DqnTarget.HardUpdateFrom(t.registry.DqnOnline)
		t.targetSyncCounter = 0
		event.TargetSynced = true
	}

	t.learnCounter++
	if t.learnCounter >= learnEvery {
		t.learnCounter = 0
		if t.transitions.Len() >= t.dqnBatchSize {
			event.DQNLoss = t.dqnStep()
			event.DQNTrained = true
		}
	}

	if t.rndEnabled {
		t.rndCounter++
		if t.rndCounter >= rndTrainEvery {
			t.rndCounter = 0
			if t.rndBuffer.Len() >= t.rndBatchSize {
				event.RNDLoss = t.rndStep()
				event.RNDTrained = true
			}
		}
	}

	if t.bridge != nil {
		t.bridge.OnTrainingStep(event)
	}
}

// dqnStep runs one DQN optimization step: sample a batch, bootstrap each
// transition's target Q-value off the target network, and train online.
func (t *Trainer) dqnStep() float64 {
	batch, err := t.transitions.Sample(t.dqnBatchSize, t.rng)
	if err != nil {
		log.Fatalf("trainer: dqnStep sample: %v", err)
	}

	inputDim := t.registry.DqnOnline.Config.InputDim
	outputDim := t.registry.DqnOnline.Config.OutputDim
	b := len(batch)

	sFlat := make([]float64, 0, b*inputDim)
	sNextFlat := make([]float64, 0, b*inputDim)
	for _, tr := range batch {
		sFlat = append(sFlat, tr.State...)
		sNextFlat = append(sNextFlat, tr.NextState...)
	}

	qNext := t.registry.DqnTarget.Predict(sNextFlat, b)
	qCur := t.registry.DqnOnline.Predict(sFlat, b)

	tgt := make([]float64, b*outputDim)
	copy(tgt, qCur)
	for i, tr := range batch {
		m := qNext[i*outputDim]
		for j := 1; j < outputDim; j++ {
			if v := qNext[i*outputDim+j]; v > m {
				m = v
			}
		}
		doneVal := 0.0
		if tr.Done {
			doneVal = 1.0
		}
		tgt[i*outputDim+tr.Action] = tr.Reward + (1-doneVal)*t.discount*m
	}

	return t.registry.DqnOnline.Train(sFlat, tgt, b)
}

// rndStep runs one RND predictor optimization step against the fixed
// random target network.
func (t *Trainer) rndStep() float64 {
	x, err := t.rndBuffer.GetBatch(t.rndBatchSize, t.rng)
	if err != nil {
		log.Fatalf("trainer: rndStep get_batch: %v", err)
	}
	y := t.registry.RndTarget.Predict(x, t.rndBatchSize)
	return t.registry.RndPredictor.Train(x, y, t.rndBatchSize)
}

// SaveModels persists DQN-online to baseDir, RND-predictor to
// baseDir/predictor, and RND-target to baseDir/target.
func (t *Trainer) SaveModels(baseDir string) error {
	if err := t.registry.DqnOnline.Save(baseDir); err != nil {
		return err
	}
	if err := t.registry.RndPredictor.Save(filepath.Join(baseDir, "predictor")); err != nil {
		return err
	}
	if err := t.registry.RndTarget.Save(filepath.Join(baseDir, "target")); err != nil {
		return err
	}
	return nil
}

// Close releases the registry's loss log file handles.
func (t *Trainer) Close() error {
	return t.registry.Close()
}
