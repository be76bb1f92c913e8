package telemetry

import (
	"encoding/json"

	"organism_rl/internal/trainer"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const TypeTrainingStep = "training:step"

// TrainingStepPayload is the wire representation of a trainer.StepEvent.
type TrainingStepPayload struct {
	Tick             int     `json:"tick"`
	DQNLoss          float64 `json:"dqn_loss"`
	DQNTrained       bool    `json:"dqn_trained"`
	RNDLoss          float64 `json:"rnd_loss"`
	RNDTrained       bool    `json:"rnd_trained"`
	TargetSynced     bool    `json:"target_synced"`
	TransitionBuffer int     `json:"transition_buffer"`
	RNDBuffer        int     `json:"rnd_buffer"`
	Beta             float64 `json:"beta"`
}

func TrainingStepFromEvent(e trainer.StepEvent) TrainingStepPayload {
	return TrainingStepPayload{
		Tick:             e.Tick,
		DQNLoss:          e.DQNLoss,
		DQNTrained:       e.DQNTrained,
		RNDLoss:          e.RNDLoss,
		RNDTrained:       e.RNDTrained,
		TargetSynced:     e.TargetSynced,
		TransitionBuffer: e.TransitionBuffer,
		RNDBuffer:        e.RNDBuffer,
		Beta:             e.Beta,
	}
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
