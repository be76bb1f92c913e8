package telemetry

import (
	"log"

	"organism_rl/internal/trainer"
)

// Bridge implements trainer.Bridge and broadcasts each optimization step to
// the hub. Attach it with Trainer.SetBridge; a Trainer with no bridge pays
// nothing for telemetry.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnTrainingStep(e trainer.StepEvent) {
	msg, err := NewEnvelope(TypeTrainingStep, TrainingStepFromEvent(e))
	if err != nil {
		log.Printf("telemetry: error marshaling training step: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
