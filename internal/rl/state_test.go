package rl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDQN(t *testing.T) {
	s := State{
		Gender: 1, VisionDepth: 5, Speed: 2, Size: 3,
		EnergyLvl: 0.75, FoodCountInVision: 2, WallInVision: true, IsEating: false,
	}
	got := EncodeDQN(s)
	assert.Equal(t, []float64{1, 5, 2, 3, 0.75, 2, 1, 0}, got)
}

func TestEncodeRND(t *testing.T) {
	s := State{EnergyLvl: 0.4}
	rates := [9]float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	got := EncodeRND(s, 4, rates)
	assert.Len(t, got, 11)
	assert.Equal(t, 4.0, got[0])
	assert.Equal(t, 0.4, got[1])
	assert.Equal(t, rates[:], got[2:])
}
