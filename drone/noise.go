package drone

import (
	"math"
	"math/rand"
)

// RandSource is the pseudo-random source that drives the noise of a fleet.
// *rand.Rand satisfies it.
type RandSource interface {
	// Float64 returns a number in [0, 1).
	Float64() float64

	// Intn returns a number in [0, n).
	Intn(n int) int
}

// NewRandSource returns a seeded RandSource.
func NewRandSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// Noise describes how capacities and the arrival rate drift between ticks.
type Noise struct {
	// CapacityJitter bounds the uniform drift added to each capacity.
	CapacityJitter float64

	// RateStepMin and RateStepMax bound the integer drift of the arrival
	// rate. The step is drawn from [RateStepMin, RateStepMax).
	RateStepMin int
	RateStepMax int

	// RateFloor is the lowest arrival rate the drift may reach.
	RateFloor float64
}

// DefaultNoise returns the drift of the reference simulation.
func DefaultNoise() Noise {
	return Noise{
		CapacityJitter: 2,
		RateStepMin:    -10,
		RateStepMax:    10,
		RateFloor:      50,
	}
}

// PerturbCapacities returns new capacities, each drifted by up to
// CapacityJitter and clamped into [1, maxEfficiency].
func (n Noise) PerturbCapacities(
	src RandSource,
	capacities []float64,
	maxEfficiency float64,
) []float64 {
	next := make([]float64, len(capacities))
	for i, c := range capacities {
		drift := (src.Float64()*2 - 1) * n.CapacityJitter
		next[i] = clamp(c+drift, 1, maxEfficiency)
	}

	return next
}

// PerturbRate returns the next arrival rate.
func (n Noise) PerturbRate(src RandSource, rate float64) float64 {
	step := n.RateStepMin
	if span := n.RateStepMax - n.RateStepMin; span > 0 {
		step += src.Intn(span)
	}

	return math.Max(n.RateFloor, rate+float64(step))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
