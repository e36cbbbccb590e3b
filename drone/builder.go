package drone

import (
	"time"

	"github.com/sarchlab/dronesim/distribution"
	"github.com/sarchlab/dronesim/sim"
)

// Builder can build fleets.
type Builder struct {
	engine      sim.Engine
	freq        sim.Freq
	capacities  []float64
	queues      []float64
	limits      distribution.Limits
	arrivalRate float64
	numTicks    uint64
	noise       Noise
	rand        RandSource
	policy      ErrorPolicy
}

// MakeBuilder creates a builder with the parameters of the reference fleet:
// five drones, one tick per second, 100 ticks.
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * sim.Hz,
		capacities:  []float64{10, 15, 20, 12, 8},
		limits:      distribution.DefaultLimits(),
		arrivalRate: 100,
		numTicks:    100,
		noise:       DefaultNoise(),
		policy:      ErrorPolicyAbort,
	}
}

// WithEngine sets the engine that ticks the fleet.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the tick frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithCapacities sets the initial capacity of each drone. The number of
// capacities is the number of drones.
func (b Builder) WithCapacities(capacities []float64) Builder {
	b.capacities = append([]float64(nil), capacities...)
	return b
}

// WithInitialQueues sets the initial backlogs. Queues start empty when not
// set.
func (b Builder) WithInitialQueues(queues []float64) Builder {
	b.queues = append([]float64(nil), queues...)
	return b
}

// WithLimits sets the global efficiency and queue limits.
func (b Builder) WithLimits(limits distribution.Limits) Builder {
	b.limits = limits
	return b
}

// WithArrivalRate sets the initial arrival rate.
func (b Builder) WithArrivalRate(rate float64) Builder {
	b.arrivalRate = rate
	return b
}

// WithNumTicks sets how many ticks the fleet runs.
func (b Builder) WithNumTicks(n uint64) Builder {
	b.numTicks = n
	return b
}

// WithNoise sets the drift applied between ticks.
func (b Builder) WithNoise(noise Noise) Builder {
	b.noise = noise
	return b
}

// WithRandSource sets the random source of the drift. A time-seeded source is
// used when not set.
func (b Builder) WithRandSource(src RandSource) Builder {
	b.rand = src
	return b
}

// WithErrorPolicy sets what the fleet does with a rejected round.
func (b Builder) WithErrorPolicy(policy ErrorPolicy) Builder {
	b.policy = policy
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.freq <= 0 {
		panic("frequency must be positive")
	}

	if len(b.capacities) == 0 {
		panic("a fleet needs at least one drone")
	}

	if b.queues != nil && len(b.queues) != len(b.capacities) {
		panic("initial queues do not match the number of drones")
	}

	if b.numTicks == 0 {
		panic("number of ticks must be positive")
	}
}

// Build creates a fleet with the given name.
func (b Builder) Build(name string) *Fleet {
	b.parametersMustBeValid()

	f := &Fleet{
		limits:      b.limits,
		noise:       b.noise,
		rand:        b.rand,
		policy:      b.policy,
		arrivalRate: b.arrivalRate,
		numTicks:    b.numTicks,
	}

	if f.rand == nil {
		f.rand = NewRandSource(time.Now().UnixNano())
	}

	f.capacities = append([]float64(nil), b.capacities...)
	f.queues = make([]float64, len(b.capacities))
	copy(f.queues, b.queues)
	f.lastProcessed = make([]float64, len(b.capacities))

	f.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, f)

	return f
}
