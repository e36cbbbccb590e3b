// Package drone simulates a fleet of drones that share an incoming packet
// stream. Every tick the fleet drifts its capacities and arrival rate, asks
// the distribution package how to split the arrivals, and keeps the resulting
// queues for the next tick.
package drone

import (
	"log"

	"github.com/sarchlab/dronesim/distribution"
	"github.com/sarchlab/dronesim/sim"
)

// HookPosFleetTick marks the end of a fleet tick. The hook detail is a
// TickDetail.
var HookPosFleetTick = &sim.HookPos{Name: "FleetTick"}

// TickDetail describes what happened during one fleet tick.
type TickDetail struct {
	Tick         uint64
	Time         sim.VTimeInSec
	Arrivals     float64
	Capacities   []float64
	QueuesBefore []float64
	Queues       []float64
	Processed    []float64
	Lost         float64

	// Err is set when the round was rejected. The other per-drone fields then
	// hold the unchanged state.
	Err error
}

// State is a snapshot of a fleet.
type State struct {
	Name          string
	Tick          uint64
	NumTicks      uint64
	ArrivalRate   float64
	MaxEfficiency float64
	QueueMaxSize  float64
	Capacities    []float64
	Queues        []float64
	Processed     []float64
	SkippedTicks  uint64
}

// Fleet is a ticking component that owns the drones' capacities and queues.
type Fleet struct {
	*sim.TickingComponent

	limits distribution.Limits
	noise  Noise
	rand   RandSource
	policy ErrorPolicy

	capacities    []float64
	queues        []float64
	lastProcessed []float64
	arrivalRate   float64

	tick     uint64
	numTicks uint64
	skipped  uint64
	err      error
}

// Tick runs one distribution round. It returns false once the fleet has run
// all its ticks or has been aborted by an invalid round.
func (f *Fleet) Tick() bool {
	if f.err != nil || f.tick >= f.numTicks {
		return false
	}

	detail := f.distribute()

	f.InvokeHook(sim.HookCtx{
		Domain: f,
		Pos:    HookPosFleetTick,
		Item:   f,
		Detail: detail,
	})

	if detail.Err != nil && f.policy == ErrorPolicyAbort {
		return false
	}

	return f.tick < f.numTicks
}

func (f *Fleet) distribute() TickDetail {
	f.Lock()
	defer f.Unlock()

	capacities := f.noise.PerturbCapacities(
		f.rand, f.capacities, f.limits.MaxEfficiency)
	arrivals := f.noise.PerturbRate(f.rand, f.arrivalRate)

	detail := TickDetail{
		Tick:         f.tick,
		Time:         f.CurrentTime(),
		Arrivals:     arrivals,
		Capacities:   capacities,
		QueuesBefore: f.queues,
	}

	f.capacities = capacities
	f.arrivalRate = arrivals

	result, err := distribution.Distribute(
		capacities, arrivals, f.queues, f.limits)
	if err != nil {
		return f.reject(detail, err)
	}

	detail.Queues = result.Queues
	detail.Processed = result.Processed
	detail.Lost = distribution.Loss(arrivals, f.queues, result)

	f.queues = result.Queues
	f.lastProcessed = result.Processed
	f.tick++

	return detail
}

func (f *Fleet) reject(detail TickDetail, err error) TickDetail {
	detail.Err = err
	detail.Lost = detail.Arrivals
	detail.Queues = f.queues
	detail.Processed = make([]float64, len(f.queues))
	f.lastProcessed = detail.Processed

	switch f.policy {
	case ErrorPolicySkip:
		log.Printf("%s: tick %d skipped: %v", f.Name(), f.tick, err)
		f.skipped++
		f.tick++
	default:
		log.Printf("%s: aborted at tick %d: %v", f.Name(), f.tick, err)
		f.err = err
	}

	return detail
}

// Err returns the error that aborted the fleet, if any.
func (f *Fleet) Err() error {
	f.Lock()
	defer f.Unlock()

	return f.err
}

// Done tells if the fleet will not tick anymore.
func (f *Fleet) Done() bool {
	f.Lock()
	defer f.Unlock()

	return f.err != nil || f.tick >= f.numTicks
}

// NumDrones returns the size of the fleet.
func (f *Fleet) NumDrones() int {
	return len(f.capacities)
}

// Snapshot returns a copy of the current state of the fleet.
func (f *Fleet) Snapshot() State {
	f.Lock()
	defer f.Unlock()

	return State{
		Name:          f.Name(),
		Tick:          f.tick,
		NumTicks:      f.numTicks,
		ArrivalRate:   f.arrivalRate,
		MaxEfficiency: f.limits.MaxEfficiency,
		QueueMaxSize:  f.limits.QueueMaxSize,
		Capacities:    append([]float64(nil), f.capacities...),
		Queues:        append([]float64(nil), f.queues...),
		Processed:     append([]float64(nil), f.lastProcessed...),
		SkippedTicks:  f.skipped,
	}
}
