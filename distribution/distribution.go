// Package distribution decides, once per tick, how many arriving packets each
// drone processes, how many it queues, and how many are dropped.
//
// Distribute is a pure function. Queue backlogs are owned by the caller and
// threaded from one call to the next.
package distribution

import (
	"math"
	"sort"
)

// Result is the outcome of one distribution round, index-aligned with the
// input capacities.
type Result struct {
	// Processed is the amount each drone handled this tick, backlog included.
	Processed []float64

	// Queues are the backlogs to pass into the next round.
	Queues []float64
}

// Distribute spreads arrivals over the drones.
//
// Existing backlog is drained first, each drone working off as much of its
// queue as its capacity allows. The arrivals are then offered to the drones
// from the most to the least capable, ties going to the lower index. Each
// drone takes what it can process directly and queues what fits in its free
// queue space. A drone whose queue is full takes nothing new. Arrivals left
// over after the last drone are dropped.
//
// The input slices are never modified. An *InvalidInputError is returned
// before any work is done if the input breaks a precondition.
func Distribute(
	capacities []float64,
	arrivals float64,
	queues []float64,
	limits Limits,
) (Result, error) {
	err := validate(capacities, arrivals, queues, limits)
	if err != nil {
		return Result{}, err
	}

	n := len(capacities)
	processed := make([]float64, n)
	newQueues := make([]float64, n)
	copy(newQueues, queues)

	for i := 0; i < n; i++ {
		drained := math.Min(newQueues[i],
			math.Min(capacities[i], limits.MaxEfficiency))
		processed[i] = drained
		newQueues[i] -= drained
	}

	remaining := arrivals
	for _, i := range PriorityOrder(capacities) {
		if remaining <= 0 {
			break
		}

		free := limits.QueueMaxSize - newQueues[i]
		if free <= 0 {
			continue
		}

		ceiling := math.Min(capacities[i], limits.MaxEfficiency)
		leftover := math.Max(ceiling-processed[i], 0)

		direct := math.Min(math.Min(leftover, remaining), free)
		processed[i] += direct
		remaining -= direct

		toQueue := math.Min(remaining, free-direct)
		newQueues[i] += toQueue
		remaining -= toQueue
	}

	return Result{Processed: processed, Queues: newQueues}, nil
}

// PriorityOrder returns the drone indices sorted by descending capacity. Equal
// capacities keep ascending index order.
func PriorityOrder(capacities []float64) []int {
	order := make([]int, len(capacities))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return capacities[order[a]] > capacities[order[b]]
	})

	return order
}

// Loss returns how many of the arrivals were neither processed nor queued in
// the round that produced result from queuesBefore.
func Loss(arrivals float64, queuesBefore []float64, result Result) float64 {
	loss := arrivals + sum(queuesBefore) - sum(result.Queues) -
		sum(result.Processed)

	// Float cancellation can leave a tiny negative residue.
	if loss < 0 {
		return 0
	}

	return loss
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}

	return total
}

func validate(
	capacities []float64,
	arrivals float64,
	queues []float64,
	limits Limits,
) error {
	if len(capacities) != len(queues) {
		return &InvalidInputError{
			Reason: ReasonLengthMismatch,
			Index:  -1,
			Value:  float64(len(capacities)),
			Limit:  float64(len(queues)),
		}
	}

	if len(capacities) == 0 {
		return &InvalidInputError{Reason: ReasonEmpty, Index: -1}
	}

	// The negated comparisons below also reject NaN.
	if !(limits.MaxEfficiency > 0) {
		return &InvalidInputError{
			Reason: ReasonNonPositiveMaxEfficiency,
			Index:  -1,
			Value:  limits.MaxEfficiency,
		}
	}

	if !(limits.QueueMaxSize >= 0) {
		return &InvalidInputError{
			Reason: ReasonNegativeQueueMaxSize,
			Index:  -1,
			Value:  limits.QueueMaxSize,
		}
	}

	if !(arrivals >= 0) {
		return &InvalidInputError{
			Reason: ReasonNegativeArrivals,
			Index:  -1,
			Value:  arrivals,
		}
	}

	// Amounts must also be finite.
	for _, v := range []float64{
		limits.MaxEfficiency, limits.QueueMaxSize, arrivals,
	} {
		if math.IsInf(v, 0) {
			return &InvalidInputError{Reason: ReasonNonFinite, Index: -1, Value: v}
		}
	}

	for i, c := range capacities {
		if !(c >= 0) {
			return &InvalidInputError{
				Reason: ReasonNegativeCapacity,
				Index:  i,
				Value:  c,
			}
		}

		if math.IsInf(c, 0) {
			return &InvalidInputError{Reason: ReasonNonFinite, Index: i, Value: c}
		}
	}

	for i, q := range queues {
		if !(q >= 0 && q <= limits.QueueMaxSize) {
			return &InvalidInputError{
				Reason: ReasonQueueOutOfRange,
				Index:  i,
				Value:  q,
				Limit:  limits.QueueMaxSize,
			}
		}
	}

	return nil
}
