package distribution

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every *InvalidInputError through errors.Is.
var ErrInvalidInput = errors.New("invalid distribution input")

// Reason names the precondition that an input violates.
type Reason int

// The reasons that Distribute may reject its input.
const (
	ReasonEmpty Reason = iota
	ReasonLengthMismatch
	ReasonNegativeCapacity
	ReasonNegativeArrivals
	ReasonQueueOutOfRange
	ReasonNonPositiveMaxEfficiency
	ReasonNegativeQueueMaxSize
	ReasonNonFinite
)

var reasonNames = map[Reason]string{
	ReasonEmpty:                    "no drones",
	ReasonLengthMismatch:           "length mismatch",
	ReasonNegativeCapacity:         "negative capacity",
	ReasonNegativeArrivals:         "negative arrival count",
	ReasonQueueOutOfRange:          "queue backlog out of range",
	ReasonNonPositiveMaxEfficiency: "non-positive max efficiency",
	ReasonNegativeQueueMaxSize:     "negative queue max size",
	ReasonNonFinite:                "infinite value",
}

func (r Reason) String() string {
	name, ok := reasonNames[r]
	if !ok {
		return fmt.Sprintf("Reason(%d)", int(r))
	}

	return name
}

// InvalidInputError reports the first precondition violated by the input of
// Distribute. Index is the position of the offending drone, or -1 when the
// violation is not tied to a single drone.
type InvalidInputError struct {
	Reason Reason
	Index  int
	Value  float64
	Limit  float64
}

func (e *InvalidInputError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "distribution: no drones given"
	case ReasonLengthMismatch:
		return fmt.Sprintf(
			"distribution: %d capacities but %d queues",
			int(e.Value), int(e.Limit))
	case ReasonQueueOutOfRange:
		return fmt.Sprintf(
			"distribution: queue %d is %g, want within [0, %g]",
			e.Index, e.Value, e.Limit)
	}

	if e.Index >= 0 {
		return fmt.Sprintf("distribution: %s at drone %d: %g",
			e.Reason, e.Index, e.Value)
	}

	return fmt.Sprintf("distribution: %s: %g", e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
