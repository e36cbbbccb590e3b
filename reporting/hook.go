package reporting

import (
	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/sim"
)

// SinkHook turns the fleet tick hooks into samples for a sink.
type SinkHook struct {
	sink Sink
}

// NewSinkHook creates a hook that feeds sink.
func NewSinkHook(sink Sink) *SinkHook {
	return &SinkHook{sink: sink}
}

// Func records a sample for every fleet tick.
func (h *SinkHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != drone.HookPosFleetTick {
		return
	}

	detail, ok := ctx.Detail.(drone.TickDetail)
	if !ok {
		return
	}

	h.sink.Record(SampleFromDetail(detail))
}

// SampleFromDetail condenses a fleet tick into a sample.
func SampleFromDetail(d drone.TickDetail) Sample {
	s := Sample{
		Tick:     d.Tick,
		Time:     float64(d.Time),
		Arrivals: d.Arrivals,
		Lost:     d.Lost,
		Skipped:  d.Err != nil,
	}

	for _, p := range d.Processed {
		s.TotalProcessed += p
	}

	if len(d.Queues) > 0 {
		total := 0.0
		for _, q := range d.Queues {
			total += q
		}

		s.AvgQueue = total / float64(len(d.Queues))
	}

	return s
}
