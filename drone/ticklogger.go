package drone

import (
	"log"
	"math"

	"github.com/sarchlab/dronesim/sim"
)

// TickLogger is a hook that writes one line per fleet tick.
type TickLogger struct {
	*log.Logger
}

// NewTickLogger returns a TickLogger that writes into logger.
func NewTickLogger(logger *log.Logger) *TickLogger {
	return &TickLogger{Logger: logger}
}

// Func logs the fleet tick described by ctx.
func (h *TickLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosFleetTick {
		return
	}

	d, ok := ctx.Detail.(TickDetail)
	if !ok {
		return
	}

	if d.Err != nil {
		h.Printf("tick %d @ %.2f: rejected, %d arrivals lost: %v",
			d.Tick, d.Time, int(math.Round(d.Arrivals)), d.Err)
		return
	}

	h.Printf("tick %d @ %.2f: arrivals %.2f processed %.2f queued %.2f lost %.2f",
		d.Tick, d.Time, d.Arrivals, sum(d.Processed), sum(d.Queues), d.Lost)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}

	return total
}
