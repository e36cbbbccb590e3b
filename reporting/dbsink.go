package reporting

import (
	"context"
	"fmt"

	"github.com/sarchlab/dronesim/datarecording"
	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/sim"
)

// Table names used in recordings.
const (
	TickTable  = "drone_ticks"
	StateTable = "drone_states"
)

// DBSink stores samples in the drone_ticks table of a recording.
type DBSink struct {
	recorder datarecording.DataRecorder
}

// NewDBSink creates the drone_ticks table on recorder.
func NewDBSink(recorder datarecording.DataRecorder) *DBSink {
	recorder.CreateTable(TickTable, Sample{})

	return &DBSink{recorder: recorder}
}

// Record buffers s in the recording.
func (s *DBSink) Record(sample Sample) {
	s.recorder.InsertData(TickTable, sample)
}

// DroneState is one drone at the end of one tick.
type DroneState struct {
	Tick        uint64
	Drone       int
	Capacity    float64
	QueueBefore float64
	Processed   float64
	Queue       float64
}

// StateTracer is a fleet hook that records every drone of every tick in the
// drone_states table.
type StateTracer struct {
	recorder datarecording.DataRecorder
}

// NewStateTracer creates the drone_states table on recorder.
func NewStateTracer(recorder datarecording.DataRecorder) *StateTracer {
	recorder.CreateTable(StateTable, DroneState{})

	return &StateTracer{recorder: recorder}
}

// Func records the drones of a fleet tick.
func (t *StateTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != drone.HookPosFleetTick {
		return
	}

	detail, ok := ctx.Detail.(drone.TickDetail)
	if !ok {
		return
	}

	for i := range detail.Capacities {
		t.recorder.InsertData(StateTable, DroneState{
			Tick:        detail.Tick,
			Drone:       i,
			Capacity:    detail.Capacities[i],
			QueueBefore: detail.QueuesBefore[i],
			Processed:   detail.Processed[i],
			Queue:       detail.Queues[i],
		})
	}
}

// ReadSamples loads the drone_ticks table of a recording in tick order.
func ReadSamples(
	ctx context.Context,
	reader datarecording.DataReader,
) ([]Sample, error) {
	reader.MapTable(TickTable, Sample{})

	results, _, err := reader.Query(ctx, TickTable, datarecording.QueryParams{
		OrderBy: "Tick",
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", TickTable, err)
	}

	samples := make([]Sample, 0, len(results))
	for _, r := range results {
		samples = append(samples, *r.(*Sample))
	}

	return samples, nil
}
