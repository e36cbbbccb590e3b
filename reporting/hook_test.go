package reporting

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/sim"
)

var _ = Describe("SinkHook", func() {
	var (
		mockCtrl *gomock.Controller
		sink     *MockSink
		hook     *SinkHook
		detail   drone.TickDetail
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sink = NewMockSink(mockCtrl)
		hook = NewSinkHook(sink)
		detail = drone.TickDetail{
			Tick:         4,
			Time:         4,
			Arrivals:     100,
			Capacities:   []float64{10, 15, 20, 12, 8},
			QueuesBefore: []float64{0, 0, 0, 0, 0},
			Queues:       []float64{10, 5, 0, 8, 12},
			Processed:    []float64{10, 15, 20, 12, 8},
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record a sample per fleet tick", func() {
		sink.EXPECT().Record(Sample{
			Tick:           4,
			Time:           4,
			Arrivals:       100,
			AvgQueue:       7,
			TotalProcessed: 65,
		})

		hook.Func(sim.HookCtx{Pos: drone.HookPosFleetTick, Detail: detail})
	})

	It("should mark rejected ticks as skipped", func() {
		detail.Err = errors.New("invalid")
		detail.Lost = 100
		detail.Processed = nil
		detail.Queues = []float64{0, 0, 0, 0, 0}

		sink.EXPECT().Record(Sample{
			Tick:     4,
			Time:     4,
			Arrivals: 100,
			Lost:     100,
			Skipped:  true,
		})

		hook.Func(sim.HookCtx{Pos: drone.HookPosFleetTick, Detail: detail})
	})

	It("should ignore other hook positions", func() {
		hook.Func(sim.HookCtx{Pos: sim.HookPosBeforeEvent, Detail: detail})
	})
})
