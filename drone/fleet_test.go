package drone

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/dronesim/distribution"
	"github.com/sarchlab/dronesim/sim"
)

type tickRecorder struct {
	details []TickDetail
}

func (r *tickRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosFleetTick {
		return
	}

	r.details = append(r.details, ctx.Detail.(TickDetail))
}

var _ = Describe("Fleet", func() {
	var (
		mockCtrl *gomock.Controller
		src      *MockRandSource
		engine   *sim.SerialEngine
		recorder *tickRecorder
		builder  Builder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		src = NewMockRandSource(mockCtrl)
		src.EXPECT().Float64().Return(0.5).AnyTimes()
		src.EXPECT().Intn(20).Return(10).AnyTimes()

		engine = sim.NewSerialEngine()
		recorder = &tickRecorder{}
		builder = MakeBuilder().
			WithEngine(engine).
			WithRandSource(src).
			WithNumTicks(3)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	run := func(f *Fleet) {
		f.AcceptHook(recorder)
		f.TickNow()
		Expect(engine.Run()).To(Succeed())
	}

	It("should distribute once per tick and carry the queues over", func() {
		fleet := builder.Build("Fleet")

		run(fleet)

		Expect(recorder.details).To(HaveLen(3))
		for i, d := range recorder.details {
			Expect(d.Tick).To(Equal(uint64(i)))
			Expect(d.Time).To(Equal(sim.VTimeInSec(i)))
			Expect(d.Arrivals).To(Equal(100.0))
			Expect(d.Err).NotTo(HaveOccurred())
		}

		first := recorder.details[0]
		Expect(first.QueuesBefore).To(Equal([]float64{0, 0, 0, 0, 0}))
		Expect(first.Processed).To(Equal([]float64{10, 15, 20, 12, 8}))
		Expect(first.Queues).To(Equal([]float64{10, 5, 0, 8, 12}))
		Expect(first.Lost).To(BeZero())

		second := recorder.details[1]
		Expect(second.QueuesBefore).To(Equal(first.Queues))
		Expect(second.Processed).To(Equal([]float64{10, 15, 20, 12, 8}))
		Expect(second.Queues).To(Equal([]float64{20, 10, 0, 16, 20}))
		Expect(second.Lost).To(BeNumerically("~", 4, 1e-9))

		Expect(fleet.Done()).To(BeTrue())
		Expect(fleet.Err()).NotTo(HaveOccurred())
	})

	It("should expose a snapshot of its state", func() {
		fleet := builder.Build("Fleet")

		run(fleet)

		state := fleet.Snapshot()
		Expect(state.Name).To(Equal("Fleet"))
		Expect(state.Tick).To(Equal(uint64(3)))
		Expect(state.NumTicks).To(Equal(uint64(3)))
		Expect(state.Capacities).To(Equal([]float64{10, 15, 20, 12, 8}))
		Expect(state.Queues).To(Equal(recorder.details[2].Queues))
		Expect(state.Processed).To(Equal(recorder.details[2].Processed))
		Expect(fleet.NumDrones()).To(Equal(5))
	})

	It("should abort on an invalid round by default", func() {
		fleet := builder.
			WithInitialQueues([]float64{30, 0, 0, 0, 0}).
			Build("Fleet")

		run(fleet)

		Expect(recorder.details).To(HaveLen(1))
		Expect(recorder.details[0].Err).To(HaveOccurred())

		var inputErr *distribution.InvalidInputError
		Expect(errors.As(fleet.Err(), &inputErr)).To(BeTrue())
		Expect(inputErr.Reason).To(Equal(distribution.ReasonQueueOutOfRange))
		Expect(fleet.Done()).To(BeTrue())
		Expect(fleet.Snapshot().Tick).To(Equal(uint64(0)))
	})

	It("should skip invalid rounds when asked to", func() {
		fleet := builder.
			WithInitialQueues([]float64{30, 0, 0, 0, 0}).
			WithErrorPolicy(ErrorPolicySkip).
			Build("Fleet")

		run(fleet)

		Expect(recorder.details).To(HaveLen(3))
		for _, d := range recorder.details {
			Expect(errors.Is(d.Err, distribution.ErrInvalidInput)).To(BeTrue())
			Expect(d.Queues).To(Equal([]float64{30, 0, 0, 0, 0}))
		}
		Expect(fleet.Err()).NotTo(HaveOccurred())
		Expect(fleet.Snapshot().SkippedTicks).To(Equal(uint64(3)))
	})

	It("should not tick after the last tick", func() {
		fleet := builder.WithNumTicks(1).Build("Fleet")

		Expect(fleet.Tick()).To(BeFalse())
		Expect(fleet.Tick()).To(BeFalse())
		Expect(fleet.Snapshot().Tick).To(Equal(uint64(1)))
	})

	DescribeTable("should refuse invalid builder parameters",
		func(modify func(Builder) Builder) {
			Expect(func() { modify(builder).Build("Fleet") }).To(Panic())
		},
		Entry("no engine", func(b Builder) Builder {
			return b.WithEngine(nil)
		}),
		Entry("no drones", func(b Builder) Builder {
			return b.WithCapacities(nil)
		}),
		Entry("mismatched queues", func(b Builder) Builder {
			return b.WithInitialQueues([]float64{1})
		}),
		Entry("no ticks", func(b Builder) Builder {
			return b.WithNumTicks(0)
		}),
		Entry("zero frequency", func(b Builder) Builder {
			return b.WithFreq(0)
		}),
	)
})
