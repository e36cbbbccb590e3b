package drone

import (
	"bytes"
	"errors"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dronesim/sim"
)

var _ = Describe("TickLogger", func() {
	var (
		buf    *bytes.Buffer
		logger *TickLogger
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		logger = NewTickLogger(log.New(buf, "", 0))
	})

	It("should log a distributed tick", func() {
		logger.Func(sim.HookCtx{Pos: HookPosFleetTick, Detail: TickDetail{
			Tick:      1,
			Time:      1,
			Arrivals:  100,
			Processed: []float64{10, 15, 20, 12, 8},
			Queues:    []float64{20, 10, 0, 16, 20},
			Lost:      4,
		}})

		Expect(buf.String()).To(Equal(
			"tick 1 @ 1.00: arrivals 100.00 processed 65.00 " +
				"queued 66.00 lost 4.00\n"))
	})

	It("should log a rejected tick", func() {
		logger.Func(sim.HookCtx{Pos: HookPosFleetTick, Detail: TickDetail{
			Tick:     2,
			Time:     2,
			Arrivals: 90,
			Err:      errors.New("bad queue"),
		}})

		Expect(buf.String()).To(Equal(
			"tick 2 @ 2.00: rejected, 90 arrivals lost: bad queue\n"))
	})

	It("should ignore other positions", func() {
		logger.Func(sim.HookCtx{Pos: sim.HookPosBeforeEvent})

		Expect(buf.Len()).To(BeZero())
	})
})
