package reporting

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func makeSamples(n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			Tick:           uint64(i),
			Arrivals:       float64(101 + i),
			AvgQueue:       2.5,
			TotalProcessed: 65,
		}
	}

	return samples
}

var _ = Describe("TableRenderer", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = new(bytes.Buffer)
	})

	It("should render every sample and the totals", func() {
		err := TableRenderer{}.Render(buf, makeSamples(3))

		Expect(err).NotTo(HaveOccurred())

		out := buf.String()
		Expect(out).To(ContainSubstring("TICK"))
		Expect(out).To(ContainSubstring("101.00"))
		Expect(out).To(ContainSubstring("102.00"))
		Expect(out).To(ContainSubstring("103.00"))
		Expect(out).To(MatchRegexp(`306\D00`))
		Expect(out).To(MatchRegexp(`195\D00`))
	})

	It("should thin the rows but keep the last one", func() {
		err := TableRenderer{Every: 2}.Render(buf, makeSamples(4))

		Expect(err).NotTo(HaveOccurred())

		out := buf.String()
		Expect(out).To(ContainSubstring("101.00"))
		Expect(out).NotTo(ContainSubstring("102.00"))
		Expect(out).To(ContainSubstring("103.00"))
		Expect(out).To(ContainSubstring("104.00"))
	})

	It("should flag skipped ticks", func() {
		samples := makeSamples(2)
		samples[1].Skipped = true

		Expect(TableRenderer{}.Render(buf, samples)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("1 (skipped)"))
	})
})

var _ = Describe("CSVRenderer", func() {
	It("should write one row per tick", func() {
		buf := new(bytes.Buffer)
		samples := []Sample{
			{Tick: 0, Arrivals: 100, AvgQueue: 7, TotalProcessed: 65},
			{Tick: 1, Arrivals: 92, AvgQueue: 12.5, TotalProcessed: 60, Lost: 3},
		}

		Expect(CSVRenderer{}.Render(buf, samples)).To(Succeed())
		Expect(buf.String()).To(Equal(
			"tick,arrivals,avg_queue,total_processed,lost\n" +
				"0,100,7,65,0\n" +
				"1,92,12.5,60,3\n"))
	})
})
