package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/xid"
)

var _ = Describe("IDGenerator", func() {
	AfterEach(func() {
		UseSequentialIDGenerator()
	})

	It("should count up from one", func() {
		UseSequentialIDGenerator()

		g := GetIDGenerator()
		Expect(g.Generate()).To(Equal("1"))
		Expect(g.Generate()).To(Equal("2"))
	})

	It("should restart the count when selected again", func() {
		UseSequentialIDGenerator()
		GetIDGenerator().Generate()

		UseSequentialIDGenerator()

		Expect(GetIDGenerator().Generate()).To(Equal("1"))
	})

	It("should generate xids in parallel mode", func() {
		UseParallelIDGenerator()

		a := GetIDGenerator().Generate()
		b := GetIDGenerator().Generate()

		_, err := xid.FromString(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(Equal(b))
	})
})
