package reporting

import (
	"math"
	"sync"
)

// Series is an in-memory time series of samples. It is safe to read while a
// simulation appends to it.
type Series struct {
	lock    sync.RWMutex
	samples []Sample
}

// NewSeries creates an empty series.
func NewSeries() *Series {
	return &Series{}
}

// Record appends s.
func (s *Series) Record(sample Sample) {
	s.lock.Lock()
	s.samples = append(s.samples, sample)
	s.lock.Unlock()
}

// Len returns the number of samples recorded.
func (s *Series) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.samples)
}

// Samples returns a copy of all the samples.
func (s *Series) Samples() []Sample {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]Sample(nil), s.samples...)
}

// Last returns a copy of the latest n samples, or all of them if n is not
// positive or exceeds the length.
func (s *Series) Last(n int) []Sample {
	s.lock.RLock()
	defer s.lock.RUnlock()

	start := 0
	if n > 0 && n < len(s.samples) {
		start = len(s.samples) - n
	}

	return append([]Sample(nil), s.samples[start:]...)
}

// Totals aggregates a series.
type Totals struct {
	Ticks        int
	SkippedTicks int
	Arrivals     float64
	Processed    float64
	Lost         float64
	MeanQueue    float64
	PeakQueue    float64
}

// Totals aggregates the samples recorded so far.
func (s *Series) Totals() Totals {
	return Summarize(s.Samples())
}

// Summarize aggregates samples.
func Summarize(samples []Sample) Totals {
	t := Totals{Ticks: len(samples)}
	if len(samples) == 0 {
		return t
	}

	queueSum := 0.0
	for _, s := range samples {
		t.Arrivals += s.Arrivals
		t.Processed += s.TotalProcessed
		t.Lost += s.Lost
		queueSum += s.AvgQueue
		t.PeakQueue = math.Max(t.PeakQueue, s.AvgQueue)

		if s.Skipped {
			t.SkippedTicks++
		}
	}

	t.MeanQueue = queueSum / float64(len(samples))

	return t
}
