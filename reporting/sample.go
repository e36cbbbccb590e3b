// Package reporting collects the per-tick output of a fleet into time series
// and renders them.
package reporting

// Sample is what a fleet reports about one tick.
type Sample struct {
	Tick           uint64
	Time           float64
	Arrivals       float64
	AvgQueue       float64
	TotalProcessed float64
	Lost           float64
	Skipped        bool
}

// A Sink consumes samples as the simulation produces them.
type Sink interface {
	Record(s Sample)
}

// MultiSink forwards every sample to all its sinks, in order.
type MultiSink []Sink

// Record forwards s.
func (m MultiSink) Record(s Sample) {
	for _, sink := range m {
		sink.Record(s)
	}
}
