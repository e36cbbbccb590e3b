package distribution

// Limits are the process-wide ceilings that apply to every drone.
type Limits struct {
	// MaxEfficiency caps the packets any drone processes in one tick, even if
	// its capacity is nominally higher.
	MaxEfficiency float64

	// QueueMaxSize caps the backlog of any single drone.
	QueueMaxSize float64
}

// DefaultLimits returns the limits of the reference fleet.
func DefaultLimits() Limits {
	return Limits{
		MaxEfficiency: 20,
		QueueMaxSize:  20,
	}
}
