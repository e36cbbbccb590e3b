package drone

import "fmt"

// ErrorPolicy decides what a fleet does when a distribution round rejects its
// input.
type ErrorPolicy int

const (
	// ErrorPolicyAbort stops the fleet at the failing tick.
	ErrorPolicyAbort ErrorPolicy = iota

	// ErrorPolicySkip leaves the queues untouched and moves on to the next
	// tick.
	ErrorPolicySkip
)

// ParseErrorPolicy converts "abort" or "skip" into an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "abort":
		return ErrorPolicyAbort, nil
	case "skip":
		return ErrorPolicySkip, nil
	}

	return ErrorPolicyAbort, fmt.Errorf("unknown error policy %q", s)
}

func (p ErrorPolicy) String() string {
	switch p {
	case ErrorPolicyAbort:
		return "abort"
	case ErrorPolicySkip:
		return "skip"
	}

	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}
