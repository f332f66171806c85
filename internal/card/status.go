package card

// MasteryThreshold is the counter value at which a card counts as learned.
const MasteryThreshold uint8 = 2

// Status is the learning state derived from a mastery counter.
type Status int

const (
	// StatusNew cards have never been credited, or have been debited back to zero.
	StatusNew Status = iota
	// StatusLearning cards have some credit but are below the threshold.
	StatusLearning
	// StatusDone cards reached the threshold and are no longer asked.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusLearning:
		return "learning"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Classify maps a mastery counter to its status.
func Classify(streak uint8) Status {
	switch {
	case streak >= MasteryThreshold:
		return StatusDone
	case streak == 0:
		return StatusNew
	default:
		return StatusLearning
	}
}
