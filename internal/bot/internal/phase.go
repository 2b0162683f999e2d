package internal

// HandPhase describes how a lead should treat the current hand.
type HandPhase int

const (
	// PhaseShedding: the hand is still large, so the lowest single goes first.
	PhaseShedding HandPhase = iota
	// PhaseShaping: the hand is small enough to lead its structured combinations.
	PhaseShaping
)

func (p HandPhase) String() string {
	if p == PhaseShedding {
		return "shedding"
	}
	return "shaping"
}

// DetectPhase compares the hand size against the lead threshold.
func DetectPhase(handSize, leadThreshold int) HandPhase {
	if handSize > leadThreshold {
		return PhaseShedding
	}
	return PhaseShaping
}
