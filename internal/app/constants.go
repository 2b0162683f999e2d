package app

// Turn identifies who is expected to play next.
type Turn int

const (
	TurnMine Turn = iota
	TurnOpponent
)

func (t Turn) String() string {
	if t == TurnMine {
		return "mine"
	}
	return "opponent"
}

// State is the strategy state derived from the outstanding opponent play.
type State int

const (
	// StateMyLead: no opponent play awaits a response.
	StateMyLead State = iota
	// StateMyResponse: the opponent has an unanswered play.
	StateMyResponse
)

func (s State) String() string {
	if s == StateMyLead {
		return "lead"
	}
	return "response"
}

// DefaultTokenTTLSeconds is how long a session token stays valid when no TTL is configured.
const DefaultTokenTTLSeconds = 12 * 60 * 60
