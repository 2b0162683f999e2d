package domain

const (
	// MinStraightLength is the shortest run of consecutive ranks that forms a straight.
	MinStraightLength = 5
	// MinBombSize is the smallest group of equal ranks that forms a bomb.
	MinBombSize = 4

	// DefaultDecks is the number of decks a Guandan table plays with.
	DefaultDecks = 2
	// DefaultHandSize is the opening hand size dealt by the simulated recognizer.
	DefaultHandSize = 13
)
