package bot

import (
	"fmt"
	"strings"
)

// BotLevel selects a strategy implementation.
type BotLevel int

const (
	// BotLevelGreedy answers with the weakest legal counter and sheds low cards on lead.
	BotLevelGreedy BotLevel = iota
)

var botLevelNames = map[string]BotLevel{
	"greedy": BotLevelGreedy,
}

// ParseBotLevel resolves a configured strategy name.
func ParseBotLevel(name string) (BotLevel, error) {
	if name == "" {
		return BotLevelGreedy, nil
	}
	level, ok := botLevelNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown strategy: %q", name)
	}
	return level, nil
}

// NewBrain creates a new strategy based on the specified level.
func NewBrain(level BotLevel, tuning Tuning) (Brain, error) {
	switch level {
	case BotLevelGreedy:
		return NewGreedyBot(tuning), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
