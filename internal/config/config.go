package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"guandan/internal/bot"
	"guandan/internal/domain"
)

// EnvPrefix is prepended to every environment override, e.g. GUANDAN_TOKEN_SECRET.
const EnvPrefix = "GUANDAN"

var ErrInvalidConfig = errors.New("invalid assistant config")

type TokenConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type AssistantConfig struct {
	// LeadThreshold: hands larger than this lead their lowest single.
	LeadThreshold       int    `mapstructure:"lead_threshold"`
	DistinctSuitPairs   bool   `mapstructure:"distinct_suit_pairs"`
	LongerStraightBeats bool   `mapstructure:"longer_straight_beats"`
	Strategy            string `mapstructure:"strategy"`
	Decks               int    `mapstructure:"decks"`
	// HandSize is how many cards the simulated recognizer deals.
	HandSize int         `mapstructure:"hand_size"`
	LogLevel string      `mapstructure:"log_level"`
	Token    TokenConfig `mapstructure:"token"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lead_threshold", bot.DefaultLeadThreshold)
	v.SetDefault("distinct_suit_pairs", domain.DefaultRules.DistinctSuitPairs)
	v.SetDefault("longer_straight_beats", domain.DefaultRules.LongerStraightBeats)
	v.SetDefault("strategy", "greedy")
	v.SetDefault("decks", domain.DefaultDecks)
	v.SetDefault("hand_size", domain.DefaultHandSize)
	v.SetDefault("log_level", "info")
	v.SetDefault("token.secret", "")
	v.SetDefault("token.issuer", "guandan")
	v.SetDefault("token.ttl", 12*time.Hour)
}

// Load reads the config file at path (JSON or YAML by extension) over the defaults and
// applies GUANDAN_* environment overrides. An empty path uses defaults and environment only.
func Load(path string) (*AssistantConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read assistant config: %w", err)
		}
	}

	var c AssistantConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assistant config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the configuration used when nothing is loaded.
func Default() *AssistantConfig {
	return &AssistantConfig{
		LeadThreshold:       bot.DefaultLeadThreshold,
		DistinctSuitPairs:   domain.DefaultRules.DistinctSuitPairs,
		LongerStraightBeats: domain.DefaultRules.LongerStraightBeats,
		Strategy:            "greedy",
		Decks:               domain.DefaultDecks,
		HandSize:            domain.DefaultHandSize,
		LogLevel:            "info",
		Token:               TokenConfig{Issuer: "guandan", TTL: 12 * time.Hour},
	}
}

// Validate rejects values the engine cannot run with.
func (c *AssistantConfig) Validate() error {
	if c.LeadThreshold < 0 {
		return fmt.Errorf("%w: lead_threshold must not be negative", ErrInvalidConfig)
	}
	if c.Decks < 1 {
		return fmt.Errorf("%w: decks must be at least 1", ErrInvalidConfig)
	}
	if c.HandSize < 1 {
		return fmt.Errorf("%w: hand_size must be at least 1", ErrInvalidConfig)
	}
	if _, err := bot.ParseBotLevel(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Tuning maps the config onto the strategy knobs.
func (c *AssistantConfig) Tuning() bot.Tuning {
	return bot.Tuning{
		LeadThreshold: c.LeadThreshold,
		Rules: domain.Rules{
			DistinctSuitPairs:   c.DistinctSuitPairs,
			LongerStraightBeats: c.LongerStraightBeats,
		},
	}
}

// NewBrain builds the configured strategy.
func (c *AssistantConfig) NewBrain() (bot.Brain, error) {
	level, err := bot.ParseBotLevel(c.Strategy)
	if err != nil {
		return nil, err
	}
	return bot.NewBrain(level, c.Tuning())
}

var (
	cfg      *AssistantConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadAssistantConfig loads the process-wide configuration from the given path.
// Only the first call has any effect.
func LoadAssistantConfig(path string) error {
	loadOnce.Do(func() {
		c, err := Load(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetAssistantConfig returns the global configuration, or the defaults if none was loaded.
func GetAssistantConfig() *AssistantConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}
