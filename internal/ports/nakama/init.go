package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"guandan/internal/app"
	"guandan/internal/config"
	"guandan/internal/ports/simulated"
)

// InitModule wires the assistant RPCs into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	if err := config.LoadAssistantConfig(env[EnvConfigPath]); err != nil {
		logger.Error("Failed to load assistant config: %v", err)
		return err
	}
	cfg := *config.GetAssistantConfig()

	if secret := env[EnvTokenSecret]; secret != "" {
		cfg.Token.Secret = secret
	}
	if cfg.Token.Secret == "" {
		// Tokens then only survive until the next restart.
		cfg.Token.Secret = app.NewSessionID()
		logger.Warn("Session token secret missing from config and env, using an ephemeral secret.")
	}

	module, err := NewModule(&cfg, simulated.NewRecognizer(nil, cfg.HandSize))
	if err != nil {
		return err
	}
	if err := module.RegisterRPCs(initializer); err != nil {
		return err
	}

	logger.Info("Guandan assistant module loaded (strategy=%s, decks=%d).", cfg.Strategy, cfg.Decks)
	return nil
}
