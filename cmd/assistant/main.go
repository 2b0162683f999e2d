package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"guandan/internal/app"
	"guandan/internal/config"
	"guandan/internal/ports/simulated"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML config file")
	seed := flag.Int64("seed", 0, "seed for the simulated recognizer (0 = time based)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	brain, err := cfg.NewBrain()
	if err != nil {
		logger.Error("Failed to build strategy", "error", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	recognizer := simulated.NewRecognizer(rand.New(rand.NewSource(*seed)), cfg.HandSize)

	logger.Info("Assistant ready", "strategy", cfg.Strategy, "lead_threshold", cfg.LeadThreshold, "decks", cfg.Decks)
	r := newREPL(app.NewSession(brain, cfg.Decks), recognizer, logger, os.Stdout)
	if err := r.Run(os.Stdin); err != nil {
		logger.Error("Input error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
