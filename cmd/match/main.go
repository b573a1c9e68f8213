package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/config"
	"github.com/tacticore/terminal-defense/internal/game"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/game/events/subscribers"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	showBoard := flag.Bool("board", false, "print the board after every turn")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure logging: %v\n", err)
		os.Exit(1)
	}

	bus := events.NewBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("match_logger", logger, zerolog.DebugLevel))

	engine, err := game.NewEngine(cfg, bus, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}
	logger.Info().Str("match_id", engine.MatchID).Msg("Match started")

	for !engine.Over() {
		if err := engine.Step(); err != nil {
			logger.Fatal().Err(err).Msg("Match step failed")
		}
		if *showBoard {
			fmt.Println(engine.Board())
		}
	}

	m := engine.Timer().Metrics()
	logger.Info().
		Int64("turns", m.Turns).
		Int64("overruns", m.Overruns).
		Dur("avg_turn", m.Average).
		Dur("peak_turn", m.Peak).
		Msg("Match finished")
	for player := 0; player <= 1; player++ {
		fmt.Printf("player %d final defenses:\n%s", player, engine.RegionSummary(player))
	}
}

func newLogger(cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
