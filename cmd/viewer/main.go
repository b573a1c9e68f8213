package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/config"
	"github.com/tacticore/terminal-defense/internal/game"
	"github.com/tacticore/terminal-defense/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	engine, err := game.NewEngine(cfg, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}

	ebiten.SetWindowSize(cfg.UI.Window.Width, cfg.UI.Window.Height)
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(ui.NewViewer(engine, cfg)); err != nil {
		logger.Fatal().Err(err).Msg("Viewer exited")
	}
}
