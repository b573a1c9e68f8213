// Package ui hosts the Ebiten viewer that replays a match as it runs.
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font/basicfont"

	"github.com/tacticore/terminal-defense/internal/config"
	"github.com/tacticore/terminal-defense/internal/game"
	"github.com/tacticore/terminal-defense/internal/game/defense"
	"github.com/tacticore/terminal-defense/internal/ui/renderer"
)

// Viewer steps the engine on a fixed frame interval and draws the board
type Viewer struct {
	engine        *game.Engine
	cfg           *config.Config
	boardRenderer *renderer.BoardRenderer
	turnTimer     int
}

// NewViewer creates an Ebiten game wrapping a match engine
func NewViewer(engine *game.Engine, cfg *config.Config) *Viewer {
	return &Viewer{
		engine:        engine,
		cfg:           cfg,
		boardRenderer: renderer.NewBoardRenderer(cfg.UI.Game.TileSize, basicfont.Face7x13, cfg.UI.Game.ShowDamage),
	}
}

// Update advances the match by one turn every turn interval
func (v *Viewer) Update() error {
	v.turnTimer++
	if v.turnTimer < v.cfg.UI.Game.TurnInterval || v.engine.Over() {
		return nil
	}
	v.turnTimer = 0
	return v.engine.Step()
}

// Draw renders the board and the per-player status line
func (v *Viewer) Draw(screen *ebiten.Image) {
	s := v.engine.State()
	defenses := [2]*defense.Defense{v.engine.Defense(0), v.engine.Defense(1)}
	v.boardRenderer.Draw(screen, s.Grid, defenses)

	statusY := s.Grid.H*v.cfg.UI.Game.TileSize + 5
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Turn: %d", s.Turn), 5, statusY)
	for i, p := range s.Players {
		status := fmt.Sprintf("Player %d: resources=%.1f cost=%.1f",
			p.ID, p.Resources, defenses[i].TotalCost(false, false))
		ebitenutil.DebugPrintAt(screen, status, 5, statusY+20+i*20)
	}
}

// Layout defines the Ebiten screen size
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return v.cfg.UI.Window.Width, v.cfg.UI.Window.Height
}
