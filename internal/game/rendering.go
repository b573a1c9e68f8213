package game

import (
	"fmt"
	"strings"

	"github.com/tacticore/terminal-defense/internal/game/core"
)

// This file contains the ASCII board rendering used by the match CLI.

// ANSI color codes for board rendering
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue}

// Board returns a string representation of the arena with both players'
// structures. Upgraded structures render uppercase.
func (e *Engine) Board() string {
	const (
		EmptySymbol   = "·"
		OutsideSymbol = " "
		WallSymbol    = "w"
		TurretSymbol  = "t"
		FactorySymbol = "f"
	)

	g := e.state.Grid
	// Each cell takes 2 chars plus ANSI codes; headers and footer on top
	estimatedSize := (g.W*12 + 10) * (g.H + 3)

	var sb strings.Builder
	sb.Grow(estimatedSize)

	sb.WriteString("    ")
	for x := 0; x < g.W; x++ {
		fmt.Fprintf(&sb, "%2d", x%100)
	}
	sb.WriteString("\n")

	// Top row first so player 1's half renders above the midline
	for y := g.H - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%3d ", y)
		for x := 0; x < g.W; x++ {
			c := core.Coordinate{X: x, Y: y}
			if !g.InArena(c) {
				sb.WriteString(" ")
				sb.WriteString(OutsideSymbol)
				continue
			}
			u := g.UnitAt(c)
			if u == nil {
				sb.WriteString(" ")
				sb.WriteString(ColorGray)
				sb.WriteString(EmptySymbol)
				sb.WriteString(ColorReset)
				continue
			}

			symbol := EmptySymbol
			switch u.Kind {
			case core.Wall:
				symbol = WallSymbol
			case core.Turret:
				symbol = TurretSymbol
			case core.Factory:
				symbol = FactorySymbol
			}
			if u.Upgraded {
				symbol = strings.ToUpper(symbol)
			}
			sb.WriteString(" ")
			if u.Owner >= 0 && u.Owner < len(playerColors) {
				sb.WriteString(playerColors[u.Owner])
			}
			sb.WriteString(symbol)
			sb.WriteString(ColorReset)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nTurn %d  P0 resources %.1f  P1 resources %.1f\n",
		e.state.Turn, e.state.Players[0].Resources, e.state.Players[1].Resources)
	return sb.String()
}

// RegionSummary returns a one-line-per-region report for a player
func (e *Engine) RegionSummary(player int) string {
	var sb strings.Builder
	d := e.defenses[player]
	d.Update(e.state.Grid)
	for id, s := range d.Statistics() {
		fmt.Fprintf(&sb, "region %d: turrets=%d walls=%d health=%.0f undefended=%d avg_dmg=%.2f\n",
			id, s.TurretCount, s.WallCount, s.HealthDefensive, s.UndefendedTileCount, s.AvgTileDamage)
	}
	return sb.String()
}
