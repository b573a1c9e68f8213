// Package renderer draws the arena and both defenses onto an Ebiten screen.
package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/tacticore/terminal-defense/internal/common"
	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/defense"
)

// StructureLabelColor is used for the kind letter drawn on each structure.
var StructureLabelColor = color.White

// BoardRenderer blits the diamond arena tile by tile. The board's y axis
// points up, the screen's down, so rows are flipped during drawing.
type BoardRenderer struct {
	tileSize    int
	showDamage  bool
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use
func NewBoardRenderer(tileSize int, f font.Face, showDamage bool) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f, showDamage: showDamage}
}

// Draw renders the grid and, when enabled, each defense's damage field
func (br *BoardRenderer) Draw(screen *ebiten.Image, g *core.Grid, defenses [2]*defense.Defense) {
	if g == nil {
		return
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := core.Coordinate{X: x, Y: y}
			screenX := float64(x * br.tileSize)
			screenY := float64((g.H - 1 - y) * br.tileSize)

			cell := ebiten.NewImage(br.tileSize, br.tileSize)

			if !g.InArena(c) {
				cell.Fill(common.BackgroundColor)
				br.blit(screen, cell, screenX, screenY)
				continue
			}

			cell.Fill(common.GridLineColor)
			inner := ebiten.NewImage(br.tileSize-1, br.tileSize-1)
			inner.Fill(color.RGBA{25, 25, 30, 255})
			cell.DrawImage(inner, &ebiten.DrawImageOptions{})

			if br.showDamage {
				br.drawDamage(cell, c, defenses)
			}
			u := g.UnitAt(c)
			if u != nil {
				br.drawStructure(cell, u)
			}

			br.blit(screen, cell, screenX, screenY)

			if u != nil && br.defaultFont != nil {
				br.drawLabel(screen, u, screenX, screenY)
			}
		}
	}
}

// drawLabel centers the structure's kind letter over its tile
func (br *BoardRenderer) drawLabel(screen *ebiten.Image, u *core.Unit, screenX, screenY float64) {
	var label string
	switch u.Kind {
	case core.Wall:
		label = "W"
	case core.Turret:
		label = "T"
	case core.Factory:
		label = "F"
	default:
		return
	}

	b := text.BoundString(br.defaultFont, label)
	textW := b.Max.X - b.Min.X
	textH := b.Max.Y - b.Min.Y

	x := int(screenX) + (br.tileSize-textW)/2
	y := int(screenY) + (br.tileSize+textH)/2
	text.Draw(screen, label, br.defaultFont, x, y, StructureLabelColor)
}

// drawDamage overlays turret coverage, deeper red for heavier fire
func (br *BoardRenderer) drawDamage(cell *ebiten.Image, c core.Coordinate, defenses [2]*defense.Defense) {
	for _, d := range defenses {
		if d == nil {
			continue
		}
		dmg := d.DamageAt(c)
		if dmg <= 0 {
			continue
		}
		alpha := uint8(40 + min(dmg, 30)*5)
		overlay := ebiten.NewImage(br.tileSize, br.tileSize)
		heat := common.DamageHeatColor
		heat.A = alpha
		overlay.Fill(heat)
		cell.DrawImage(overlay, &ebiten.DrawImageOptions{})
	}
}

// drawStructure renders a structure as an owner-colored square with a kind
// marker; upgraded structures get a ring.
func (br *BoardRenderer) drawStructure(cell *ebiten.Image, u *core.Unit) {
	var kindColor color.RGBA
	switch u.Kind {
	case core.Wall:
		kindColor = common.WallColor
	case core.Turret:
		kindColor = common.TurretColor
	case core.Factory:
		kindColor = common.FactoryColor
	default:
		return
	}

	ownerColor, ok := common.PlayerColors[u.Owner].(color.RGBA)
	if !ok {
		ownerColor = common.PlayerColors[-1].(color.RGBA)
	}

	// Owner border
	m := br.tileSize * 3 / 4
	border := ebiten.NewImage(m, m)
	border.Fill(ownerColor)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(br.tileSize-m)/2, float64(br.tileSize-m)/2)
	cell.DrawImage(border, op)

	// Kind fill
	k := m - 4
	if k < 1 {
		k = 1
	}
	fill := ebiten.NewImage(k, k)
	fill.Fill(kindColor)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(br.tileSize-k)/2, float64(br.tileSize-k)/2)
	cell.DrawImage(fill, op)

	if u.Upgraded {
		r := k / 3
		if r < 1 {
			r = 1
		}
		ring := ebiten.NewImage(r, r)
		ring.Fill(common.UpgradeRingColor)
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(br.tileSize-r)/2, float64(br.tileSize-r)/2)
		cell.DrawImage(ring, op)
	}
}

func (br *BoardRenderer) blit(screen, cell *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(cell, op)
}
