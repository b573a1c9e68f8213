package common

import (
	"image/color"
)

// PlayerColors defines the color scheme for each player
var PlayerColors = map[int]color.Color{
	-1: color.RGBA{120, 120, 120, 255}, // Neutral – gray
	0:  color.RGBA{200, 50, 50, 255},   // Red
	1:  color.RGBA{50, 100, 200, 255},  // Blue
}

// Structure colors
var (
	WallColor        = color.RGBA{170, 170, 170, 255}
	TurretColor      = color.RGBA{220, 120, 40, 255}
	FactoryColor     = color.RGBA{140, 90, 200, 255}
	UpgradeRingColor = color.RGBA{250, 220, 90, 255}
)

// UI colors
var (
	BackgroundColor = color.Black
	GridLineColor   = color.RGBA{50, 50, 50, 255}
	ArenaEdgeColor  = color.RGBA{90, 90, 90, 255}
	DamageHeatColor = color.RGBA{200, 40, 40, 90}
)
