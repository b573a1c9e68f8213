package testutil

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tacticore/terminal-defense/internal/game/core"
)

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// NewTestGrid creates an empty full-size arena grid
func NewTestGrid() *core.Grid {
	return core.NewGrid(28, 28)
}

// MustPlace places a structure or fails the test
func MustPlace(t *testing.T, g *core.Grid, kind core.UnitKind, owner int, c core.Coordinate) *core.Unit {
	t.Helper()
	u, err := g.Place(kind, owner, c, core.DefaultStats())
	require.NoError(t, err)
	return u
}

// MustUpgrade upgrades the structure at the coordinate or fails the test
func MustUpgrade(t *testing.T, g *core.Grid, c core.Coordinate) *core.Unit {
	t.Helper()
	u, err := g.Upgrade(c, core.DefaultStats())
	require.NoError(t, err)
	return u
}

// SquareVertices returns the vertices of an axis-aligned square region with
// its lower-left corner at (x, y) and the given side length.
func SquareVertices(x, y, side int) []core.Coordinate {
	return []core.Coordinate{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

// SquareEdges returns all four perimeter edges of the square as one set,
// suitable for marking every side as an incoming boundary.
func SquareEdges(x, y, side int) []core.Edge {
	v := SquareVertices(x, y, side)
	return []core.Edge{
		core.NewEdge(v[0], v[1]),
		core.NewEdge(v[1], v[2]),
		core.NewEdge(v[2], v[3]),
		core.NewEdge(v[3], v[0]),
	}
}
