package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/testutil"
)

// newSquareRegion builds the canonical 5x5 square test region: perimeter
// boundary, 3x3 interior, all four edges incoming.
func newSquareRegion(t *testing.T) *Region {
	t.Helper()
	r, err := New(0, 0,
		testutil.SquareVertices(11, 3, 4),
		testutil.SquareEdges(11, 3, 4),
		nil, nil,
		core.DefaultStats(), DefaultTuning(), nil)
	require.NoError(t, err)
	return r
}

func TestNew_SquareClassification(t *testing.T) {
	r := newSquareRegion(t)

	// Every tile in bounds is exactly one of outside/boundary/interior, and
	// with a square polygon nothing is outside.
	boundaryCount, interiorCount := 0, 0
	for y := 3; y <= 7; y++ {
		for x := 11; x <= 15; x++ {
			switch r.StateAt(core.Coordinate{X: x, Y: y}) {
			case Boundary:
				boundaryCount++
			case Interior:
				interiorCount++
			default:
				t.Errorf("tile (%d,%d) classified outside", x, y)
			}
		}
	}

	assert.Equal(t, 16, boundaryCount, "perimeter of a 5x5 square")
	assert.Equal(t, 9, interiorCount, "(5-2)x(5-2) interior")
	assert.Equal(t, 9, r.TileCount())
	assert.Len(t, r.BoundaryTiles(), 16)
	assert.Len(t, r.Coordinates(), 25)
}

func TestNew_TriangleClassification(t *testing.T) {
	// Front-left defense triangle from the standard layout
	vertices := []core.Coordinate{{X: 0, Y: 13}, {X: 7, Y: 13}, {X: 7, Y: 6}}
	r, err := New(0, 0, vertices,
		[]core.Edge{
			core.NewEdge(core.Coordinate{X: 0, Y: 13}, core.Coordinate{X: 7, Y: 13}),
			core.NewEdge(core.Coordinate{X: 7, Y: 13}, core.Coordinate{X: 7, Y: 6}),
		},
		nil,
		[]core.Edge{core.NewEdge(core.Coordinate{X: 0, Y: 13}, core.Coordinate{X: 7, Y: 6})},
		core.DefaultStats(), DefaultTuning(), nil)
	require.NoError(t, err)

	// Vertices are boundary tiles
	for _, v := range vertices {
		assert.Equal(t, Boundary, r.StateAt(v), "vertex %v", v)
	}
	// The hypotenuse runs diagonally from (0,13) to (7,6)
	assert.Equal(t, Boundary, r.StateAt(core.Coordinate{X: 3, Y: 10}))
	// Strictly inside the triangle
	assert.Equal(t, Interior, r.StateAt(core.Coordinate{X: 5, Y: 11}))
	// Below the hypotenuse
	assert.Equal(t, Outside, r.StateAt(core.Coordinate{X: 1, Y: 7}))

	// Partition: every bounds tile has exactly one state
	total := 0
	for y := 6; y <= 13; y++ {
		for x := 0; x <= 7; x++ {
			s := r.StateAt(core.Coordinate{X: x, Y: y})
			assert.Contains(t, []TileState{Outside, Boundary, Interior}, s)
			if s == Interior {
				total++
			}
		}
	}
	assert.Equal(t, r.TileCount(), total)
}

func TestNew_RejectsBadGeometry(t *testing.T) {
	stats := core.DefaultStats()

	t.Run("TooFewVertices", func(t *testing.T) {
		_, err := New(0, 0, []core.Coordinate{{X: 0, Y: 0}, {X: 3, Y: 0}}, nil, nil, nil, stats, DefaultTuning(), nil)
		assert.ErrorIs(t, err, ErrTooFewVertices)
	})

	t.Run("ZeroArea", func(t *testing.T) {
		collinear := []core.Coordinate{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}}
		_, err := New(0, 0, collinear, nil, nil, nil, stats, DefaultTuning(), nil)
		assert.ErrorIs(t, err, ErrDegeneratePolygon)
	})

	t.Run("UnsupportedSlope", func(t *testing.T) {
		skewed := []core.Coordinate{{X: 0, Y: 0}, {X: 5, Y: 2}, {X: 0, Y: 4}}
		_, err := New(0, 0, skewed, nil, nil, nil, stats, DefaultTuning(), nil)
		assert.ErrorIs(t, err, core.ErrUnsupportedSlope)
	})
}

func TestUpdateStructures_InventoryAndOccupants(t *testing.T) {
	g := testutil.NewTestGrid()
	r := newSquareRegion(t)

	turret := testutil.MustPlace(t, g, core.Turret, 0, core.Coordinate{X: 13, Y: 5})
	wall := testutil.MustPlace(t, g, core.Wall, 0, core.Coordinate{X: 12, Y: 4})
	r.UpdateStructures(g)

	assert.Equal(t, []*core.Unit{turret}, r.Units(core.Turret))
	assert.Equal(t, []*core.Unit{wall}, r.Units(core.Wall))
	assert.Same(t, turret, r.OccupantAt(core.Coordinate{X: 13, Y: 5}))
	assert.Same(t, wall, r.OccupantAt(core.Coordinate{X: 12, Y: 4}))

	// Removal clears the prior occupant on the next scan
	_, err := g.Remove(core.Coordinate{X: 12, Y: 4})
	require.NoError(t, err)
	r.UpdateStructures(g)
	assert.Nil(t, r.OccupantAt(core.Coordinate{X: 12, Y: 4}))
	assert.Empty(t, r.Units(core.Wall))
}

func TestSharedBoundary_TwoRegionsAgree(t *testing.T) {
	g := testutil.NewTestGrid()

	left, err := New(0, 0,
		testutil.SquareVertices(7, 3, 4),
		testutil.SquareEdges(7, 3, 4),
		nil, nil, core.DefaultStats(), DefaultTuning(), nil)
	require.NoError(t, err)
	right, err := New(1, 0,
		testutil.SquareVertices(11, 3, 4),
		testutil.SquareEdges(11, 3, 4),
		nil, nil, core.DefaultStats(), DefaultTuning(), nil)
	require.NoError(t, err)

	// x=11 is the shared edge between the two squares
	shared := core.Coordinate{X: 11, Y: 5}
	assert.Equal(t, Boundary, left.StateAt(shared))
	assert.Equal(t, Boundary, right.StateAt(shared))

	wall := testutil.MustPlace(t, g, core.Wall, 0, shared)
	left.UpdateStructures(g)
	right.UpdateStructures(g)

	assert.Same(t, wall, left.OccupantAt(shared))
	assert.Same(t, wall, right.OccupantAt(shared))
}
