package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/testutil"
)

func TestDamageField_CenteredTurretCoversInterior(t *testing.T) {
	g := testutil.NewTestGrid()
	r := newSquareRegion(t)

	// Radius 2.5 reaches every interior tile of the 3x3 square from its center
	testutil.MustPlace(t, g, core.Turret, 0, core.Coordinate{X: 13, Y: 5})
	r.UpdateStructures(g)

	for _, c := range r.InteriorTiles() {
		assert.Equal(t, 5.0, r.DamageAt(c), "tile %v", c)
	}
	assert.Empty(t, r.UndefendedTiles())
	assert.Equal(t, 5.0, r.AverageTileDamage())
}

func TestDamageField_TurretRemovalZeroesField(t *testing.T) {
	g := testutil.NewTestGrid()
	r := newSquareRegion(t)
	loc := core.Coordinate{X: 13, Y: 5}

	testutil.MustPlace(t, g, core.Turret, 0, loc)
	r.UpdateStructures(g)
	require.Empty(t, r.UndefendedTiles())

	_, err := g.Remove(loc)
	require.NoError(t, err)
	r.UpdateStructures(g)

	for _, c := range r.InteriorTiles() {
		assert.Zero(t, r.DamageAt(c), "tile %v", c)
	}
	assert.Len(t, r.UndefendedTiles(), r.TileCount())
	assert.Zero(t, r.AverageTileDamage())
}

func TestAverageTileDamage_ScalesWithTurretDamage(t *testing.T) {
	g := testutil.NewTestGrid()

	stats := core.DefaultStats()
	r1, err := New(0, 0, testutil.SquareVertices(11, 3, 4), testutil.SquareEdges(11, 3, 4),
		nil, nil, stats, DefaultTuning(), nil)
	require.NoError(t, err)

	doubled := core.DefaultStats()
	s := doubled[core.Turret]
	s.Damage *= 2
	doubled[core.Turret] = s
	r2, err := New(0, 0, testutil.SquareVertices(11, 3, 4), testutil.SquareEdges(11, 3, 4),
		nil, nil, doubled, DefaultTuning(), nil)
	require.NoError(t, err)

	testutil.MustPlace(t, g, core.Turret, 0, core.Coordinate{X: 13, Y: 5})
	r1.UpdateStructures(g)
	r2.UpdateStructures(g)

	assert.InDelta(t, 2*r1.AverageTileDamage(), r2.AverageTileDamage(), 1e-9)
}

func TestCostAndHealthAggregates(t *testing.T) {
	g := testutil.NewTestGrid()
	r := newSquareRegion(t)

	testutil.MustPlace(t, g, core.Turret, 0, core.Coordinate{X: 13, Y: 5}) // cost 2, hp 75
	testutil.MustPlace(t, g, core.Wall, 0, core.Coordinate{X: 12, Y: 4})  // cost 1, hp 60
	testutil.MustPlace(t, g, core.Factory, 0, core.Coordinate{X: 14, Y: 6}) // cost 9, hp 30
	r.UpdateStructures(g)

	assert.InDelta(t, 12.0, r.Cost(false, false), 1e-9)
	assert.InDelta(t, 3.0, r.Cost(false, true), 1e-9, "defensive cost excludes the factory")
	assert.InDelta(t, 165.0, r.OverallHealth(false), 1e-9)
	assert.InDelta(t, 135.0, r.OverallHealth(true), 1e-9)

	// Half-health wall prorates its cost contribution
	_, err := g.Damage(core.Coordinate{X: 12, Y: 4}, 30)
	require.NoError(t, err)
	r.UpdateStructures(g)
	assert.InDelta(t, 2.5, r.Cost(true, true), 1e-9)
}

func TestStatistics_Snapshot(t *testing.T) {
	g := testutil.NewTestGrid()
	r := newSquareRegion(t)
	testutil.MustPlace(t, g, core.Turret, 0, core.Coordinate{X: 13, Y: 5})
	testutil.MustPlace(t, g, core.Wall, 0, core.Coordinate{X: 13, Y: 6})
	r.UpdateStructures(g)

	stats := r.Statistics()
	assert.Equal(t, 1, stats.TurretCount)
	assert.Equal(t, 1, stats.WallCount)
	assert.Equal(t, 0, stats.FactoryCount)
	assert.Zero(t, stats.UndefendedTileCount)
	assert.InDelta(t, 135.0, stats.HealthDefensive, 1e-9)
	assert.InDelta(t, 5.0, stats.AvgTileDamage, 1e-9)
}

func TestSimulateAverageDamage(t *testing.T) {
	g := testutil.NewTestGrid()
	r := newSquareRegion(t)

	t.Run("NoTurretsNoDamage", func(t *testing.T) {
		r.UpdateStructures(g)
		assert.Zero(t, r.SimulateAverageDamage(core.Scout))
	})

	testutil.MustPlace(t, g, core.Turret, 0, core.Coordinate{X: 13, Y: 5})
	r.UpdateStructures(g)

	t.Run("FasterUnitsTakeLess", func(t *testing.T) {
		scout := r.SimulateAverageDamage(core.Scout)             // speed 1
		interceptor := r.SimulateAverageDamage(core.Interceptor) // speed 4
		require.Greater(t, scout, 0.0)
		assert.InDelta(t, scout/4, interceptor, 1e-9)
	})

	t.Run("NoPathsReturnsZero", func(t *testing.T) {
		// No incoming edges means no entrances and no discovered paths
		isolated, err := New(2, 0, testutil.SquareVertices(11, 3, 4), nil, nil, nil,
			core.DefaultStats(), DefaultTuning(), nil)
		require.NoError(t, err)
		isolated.UpdateStructures(g)
		assert.Zero(t, isolated.SimulateAverageDamage(core.Scout))
	})
}
