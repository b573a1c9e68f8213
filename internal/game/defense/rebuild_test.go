package defense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/testutil"
)

func TestRebuild_InactiveBeforeMinimumTurn(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, pos)
	_, err := g.Damage(pos, 50)
	require.NoError(t, err)

	b := newBuilderStub(g, 0, DefaultTuning().MinTurnRebuild-1, 20)
	d.Rebuild(g, b)

	assert.Zero(t, d.RebuildQueueLen())
	assert.NotNil(t, g.UnitAt(pos), "damaged turret left standing")
}

func TestRebuild_QueuesAndRespawnsWornTurret(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, pos)
	_, err := g.Damage(pos, 25) // 50 of 75, under the 0.75 threshold
	require.NoError(t, err)

	turn := DefaultTuning().MinTurnRebuild
	b := newBuilderStub(g, 0, turn, 20)
	d.Rebuild(g, b)

	assert.Equal(t, 1, d.RebuildQueueLen())
	assert.Nil(t, g.UnitAt(pos), "worn turret demolished")

	// Next turn the queued turret comes back at full health with wall cover
	b = newBuilderStub(g, 0, turn+1, 20)
	d.Rebuild(g, b)

	assert.Zero(t, d.RebuildQueueLen())
	rebuilt := g.UnitAt(pos)
	require.NotNil(t, rebuilt)
	assert.Equal(t, core.Turret, rebuilt.Kind)
	assert.Equal(t, 75.0, rebuilt.Health)
	assert.NotNil(t, g.UnitAt(core.Coordinate{X: 13, Y: 10}), "wall above")
	assert.NotNil(t, g.UnitAt(core.Coordinate{X: 14, Y: 9}), "wall right")
	assert.NotNil(t, g.UnitAt(core.Coordinate{X: 12, Y: 9}), "wall left")
}

func TestRebuild_RestoresUpgradeState(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Wall, 0, pos)
	testutil.MustUpgrade(t, g, pos) // max health 120
	_, err := g.Damage(pos, 40)     // 80 of 120, under threshold
	require.NoError(t, err)

	turn := DefaultTuning().MinTurnRebuild
	b := newBuilderStub(g, 0, turn, 20)
	d.Rebuild(g, b)
	require.Equal(t, 1, d.RebuildQueueLen())

	b = newBuilderStub(g, 0, turn+1, 20)
	d.Rebuild(g, b)

	rebuilt := g.UnitAt(pos)
	require.NotNil(t, rebuilt)
	assert.True(t, rebuilt.Upgraded, "upgrade state carried over")
	assert.Equal(t, 120.0, rebuilt.Health)
}

func TestRebuild_HealthyStructuresLeftAlone(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, pos)
	_, err := g.Damage(pos, 10) // 65 of 75, above threshold
	require.NoError(t, err)

	b := newBuilderStub(g, 0, DefaultTuning().MinTurnRebuild, 20)
	d.Rebuild(g, b)

	assert.Zero(t, d.RebuildQueueLen())
	assert.NotNil(t, g.UnitAt(pos))
}

func TestRebuild_QueuePersistsWhenBroke(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, pos)
	_, err := g.Damage(pos, 25)
	require.NoError(t, err)

	turn := DefaultTuning().MinTurnRebuild
	b := newBuilderStub(g, 0, turn, 20)
	d.Rebuild(g, b)
	require.Equal(t, 1, d.RebuildQueueLen())

	// Not enough for the turret: the entry waits for a richer turn
	b = newBuilderStub(g, 0, turn+1, 1)
	d.Rebuild(g, b)

	assert.Equal(t, 1, d.RebuildQueueLen())
	assert.Nil(t, g.UnitAt(pos))
}

func TestRebuild_DropsEntryWhenTileReoccupied(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, pos)
	_, err := g.Damage(pos, 25)
	require.NoError(t, err)

	turn := DefaultTuning().MinTurnRebuild
	b := newBuilderStub(g, 0, turn, 20)
	d.Rebuild(g, b)
	require.Equal(t, 1, d.RebuildQueueLen())

	// Something else claims the tile before the respawn
	testutil.MustPlace(t, g, core.Wall, 0, pos)
	b = newBuilderStub(g, 0, turn+1, 20)
	d.Rebuild(g, b)

	assert.Zero(t, d.RebuildQueueLen())
	assert.Equal(t, core.Wall, g.UnitAt(pos).Kind, "squatter kept, entry dropped")
}

func TestRebuild_OldestEntryServedFirst(t *testing.T) {
	g := testutil.NewTestGrid()
	d := newTestDefense(t, 0, g)

	first := core.Coordinate{X: 13, Y: 9}
	second := core.Coordinate{X: 16, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, first)
	testutil.MustPlace(t, g, core.Turret, 0, second)
	_, err := g.Damage(first, 25)
	require.NoError(t, err)
	_, err = g.Damage(second, 25)
	require.NoError(t, err)

	turn := DefaultTuning().MinTurnRebuild
	b := newBuilderStub(g, 0, turn, 20)
	d.Rebuild(g, b)
	require.Equal(t, 2, d.RebuildQueueLen())

	// Budget covers exactly one turret; the row-major-first entry wins
	b = newBuilderStub(g, 0, turn+1, 2)
	d.Rebuild(g, b)

	assert.NotNil(t, g.UnitAt(first))
	assert.Nil(t, g.UnitAt(second))
	assert.Equal(t, 1, d.RebuildQueueLen())
}

func TestRebuild_PublishesQueuedEvents(t *testing.T) {
	g := testutil.NewTestGrid()
	bus := events.NewBus()
	rec := &recordingSubscriber{types: map[string]bool{events.TypeRebuildQueued: true}}
	bus.Subscribe(rec)

	d, err := New(0, g, core.DefaultStats(), DefaultTuning(), bus, "test-match", testutil.NopLogger())
	require.NoError(t, err)

	pos := core.Coordinate{X: 13, Y: 9}
	testutil.MustPlace(t, g, core.Turret, 0, pos)
	_, derr := g.Damage(pos, 25)
	require.NoError(t, derr)

	b := newBuilderStub(g, 0, DefaultTuning().MinTurnRebuild, 20)
	d.Rebuild(g, b)

	require.Len(t, rec.events, 1)
	queued, ok := rec.events[0].(events.RebuildQueuedEvent)
	require.True(t, ok)
	assert.Equal(t, core.Turret, queued.Kind)
	assert.Equal(t, pos, queued.Loc)
	assert.False(t, queued.Upgraded)
}
