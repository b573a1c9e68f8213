package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/testutil"
)

func newTestView(s *State, player int, bus *events.Bus) *PlayerView {
	return s.View(player, core.DefaultStats(), bus, "test-match", testutil.NopLogger())
}

func TestPlayerView_SpawnChargesBalance(t *testing.T) {
	s := NewState(28, 28, 10)
	v := newTestView(s, 0, nil)

	ok := v.AttemptSpawn(core.Turret, core.Coordinate{X: 13, Y: 9})
	require.True(t, ok)
	assert.Equal(t, 8.0, v.Resources())
	assert.NotNil(t, s.Grid.UnitAt(core.Coordinate{X: 13, Y: 9}))
}

func TestPlayerView_SpawnRejections(t *testing.T) {
	s := NewState(28, 28, 2)
	v := newTestView(s, 0, nil)

	require.True(t, v.AttemptSpawn(core.Turret, core.Coordinate{X: 13, Y: 9}))

	tests := []struct {
		name string
		kind core.UnitKind
		loc  core.Coordinate
	}{
		{"broke", core.Turret, core.Coordinate{X: 15, Y: 9}},
		{"occupied tile", core.Wall, core.Coordinate{X: 13, Y: 9}},
		{"enemy half", core.Wall, core.Coordinate{X: 13, Y: 20}},
		{"outside arena", core.Wall, core.Coordinate{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, v.AttemptSpawn(tt.kind, tt.loc))
		})
	}
	assert.Equal(t, 0.0, v.Resources())
}

func TestPlayerView_UpgradeOwnershipAndBalance(t *testing.T) {
	s := NewState(28, 28, 20)
	p0 := newTestView(s, 0, nil)
	p1 := newTestView(s, 1, nil)

	loc := core.Coordinate{X: 13, Y: 9}
	require.True(t, p0.AttemptSpawn(core.Turret, loc))

	assert.False(t, p1.AttemptUpgrade(loc), "cannot upgrade the other side's turret")
	require.True(t, p0.AttemptUpgrade(loc))
	assert.False(t, p0.AttemptUpgrade(loc), "double upgrade rejected")

	assert.Equal(t, 14.0, p0.Resources()) // 2 spawn + 4 upgrade
	assert.True(t, s.Grid.UnitAt(loc).Upgraded)
}

func TestPlayerView_RemoveWithoutRefund(t *testing.T) {
	s := NewState(28, 28, 10)
	v := newTestView(s, 0, nil)

	loc := core.Coordinate{X: 13, Y: 9}
	require.True(t, v.AttemptSpawn(core.Wall, loc))
	require.True(t, v.AttemptRemove(loc))

	assert.Nil(t, s.Grid.UnitAt(loc))
	assert.Equal(t, 9.0, v.Resources(), "demolition refunds nothing")
	assert.False(t, v.AttemptRemove(loc), "empty tile")
}

func TestPlayerView_PublishesStructureEvents(t *testing.T) {
	s := NewState(28, 28, 20)
	bus := events.NewBus()
	rec := &recordingSubscriber{types: map[string]bool{
		events.TypeStructurePlaced:   true,
		events.TypeStructureUpgraded: true,
		events.TypeStructureRemoved:  true,
	}}
	bus.Subscribe(rec)

	v := newTestView(s, 0, bus)
	loc := core.Coordinate{X: 13, Y: 9}
	require.True(t, v.AttemptSpawn(core.Turret, loc))
	require.True(t, v.AttemptUpgrade(loc))
	require.True(t, v.AttemptRemove(loc))

	require.Len(t, rec.events, 3)
	assert.Equal(t, events.TypeStructurePlaced, rec.events[0].Type())
	assert.Equal(t, events.TypeStructureUpgraded, rec.events[1].Type())
	assert.Equal(t, events.TypeStructureRemoved, rec.events[2].Type())
}

func TestPlayerView_OwnHalfMirrored(t *testing.T) {
	s := NewState(28, 28, 10)
	p1 := newTestView(s, 1, nil)

	assert.True(t, p1.AttemptSpawn(core.Wall, core.Coordinate{X: 13, Y: 18}))
	assert.False(t, p1.AttemptSpawn(core.Wall, core.Coordinate{X: 13, Y: 9}), "bottom half belongs to player 0")
}

// recordingSubscriber captures matching events for assertions
type recordingSubscriber struct {
	types  map[string]bool
	events []events.Event
}

func (r *recordingSubscriber) ID() string { return "recording" }

func (r *recordingSubscriber) HandleEvent(e events.Event) { r.events = append(r.events, e) }

func (r *recordingSubscriber) InterestedIn(eventType string) bool { return r.types[eventType] }
