package game

import (
	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/events"
)

// Player tracks one side's spendable structure points
type Player struct {
	ID        int
	Resources float64
}

// State is the complete match state: the shared grid plus both players'
// balances. The Grid owns every unit; everything else holds pointers
// refreshed by scans.
type State struct {
	Turn    int
	Grid    *core.Grid
	Players [2]Player
}

// NewState creates an empty match state with the given starting balances
func NewState(w, h int, startingResources float64) *State {
	return &State{
		Grid: core.NewGrid(w, h),
		Players: [2]Player{
			{ID: 0, Resources: startingResources},
			{ID: 1, Resources: startingResources},
		},
	}
}

// PlayerView is one player's mutation surface over the shared state. It
// charges that player's balance for every build and publishes structure
// events; the defense heuristics only ever see this narrow face.
type PlayerView struct {
	state   *State
	player  int
	stats   core.StatsTable
	bus     *events.Bus
	matchID string
	logger  zerolog.Logger
}

// View returns a builder bound to the given player
func (s *State) View(player int, stats core.StatsTable, bus *events.Bus, matchID string, logger zerolog.Logger) *PlayerView {
	return &PlayerView{
		state:   s,
		player:  player,
		stats:   stats,
		bus:     bus,
		matchID: matchID,
		logger:  logger.With().Str("component", "player_view").Int("player", player).Logger(),
	}
}

// Turn returns the current turn number
func (v *PlayerView) Turn() int { return v.state.Turn }

// Resources returns the player's spendable balance
func (v *PlayerView) Resources() float64 { return v.state.Players[v.player].Resources }

// AttemptSpawn places a structure on the player's half if the balance covers
// it and the tile is free. Reports whether the spawn took effect.
func (v *PlayerView) AttemptSpawn(kind core.UnitKind, loc core.Coordinate) bool {
	cost := v.stats[kind].Cost
	if v.state.Players[v.player].Resources < cost {
		return false
	}
	if !v.onOwnHalf(loc) {
		return false
	}
	if _, err := v.state.Grid.Place(kind, v.player, loc, v.stats); err != nil {
		return false
	}
	v.state.Players[v.player].Resources -= cost
	v.publish(events.TypeStructurePlaced, kind, loc)
	return true
}

// AttemptUpgrade upgrades the structure at the coordinate if the player owns
// it and can pay.
func (v *PlayerView) AttemptUpgrade(loc core.Coordinate) bool {
	u := v.state.Grid.UnitAt(loc)
	if u == nil || u.Owner != v.player || u.Upgraded {
		return false
	}
	cost := v.stats[u.Kind].UpgradeCost
	if v.state.Players[v.player].Resources < cost {
		return false
	}
	if _, err := v.state.Grid.Upgrade(loc, v.stats); err != nil {
		return false
	}
	v.state.Players[v.player].Resources -= cost
	v.publish(events.TypeStructureUpgraded, u.Kind, loc)
	return true
}

// AttemptRemove demolishes the player's structure at the coordinate. Nothing
// is refunded.
func (v *PlayerView) AttemptRemove(loc core.Coordinate) bool {
	u := v.state.Grid.UnitAt(loc)
	if u == nil || u.Owner != v.player {
		return false
	}
	if _, err := v.state.Grid.Remove(loc); err != nil {
		return false
	}
	v.publish(events.TypeStructureRemoved, u.Kind, loc)
	return true
}

// onOwnHalf reports whether the coordinate lies on the player's side of the
// midline.
func (v *PlayerView) onOwnHalf(loc core.Coordinate) bool {
	half := v.state.Grid.HalfHeight()
	if v.player == 0 {
		return loc.Y < half
	}
	return loc.Y >= half
}

func (v *PlayerView) publish(eventType string, kind core.UnitKind, loc core.Coordinate) {
	if v.bus == nil {
		return
	}
	v.bus.Publish(events.NewStructureEvent(eventType, v.matchID, v.player, kind, loc, v.state.Turn))
}
