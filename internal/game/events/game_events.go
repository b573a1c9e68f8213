package events

import (
	"time"

	"github.com/tacticore/terminal-defense/internal/game/core"
)

// Event type names
const (
	TypeStructurePlaced   = "structure.placed"
	TypeStructureRemoved  = "structure.removed"
	TypeStructureUpgraded = "structure.upgraded"
	TypeRegionFortified   = "region.fortified"
	TypeRebuildQueued     = "rebuild.queued"
	TypeTurnCompleted     = "turn.completed"
)

// StructureEvent covers placement, removal and upgrade of a structure
type StructureEvent struct {
	BaseEvent
	Player int             `json:"player"`
	Kind   core.UnitKind   `json:"kind"`
	Loc    core.Coordinate `json:"loc"`
	Turn   int             `json:"turn"`
}

// NewStructureEvent creates a structure lifecycle event of the given type
func NewStructureEvent(eventType, matchID string, player int, kind core.UnitKind, loc core.Coordinate, turn int) StructureEvent {
	return StructureEvent{
		BaseEvent: BaseEvent{EventType: eventType, Time: time.Now(), Match: matchID},
		Player:    player,
		Kind:      kind,
		Loc:       loc,
		Turn:      turn,
	}
}

// RegionFortifiedEvent is published after the fortify loop touches a region
type RegionFortifiedEvent struct {
	BaseEvent
	Player    int     `json:"player"`
	RegionID  int     `json:"region_id"`
	Criterion string  `json:"criterion"`
	Spent     float64 `json:"spent"`
	Turn      int     `json:"turn"`
}

// NewRegionFortifiedEvent creates a fortification event
func NewRegionFortifiedEvent(matchID string, player, regionID int, criterion string, spent float64, turn int) RegionFortifiedEvent {
	return RegionFortifiedEvent{
		BaseEvent: BaseEvent{EventType: TypeRegionFortified, Time: time.Now(), Match: matchID},
		Player:    player,
		RegionID:  regionID,
		Criterion: criterion,
		Spent:     spent,
		Turn:      turn,
	}
}

// RebuildQueuedEvent is published when a damaged structure is marked for
// demolish-and-rebuild.
type RebuildQueuedEvent struct {
	BaseEvent
	Player   int             `json:"player"`
	Kind     core.UnitKind   `json:"kind"`
	Loc      core.Coordinate `json:"loc"`
	Upgraded bool            `json:"upgraded"`
	Turn     int             `json:"turn"`
}

// NewRebuildQueuedEvent creates a rebuild event
func NewRebuildQueuedEvent(matchID string, player int, kind core.UnitKind, loc core.Coordinate, upgraded bool, turn int) RebuildQueuedEvent {
	return RebuildQueuedEvent{
		BaseEvent: BaseEvent{EventType: TypeRebuildQueued, Time: time.Now(), Match: matchID},
		Player:    player,
		Kind:      kind,
		Loc:       loc,
		Upgraded:  upgraded,
		Turn:      turn,
	}
}

// TurnCompletedEvent is published at the end of every engine step
type TurnCompletedEvent struct {
	BaseEvent
	Turn     int           `json:"turn"`
	Duration time.Duration `json:"duration"`
}

// NewTurnCompletedEvent creates a turn completion event
func NewTurnCompletedEvent(matchID string, turn int, duration time.Duration) TurnCompletedEvent {
	return TurnCompletedEvent{
		BaseEvent: BaseEvent{EventType: TypeTurnCompleted, Time: time.Now(), Match: matchID},
		Turn:      turn,
		Duration:  duration,
	}
}
