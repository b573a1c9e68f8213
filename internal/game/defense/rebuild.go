package defense

import (
	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/game/region"
)

// rebuildEntry remembers a demolished structure until resources allow
// re-spawning it at full health.
type rebuildEntry struct {
	Loc      core.Coordinate
	Kind     core.UnitKind
	Upgraded bool
}

// RebuildQueueLen reports how many demolished structures await re-spawning
func (d *Defense) RebuildQueueLen() int { return len(d.rebuildQueue) }

// Rebuild recycles worn structures: entries queued on earlier turns are
// re-spawned oldest first while resources allow, then the current inventory
// is scanned for walls and turrets under the health threshold, which are
// demolished and queued for the next pass. Inactive before the minimum turn.
func (d *Defense) Rebuild(g *core.Grid, b region.Builder) {
	if b.Turn() < d.tuning.MinTurnRebuild {
		return
	}
	d.Update(g)

	kept := d.rebuildQueue[:0]
	for i, entry := range d.rebuildQueue {
		if b.Resources() < d.rebuildCost(entry) {
			kept = append(kept, d.rebuildQueue[i:]...)
			break
		}
		if !b.AttemptSpawn(entry.Kind, entry.Loc) {
			// Tile got reoccupied since the demolish; drop the entry
			continue
		}
		if entry.Kind == core.Turret {
			d.shieldRebuiltTurret(b, entry)
		} else if entry.Upgraded {
			b.AttemptUpgrade(entry.Loc)
		}
		d.logger.Debug().
			Stringer("kind", entry.Kind).
			Stringer("loc", entry.Loc).
			Bool("upgraded", entry.Upgraded).
			Msg("rebuilt structure")
	}
	d.rebuildQueue = kept

	d.Update(g)
	d.queueWornStructures(b)
	d.Update(g)
}

// shieldRebuiltTurret restores the wall pocket around a turret that just came
// back, mirroring the pattern the fortify heuristic builds.
func (d *Defense) shieldRebuiltTurret(b region.Builder, entry rebuildEntry) {
	above := core.Coordinate{X: entry.Loc.X, Y: entry.Loc.Y + 1}
	if d.PlayerID == 1 {
		above.Y = entry.Loc.Y - 1
	}
	right := core.Coordinate{X: entry.Loc.X + 1, Y: entry.Loc.Y}
	left := core.Coordinate{X: entry.Loc.X - 1, Y: entry.Loc.Y}
	for _, loc := range []core.Coordinate{above, right, left} {
		b.AttemptSpawn(core.Wall, loc)
		if entry.Upgraded {
			b.AttemptUpgrade(loc)
		}
	}
	if entry.Upgraded {
		b.AttemptUpgrade(entry.Loc)
	}
}

// queueWornStructures demolishes walls and turrets under the health threshold
// and records them for the next rebuild pass. Turrets are scanned before
// walls so they come back first.
func (d *Defense) queueWornStructures(b region.Builder) {
	for _, kind := range []core.UnitKind{core.Turret, core.Wall} {
		for _, u := range d.sortedUnits(kind) {
			if u.HealthFraction(d.stats) >= d.tuning.RebuildThreshold {
				continue
			}
			if !b.AttemptRemove(u.Pos) {
				continue
			}
			d.rebuildQueue = append(d.rebuildQueue, rebuildEntry{Loc: u.Pos, Kind: kind, Upgraded: u.Upgraded})
			d.logger.Debug().
				Stringer("kind", kind).
				Stringer("loc", u.Pos).
				Float64("health", u.Health).
				Msg("queued structure for rebuild")
			if d.bus != nil {
				d.bus.Publish(events.NewRebuildQueuedEvent(d.matchID, d.PlayerID, kind, u.Pos, u.Upgraded, b.Turn()))
			}
		}
	}
}

// sortedUnits returns the deduplicated inventory for a kind in row-major
// board order. The backing map iterates randomly; the queue order must not.
func (d *Defense) sortedUnits(kind core.UnitKind) []*core.Unit {
	byPos := d.units[kind]
	units := make([]*core.Unit, 0, len(byPos))
	for y := 0; y < d.gridH; y++ {
		for x := 0; x < d.gridW; x++ {
			if u, ok := byPos[core.Coordinate{X: x, Y: y}]; ok {
				units = append(units, u)
			}
		}
	}
	return units
}

// rebuildCost is the resource price of bringing an entry back, upgrade
// included.
func (d *Defense) rebuildCost(entry rebuildEntry) float64 {
	s := d.stats[entry.Kind]
	cost := s.Cost
	if entry.Upgraded {
		cost += s.UpgradeCost
	}
	return cost
}
