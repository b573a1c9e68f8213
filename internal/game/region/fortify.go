package region

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/game/core"
)

// Builder is the narrow mutation surface the fortification heuristics need.
// A Builder is already bound to the owning player; spawn and upgrade attempts
// debit that player's structure points and report whether they took effect.
type Builder interface {
	Turn() int
	Resources() float64
	AttemptSpawn(kind core.UnitKind, loc core.Coordinate) bool
	AttemptUpgrade(loc core.Coordinate) bool
	AttemptRemove(loc core.Coordinate) bool
}

// Fortify runs the local build heuristic once: add a turret when the region
// has one or fewer, shore up turrets with walls when the turret:wall ratio is
// lopsided, and upgrade the frontmost turret once the match is far enough
// along. The caller re-scans the region before invoking this again.
func (r *Region) Fortify(b Builder, logger zerolog.Logger) {
	upgradeAllowed := b.Turn() >= r.tuning.MinTurnUpgrade
	turrets := len(r.unitsByKind[core.Turret])
	walls := len(r.unitsByKind[core.Wall])

	if turrets > 2*walls {
		logger.Debug().Int("region", r.ID).Int("turrets", turrets).Int("walls", walls).
			Msg("Turrets outnumber walls, placing cover")
		r.placeWallsNearTurrets(b, 1, upgradeAllowed)
	}

	switch {
	case turrets <= 1:
		if loc, ok := r.OptimalTurretPlacement(); ok {
			logger.Debug().Int("region", r.ID).Stringer("loc", loc).Msg("Placing turret in underdefended region")
			b.AttemptSpawn(core.Turret, loc)
		}
	case turrets < r.tuning.MaxTurrets:
		if r.anyTurretBelowHalfHealth() && b.Resources() >= r.stats[core.Turret].Cost {
			if loc, ok := r.OptimalTurretPlacement(); ok {
				logger.Debug().Int("region", r.ID).Stringer("loc", loc).Msg("Reinforcing low-health turret line")
				b.AttemptSpawn(core.Turret, loc)
			}
		} else if b.Resources() >= r.stats[core.Turret].UpgradeCost {
			r.upgradeOrExpand(b, upgradeAllowed, logger)
		}
	default:
		if upgradeAllowed {
			if loc, ok := r.OptimalTurretUpgrade(); ok {
				logger.Debug().Int("region", r.ID).Stringer("loc", loc).Msg("Upgrading frontmost turret")
				b.AttemptUpgrade(loc)
			}
		}
	}
}

// upgradeOrExpand prefers upgrading an existing turret and falls back to
// placing a new one when every turret is already upgraded.
func (r *Region) upgradeOrExpand(b Builder, upgradeAllowed bool, logger zerolog.Logger) {
	if upgradeAllowed {
		if loc, ok := r.OptimalTurretUpgrade(); ok {
			logger.Debug().Int("region", r.ID).Stringer("loc", loc).Msg("Upgrading frontmost turret")
			b.AttemptUpgrade(loc)
			return
		}
	}
	if loc, ok := r.OptimalTurretPlacement(); ok {
		logger.Debug().Int("region", r.ID).Stringer("loc", loc).Msg("Expanding turret coverage")
		b.AttemptSpawn(core.Turret, loc)
	}
}

func (r *Region) anyTurretBelowHalfHealth() bool {
	for _, turret := range r.unitsByKind[core.Turret] {
		if turret.HealthFraction(r.stats) < 0.5 {
			return true
		}
	}
	return false
}

// placeWallsNearTurrets drops up to count walls on the tiles above, right and
// left of each turret, optionally upgrading them.
func (r *Region) placeWallsNearTurrets(b Builder, count int, upgrade bool) {
	for _, turret := range r.unitsByKind[core.Turret] {
		offsets := []core.Coordinate{
			{X: turret.Pos.X, Y: turret.Pos.Y + 1},
			{X: turret.Pos.X + 1, Y: turret.Pos.Y},
			{X: turret.Pos.X - 1, Y: turret.Pos.Y},
		}
		if count < len(offsets) {
			offsets = offsets[:count]
		}
		for _, loc := range offsets {
			if !b.AttemptSpawn(core.Wall, loc) {
				continue
			}
			if upgrade {
				b.AttemptUpgrade(loc)
			}
		}
	}
}

// OptimalTurretPlacement picks where the next turret should go. With no
// turrets present it takes the first free lattice point of the first incoming
// edge; otherwise it maximizes the summed distance to every existing turret
// over the free interior tiles. Returns false when the region is full.
func (r *Region) OptimalTurretPlacement() (core.Coordinate, bool) {
	turrets := r.unitsByKind[core.Turret]

	if len(turrets) == 0 {
		if len(r.IncomingEdges) > 0 {
			points, err := r.IncomingEdges[0].LatticePoints()
			if err == nil {
				for _, c := range points {
					if r.OccupantAt(c) == nil {
						return c, true
					}
				}
			}
		}
		// Fall through to the interior sweep when the whole edge is occupied
	}

	best := core.Coordinate{}
	bestDist := -1.0
	for _, c := range r.interior {
		if r.OccupantAt(c) != nil {
			continue
		}
		dist := 0.0
		for _, turret := range turrets {
			dist += math.Sqrt(float64(turret.Pos.EuclideanSq(c)))
		}
		if dist > bestDist {
			best = c
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return core.Coordinate{}, false
	}
	return best, true
}

// OptimalTurretUpgrade returns the frontmost unupgraded turret, front meaning
// toward the board midline for either player. Returns false when every turret
// is already upgraded.
func (r *Region) OptimalTurretUpgrade() (core.Coordinate, bool) {
	var best *core.Unit
	for _, turret := range r.unitsByKind[core.Turret] {
		if turret.Upgraded {
			continue
		}
		if best == nil || r.closerToFront(turret.Pos, best.Pos) {
			best = turret
		}
	}
	if best == nil {
		return core.Coordinate{}, false
	}
	return best.Pos, true
}

// closerToFront reports whether a is strictly closer to the midline than b.
// Player 0 owns the bottom half so front is larger y; player 1 is mirrored.
func (r *Region) closerToFront(a, b core.Coordinate) bool {
	if r.PlayerID == 0 {
		return a.Y > b.Y
	}
	return a.Y < b.Y
}
