package defense

import (
	"fmt"
	"math"

	"github.com/tacticore/terminal-defense/internal/game/core"
)

// Criterion selects how regions are scored when picking a fortification target
type Criterion int

const (
	// ByHealth ranks by overall defensive health, lowest first
	ByHealth Criterion = iota
	// ByUndefendedTiles ranks by uncovered interior tiles, most first
	ByUndefendedTiles
	// ByDefensivePower ranks by the weaker of wall mass and weighted turret
	// mass, lowest first
	ByDefensivePower
	// ByTurretCount ranks by turret count, fewest first
	ByTurretCount
	// ByAvgTileDamage ranks by average interior coverage, lowest first
	ByAvgTileDamage
)

func (c Criterion) String() string {
	switch c {
	case ByHealth:
		return "health"
	case ByUndefendedTiles:
		return "undefended_tiles"
	case ByDefensivePower:
		return "defensive_power"
	case ByTurretCount:
		return "turret_count"
	case ByAvgTileDamage:
		return "avg_tile_damage"
	default:
		return fmt.Sprintf("criterion(%d)", int(c))
	}
}

// WeakestRegion returns the candidate scoring lowest under the criterion.
// Ties keep the earliest candidate: a later region replaces the pick only on
// a strictly lower score, so the result is deterministic for a fixed
// candidate order.
func (d *Defense) WeakestRegion(criterion Criterion, candidates []int) (int, error) {
	if len(candidates) == 0 {
		return NoRegion, ErrNoCandidates
	}

	weakest := NoRegion
	best := math.Inf(1)
	for _, id := range candidates {
		if id < 0 || id >= len(d.regions) {
			return NoRegion, fmt.Errorf("weakest region: candidate %d out of range", id)
		}
		score := d.score(criterion, id)
		if score < best {
			best = score
			weakest = id
		}
	}
	return weakest, nil
}

func (d *Defense) score(criterion Criterion, id int) float64 {
	r := d.regions[id]
	switch criterion {
	case ByHealth:
		return r.OverallHealth(true)
	case ByUndefendedTiles:
		// More exposed tiles means weaker, so the count is negated
		return -float64(len(r.UndefendedTiles()))
	case ByDefensivePower:
		wallPower := d.proratedKindCost(id, core.Wall)
		turretPower := d.proratedKindCost(id, core.Turret) * d.tuning.TurretToWallRatio
		return math.Min(wallPower, turretPower)
	case ByTurretCount:
		return float64(r.TurretCount())
	case ByAvgTileDamage:
		return r.AverageTileDamage()
	default:
		return r.OverallHealth(true)
	}
}

// proratedKindCost sums health-weighted cost for one structure kind in a
// region.
func (d *Defense) proratedKindCost(id int, kind core.UnitKind) float64 {
	cost := 0.0
	for _, u := range d.regions[id].Units(kind) {
		cost += u.HealthFraction(d.stats) * u.Cost(d.stats)
	}
	return cost
}
