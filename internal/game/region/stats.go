package region

import "github.com/tacticore/terminal-defense/internal/game/core"

// Statistics is the per-region summary recomputed after each structure scan
type Statistics struct {
	AvgTileDamage       float64
	CostAll             float64
	CostDefensive       float64
	HealthAll           float64
	HealthDefensive     float64
	UndefendedTileCount int
	TurretCount         int
	WallCount           int
	FactoryCount        int
}

// Statistics computes the aggregate summary from the last scan's inventory
func (r *Region) Statistics() Statistics {
	return Statistics{
		AvgTileDamage:       r.AverageTileDamage(),
		CostAll:             r.Cost(true, false),
		CostDefensive:       r.Cost(true, true),
		HealthAll:           r.OverallHealth(false),
		HealthDefensive:     r.OverallHealth(true),
		UndefendedTileCount: len(r.UndefendedTiles()),
		TurretCount:         r.TurretCount(),
		WallCount:           r.WallCount(),
		FactoryCount:        r.FactoryCount(),
	}
}

// AverageTileDamage returns the damage field averaged over interior tiles,
// zero for a region with no interior.
func (r *Region) AverageTileDamage() float64 {
	if r.tileCount == 0 {
		return 0
	}
	total := 0.0
	for _, c := range r.interior {
		total += r.damage.At(c)
	}
	return total / float64(r.tileCount)
}

// Cost sums structure cost across the region. With prorated set, each
// structure contributes its cost scaled by remaining health; with
// defensiveOnly set, factories are excluded.
func (r *Region) Cost(prorated, defensiveOnly bool) float64 {
	cost := 0.0
	for kind, units := range r.unitsByKind {
		if defensiveOnly && kind == core.Factory {
			continue
		}
		for _, u := range units {
			if prorated {
				cost += u.HealthFraction(r.stats) * u.Cost(r.stats)
			} else {
				cost += u.Cost(r.stats)
			}
		}
	}
	return cost
}

// OverallHealth sums current structure health, optionally excluding factories
func (r *Region) OverallHealth(defensiveOnly bool) float64 {
	health := 0.0
	for kind, units := range r.unitsByKind {
		if defensiveOnly && kind == core.Factory {
			continue
		}
		for _, u := range units {
			health += u.Health
		}
	}
	return health
}

// UndefendedTiles returns the interior tiles no turret covers, in row-major
// order.
func (r *Region) UndefendedTiles() []core.Coordinate {
	var undefended []core.Coordinate
	for _, c := range r.interior {
		if r.damage.At(c) == 0 {
			undefended = append(undefended, c)
		}
	}
	return undefended
}

// SimulateAverageDamage estimates the damage a mobile unit of the given kind
// takes crossing the region, averaged over every discovered entrance-to-exit
// path. Returns zero when no paths exist.
func (r *Region) SimulateAverageDamage(kind core.UnitKind) float64 {
	speed := r.stats[kind].Speed
	if speed == 0 {
		return 0
	}
	return r.simulateAverageDamage(speed)
}

func (r *Region) simulateAverageDamage(speed float64) float64 {
	paths := r.Paths()

	totalDamage := 0.0
	totalPaths := 0
	for _, edge := range r.IncomingEdges {
		entrances, err := edge.LatticePoints()
		if err != nil {
			panic(err)
		}
		for _, entrance := range entrances {
			for _, path := range paths[entrance] {
				if len(path) == 0 {
					continue
				}
				totalPaths++
				totalDamage += r.DamageOnPath(speed, path)
			}
		}
	}

	if totalPaths == 0 {
		return 0
	}
	return totalDamage / float64(totalPaths)
}

// DamageOnPath sums tile damage along a path, scaled by time spent per tile
func (r *Region) DamageOnPath(speed float64, path []core.Coordinate) float64 {
	damage := 0.0
	for _, c := range path {
		damage += r.damage.At(c) / speed
	}
	return damage
}
