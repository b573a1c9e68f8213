package region

import "github.com/tacticore/terminal-defense/internal/game/core"

// UpdateStructures re-scans the grid snapshot for every non-outside tile of
// the region, rebuilding the structure inventory, the occupant references and
// the damage field. Paths are invalidated unconditionally: any structure
// change anywhere in the region may have changed connectivity.
func (r *Region) UpdateStructures(g *core.Grid) {
	for kind := range r.unitsByKind {
		r.unitsByKind[kind] = r.unitsByKind[kind][:0]
	}

	for _, c := range r.coordinates {
		idx := r.localIdx(c)
		u := g.UnitAt(c)
		if u == nil || !u.Kind.IsStationary() {
			r.occupant[idx] = nil
			continue
		}
		r.occupant[idx] = u
		r.unitsByKind[u.Kind] = append(r.unitsByKind[u.Kind], u)
	}

	r.dirtyPaths = true
	r.recomputeDamage(g)
}

// TurretCount returns the number of turrets found by the last scan
func (r *Region) TurretCount() int { return len(r.unitsByKind[core.Turret]) }

// WallCount returns the number of walls found by the last scan
func (r *Region) WallCount() int { return len(r.unitsByKind[core.Wall]) }

// FactoryCount returns the number of factories found by the last scan
func (r *Region) FactoryCount() int { return len(r.unitsByKind[core.Factory]) }
