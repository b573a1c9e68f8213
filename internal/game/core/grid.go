package core

import "fmt"

// Grid is the board: a bounded width x height space of which only the
// diamond-shaped arena is playable. Each cell holds at most one stationary
// structure. The Grid is the single owner of Unit values; everything else
// holds pointers that are refreshed per scan and never outlive a turn.
//
// The generation counter increments on every mutation. Regions and defenses
// cache the generation they last computed against and recompute when behind,
// which replaces scattered per-object dirty booleans.
type Grid struct {
	W, H       int
	cells      []*Unit // length W*H, row-major
	generation uint64
}

// NewGrid creates an empty grid of the given dimensions
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, cells: make([]*Unit, w*h)}
}

// Idx converts x,y to a row-major cell index
func (g *Grid) Idx(x, y int) int { return y*g.W + x }

// XY converts a row-major cell index back to x,y
func (g *Grid) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds checks if coordinates are within the backing rectangle
func (g *Grid) InBounds(c Coordinate) bool {
	return c.IsValid(g.W, g.H)
}

// InArena checks if the coordinate lies within the diamond arena. The bottom
// half widens from row 0 to the midline, the top half narrows back down.
func (g *Grid) InArena(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	half := g.H / 2
	if c.Y < half {
		return c.X >= half-1-c.Y && c.X <= half+c.Y
	}
	return c.X >= c.Y-half && c.X <= g.W-1-(c.Y-half)
}

// HalfHeight returns the row count of one player's half
func (g *Grid) HalfHeight() int { return g.H / 2 }

// Generation returns the current mutation counter
func (g *Grid) Generation() uint64 { return g.generation }

// UnitAt returns the structure occupying the coordinate, or nil
func (g *Grid) UnitAt(c Coordinate) *Unit {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[g.Idx(c.X, c.Y)]
}

// Place puts a new structure on an empty arena tile at full health
func (g *Grid) Place(kind UnitKind, owner int, c Coordinate, stats StatsTable) (*Unit, error) {
	if !kind.IsStationary() {
		return nil, fmt.Errorf("place %s at %v: %w", kind, c, ErrNotStationary)
	}
	if !g.InArena(c) {
		return nil, fmt.Errorf("place %s at %v: %w", kind, c, ErrOutOfArena)
	}
	if g.cells[g.Idx(c.X, c.Y)] != nil {
		return nil, fmt.Errorf("place %s at %v: %w", kind, c, ErrTileOccupied)
	}

	u := &Unit{Kind: kind, Owner: owner, Pos: c}
	u.Health = u.MaxHealth(stats)
	g.cells[g.Idx(c.X, c.Y)] = u
	g.generation++
	return u, nil
}

// Remove deletes the structure at the coordinate and returns it
func (g *Grid) Remove(c Coordinate) (*Unit, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("remove at %v: %w", c, ErrInvalidCoordinates)
	}
	u := g.cells[g.Idx(c.X, c.Y)]
	if u == nil {
		return nil, fmt.Errorf("remove at %v: %w", c, ErrNoStructure)
	}
	g.cells[g.Idx(c.X, c.Y)] = nil
	g.generation++
	return u, nil
}

// Upgrade marks the structure at the coordinate as upgraded and tops its
// health up to the upgraded maximum.
func (g *Grid) Upgrade(c Coordinate, stats StatsTable) (*Unit, error) {
	u := g.UnitAt(c)
	if u == nil {
		return nil, fmt.Errorf("upgrade at %v: %w", c, ErrNoStructure)
	}
	if u.Upgraded {
		return nil, fmt.Errorf("upgrade at %v: %w", c, ErrAlreadyUpgraded)
	}
	u.Upgraded = true
	if max := u.MaxHealth(stats); u.Health < max {
		u.Health = max
	}
	g.generation++
	return u, nil
}

// Damage applies damage to the structure at the coordinate, removing it when
// health reaches zero. Reports whether the structure was destroyed.
func (g *Grid) Damage(c Coordinate, amount float64) (bool, error) {
	u := g.UnitAt(c)
	if u == nil {
		return false, fmt.Errorf("damage at %v: %w", c, ErrNoStructure)
	}
	u.Health -= amount
	g.generation++
	if u.Health <= 0 {
		g.cells[g.Idx(c.X, c.Y)] = nil
		return true, nil
	}
	return false, nil
}

// LocationsInRange returns every arena coordinate within the given Euclidean
// radius of the center, the center included.
func (g *Grid) LocationsInRange(center Coordinate, radius float64) []Coordinate {
	r := int(radius)
	rSq := radius * radius
	locations := make([]Coordinate, 0, (2*r+1)*(2*r+1))
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			c := Coordinate{X: x, Y: y}
			if !g.InArena(c) {
				continue
			}
			if float64(center.EuclideanSq(c)) <= rSq {
				locations = append(locations, c)
			}
		}
	}
	return locations
}

// StructuresOwnedBy returns all structures belonging to the player, in
// row-major board order.
func (g *Grid) StructuresOwnedBy(owner int) []*Unit {
	var units []*Unit
	for _, u := range g.cells {
		if u != nil && u.Owner == owner {
			units = append(units, u)
		}
	}
	return units
}
