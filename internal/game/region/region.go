// Package region implements the spatial analysis unit of the defense engine:
// a polygon-bounded subset of one player's half of the board, rasterized once
// at construction and rescanned against the grid every turn.
package region

import (
	"errors"
	"fmt"

	"github.com/tacticore/terminal-defense/internal/game/core"
)

var (
	ErrTooFewVertices    = errors.New("polygon needs at least three vertices")
	ErrDegeneratePolygon = errors.New("polygon has zero area")
)

// TileState classifies a tile within a region's bounding rectangle
type TileState int8

const (
	Outside  TileState = -1
	Boundary TileState = 0
	Interior TileState = 1
)

// Tuning holds the knobs for the local fortification heuristic
type Tuning struct {
	MinTurnUpgrade int // only start upgrading turrets after this turn
	MaxTurrets     int // stop adding turrets past this count
}

// DefaultTuning mirrors the stock fortification constants
func DefaultTuning() Tuning {
	return Tuning{MinTurnUpgrade: 8, MaxTurrets: 5}
}

// Region tracks the tiles, structures, damage field and boundary paths of one
// polygonal slice of a player's half. Construct once per match; the per-turn
// cost is the structure scan.
type Region struct {
	ID       int
	PlayerID int

	Vertices      []core.Coordinate
	IncomingEdges []core.Edge
	OutgoingEdges []core.Edge
	BreachEdges   []core.Edge

	xMin, xMax, yMin, yMax int
	width, height          int

	tileState []TileState // bounds-relative, row-major
	occupant  []*core.Unit

	// coordinates is every non-outside tile in row-major board order;
	// interior is the subset strictly inside the polygon.
	coordinates []core.Coordinate
	interior    []core.Coordinate
	boundary    map[core.Coordinate]struct{}
	tileCount   int // interior tiles only

	damage *DamageField
	shared bool // damage is a view owned by the Defense, not this region

	unitsByKind map[core.UnitKind][]*core.Unit

	pathTable  PathTable
	dirtyPaths bool

	stats  core.StatsTable
	tuning Tuning
}

// PathTable maps a boundary entrance to the exits reachable from it, each
// with one discovered tile path (entrance and exit included).
type PathTable map[core.Coordinate]map[core.Coordinate][]core.Coordinate

// New rasterizes a polygon into a Region. Vertices must describe a simple
// polygon whose edges are axis-aligned or 45 degree diagonals; anything else
// fails construction. The optional field lets several regions share one
// read-only damage view owned by their Defense; pass nil for a region-local
// field.
func New(id, playerID int, vertices []core.Coordinate, incoming, outgoing, breach []core.Edge,
	stats core.StatsTable, tuning Tuning, field *DamageField) (*Region, error) {

	if len(vertices) < 3 {
		return nil, fmt.Errorf("region %d: %w", id, ErrTooFewVertices)
	}
	if polygonAreaDoubled(vertices) == 0 {
		return nil, fmt.Errorf("region %d: %w", id, ErrDegeneratePolygon)
	}

	r := &Region{
		ID:            id,
		PlayerID:      playerID,
		Vertices:      vertices,
		IncomingEdges: incoming,
		OutgoingEdges: outgoing,
		BreachEdges:   breach,
		boundary:      make(map[core.Coordinate]struct{}),
		unitsByKind:   make(map[core.UnitKind][]*core.Unit),
		dirtyPaths:    true,
		stats:         stats,
		tuning:        tuning,
	}

	r.xMin, r.xMax = vertices[0].X, vertices[0].X
	r.yMin, r.yMax = vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		if v.X < r.xMin {
			r.xMin = v.X
		}
		if v.X > r.xMax {
			r.xMax = v.X
		}
		if v.Y < r.yMin {
			r.yMin = v.Y
		}
		if v.Y > r.yMax {
			r.yMax = v.Y
		}
	}
	r.width = r.xMax - r.xMin + 1
	r.height = r.yMax - r.yMin + 1

	r.tileState = make([]TileState, r.width*r.height)
	for i := range r.tileState {
		r.tileState[i] = Outside
	}
	r.occupant = make([]*core.Unit, r.width*r.height)

	// Perimeter lattice points become boundary tiles
	for i := range vertices {
		edge := core.NewEdge(vertices[i], vertices[(i+1)%len(vertices)])
		points, err := edge.LatticePoints()
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", id, err)
		}
		for _, p := range points {
			r.boundary[p] = struct{}{}
			r.tileState[r.localIdx(p)] = Boundary
		}
	}

	// Remaining tiles inside the polygon are interior
	for y := r.yMin; y <= r.yMax; y++ {
		for x := r.xMin; x <= r.xMax; x++ {
			c := core.Coordinate{X: x, Y: y}
			if _, onBoundary := r.boundary[c]; onBoundary {
				r.coordinates = append(r.coordinates, c)
				continue
			}
			if pointInsidePolygon(x, y, vertices) {
				r.tileState[r.localIdx(c)] = Interior
				r.coordinates = append(r.coordinates, c)
				r.interior = append(r.interior, c)
			}
		}
	}
	r.tileCount = len(r.interior)

	if field != nil {
		r.damage = field
		r.shared = true
	} else {
		r.damage = NewDamageField(r.xMin, r.yMin, r.width, r.height)
	}

	return r, nil
}

// localIdx maps a board coordinate into the bounds-relative backing store
func (r *Region) localIdx(c core.Coordinate) int {
	return (c.Y-r.yMin)*r.width + (c.X - r.xMin)
}

// InBounds reports whether the coordinate lies in the bounding rectangle
func (r *Region) InBounds(c core.Coordinate) bool {
	return c.X >= r.xMin && c.X <= r.xMax && c.Y >= r.yMin && c.Y <= r.yMax
}

// StateAt returns the tile classification, Outside for out-of-bounds coordinates
func (r *Region) StateAt(c core.Coordinate) TileState {
	if !r.InBounds(c) {
		return Outside
	}
	return r.tileState[r.localIdx(c)]
}

// OccupantAt returns the structure recorded on the tile by the last scan
func (r *Region) OccupantAt(c core.Coordinate) *core.Unit {
	if !r.InBounds(c) || r.StateAt(c) == Outside {
		return nil
	}
	return r.occupant[r.localIdx(c)]
}

// Coordinates returns every boundary and interior tile in row-major order
func (r *Region) Coordinates() []core.Coordinate { return r.coordinates }

// InteriorTiles returns the interior tiles in row-major order
func (r *Region) InteriorTiles() []core.Coordinate { return r.interior }

// TileCount returns the number of interior tiles
func (r *Region) TileCount() int { return r.tileCount }

// BoundaryTiles reports the de-duplicated set of perimeter lattice points
func (r *Region) BoundaryTiles() map[core.Coordinate]struct{} { return r.boundary }

// Units returns the structures of the given kind found by the last scan
func (r *Region) Units(kind core.UnitKind) []*core.Unit { return r.unitsByKind[kind] }

// polygonAreaDoubled computes twice the signed shoelace area
func polygonAreaDoubled(vertices []core.Coordinate) int {
	area := 0
	n := len(vertices)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	if area < 0 {
		area = -area
	}
	return area
}

// pointInsidePolygon is a horizontal ray-casting test. Edges whose endpoints
// share a y are skipped so horizontal segments do not double-count crossings.
func pointInsidePolygon(x, y int, poly []core.Coordinate) bool {
	inside := false
	n := len(poly)
	p1 := poly[0]
	for i := 1; i <= n; i++ {
		p2 := poly[i%n]
		// Horizontal edges are skipped by the y-range test; counting them
		// would double crossings at shared vertices.
		if y > min(p1.Y, p2.Y) && y <= max(p1.Y, p2.Y) && x <= max(p1.X, p2.X) && p1.Y != p2.Y {
			xIntersect := float64(y-p1.Y)*float64(p2.X-p1.X)/float64(p2.Y-p1.Y) + float64(p1.X)
			if p1.X == p2.X || float64(x) <= xIntersect {
				inside = !inside
			}
		}
		p1 = p2
	}
	return inside
}
