package core

import "fmt"

// Edge is a straight segment between two lattice points. Region polygons are
// built from edges that are horizontal, vertical, or 45 degree diagonals; any
// other slope cannot be rasterized onto the grid and is rejected.
type Edge struct {
	A, B Coordinate
}

// NewEdge creates an edge between two coordinates
func NewEdge(a, b Coordinate) Edge {
	return Edge{A: a, B: b}
}

// IsDegenerate reports whether both endpoints coincide
func (e Edge) IsDegenerate() bool {
	return e.A.Equal(e.B)
}

// IsSupported reports whether the edge is horizontal, vertical, or a 45
// degree diagonal.
func (e Edge) IsSupported() bool {
	dx := e.B.X - e.A.X
	dy := e.B.Y - e.A.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx == 0 || dy == 0 || dx == dy
}

// Validate returns an error for degenerate or unsupported edges
func (e Edge) Validate() error {
	if e.IsDegenerate() {
		return fmt.Errorf("edge %v-%v: %w", e.A, e.B, ErrDegenerateEdge)
	}
	if !e.IsSupported() {
		return fmt.Errorf("edge %v-%v: %w", e.A, e.B, ErrUnsupportedSlope)
	}
	return nil
}

// LatticePoints enumerates every lattice point on the edge, endpoints
// included. Points are ordered from the endpoint with the smaller x (smaller
// y for vertical edges), so (A,B) and (B,A) produce the same sequence.
func (e Edge) LatticePoints() ([]Coordinate, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	start, finish := e.A, e.B
	if finish.X < start.X || (finish.X == start.X && finish.Y < start.Y) {
		start, finish = finish, start
	}

	// Vertical
	if start.X == finish.X {
		points := make([]Coordinate, 0, finish.Y-start.Y+1)
		for y := start.Y; y <= finish.Y; y++ {
			points = append(points, Coordinate{X: start.X, Y: y})
		}
		return points, nil
	}

	// Horizontal
	if start.Y == finish.Y {
		points := make([]Coordinate, 0, finish.X-start.X+1)
		for x := start.X; x <= finish.X; x++ {
			points = append(points, Coordinate{X: x, Y: start.Y})
		}
		return points, nil
	}

	// 45 degree diagonal, stepping both axes by one per point
	step := 1
	if finish.Y < start.Y {
		step = -1
	}
	n := finish.X - start.X + 1
	points := make([]Coordinate, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, Coordinate{X: start.X + i, Y: start.Y + i*step})
	}
	return points, nil
}

// String returns a string representation of the edge
func (e Edge) String() string {
	return fmt.Sprintf("%v-%v", e.A, e.B)
}
