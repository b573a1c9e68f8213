package region

import "github.com/tacticore/terminal-defense/internal/game/core"

// Paths returns the boundary-to-boundary path table, recomputing it first if
// the last structure scan invalidated it. The returned table is shared; treat
// it as read-only.
//
// Traversal policy: a tile is visitable when it is not Outside, regardless of
// occupancy. Mobile units in the source game route over structures' tiles on
// the same mask the rasterizer produces, and the traversal-damage simulation
// assumes the same, so walls do not block the search here either.
func (r *Region) Paths() PathTable {
	if !r.dirtyPaths && r.pathTable != nil {
		return r.pathTable
	}

	r.pathTable = make(PathTable, len(r.boundary))
	for _, edge := range r.IncomingEdges {
		entrances, err := edge.LatticePoints()
		if err != nil {
			// Edges were validated at construction; a failure here is a
			// programming error, not a recoverable state.
			panic(err)
		}
		for _, entrance := range entrances {
			r.bfsFrom(entrance)
		}
	}

	r.dirtyPaths = false
	return r.pathTable
}

// bfsFrom runs a masked breadth-first search from one boundary entrance,
// recording the first discovered path to every reachable boundary exit. The
// four-neighbor expansion order is fixed, so results are deterministic for a
// fixed structure layout.
func (r *Region) bfsFrom(entrance core.Coordinate) {
	visited := make([]bool, r.width*r.height)
	visited[r.localIdx(entrance)] = true

	queue := [][]core.Coordinate{{entrance}}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		tail := path[len(path)-1]

		for _, adj := range tail.Neighbors() {
			if !r.InBounds(adj) || r.StateAt(adj) == Outside {
				continue
			}
			if visited[r.localIdx(adj)] {
				continue
			}
			visited[r.localIdx(adj)] = true

			extended := make([]core.Coordinate, len(path), len(path)+1)
			copy(extended, path)
			extended = append(extended, adj)

			if r.StateAt(adj) == Boundary {
				r.recordPath(entrance, adj, extended)
				continue
			}
			queue = append(queue, extended)
		}
	}
}

// recordPath stores the forward path and its reverse so reachability stays
// symmetric in the table.
func (r *Region) recordPath(entrance, exit core.Coordinate, path []core.Coordinate) {
	if r.pathTable[entrance] == nil {
		r.pathTable[entrance] = make(map[core.Coordinate][]core.Coordinate)
	}
	if r.pathTable[exit] == nil {
		r.pathTable[exit] = make(map[core.Coordinate][]core.Coordinate)
	}
	r.pathTable[entrance][exit] = path

	reversed := make([]core.Coordinate, len(path))
	for i, c := range path {
		reversed[len(path)-1-i] = c
	}
	r.pathTable[exit][entrance] = reversed
}
