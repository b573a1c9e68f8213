package defense

import "github.com/tacticore/terminal-defense/internal/game/core"

// regionSpec describes one region of the fixed six-region tiling
type regionSpec struct {
	vertices []core.Coordinate
	incoming []core.Edge
	outgoing []core.Edge
	breach   []core.Edge
}

func c(x, y int) core.Coordinate { return core.Coordinate{X: x, Y: y} }

func e(a, b core.Coordinate) core.Edge { return core.NewEdge(a, b) }

// layoutFor returns the six-region tiling of the given player's half:
// regions 0 and 1 are the outer corner triangles, 2 and 3 the inner front
// triangles, 4 the center band, and 5 the back funnel. Player 1's layout is
// the mirror of player 0's across the midline.
func layoutFor(playerID int) []regionSpec {
	if playerID == 0 {
		return []regionSpec{
			{
				vertices: []core.Coordinate{c(0, 13), c(7, 13), c(7, 6)},
				incoming: []core.Edge{e(c(0, 13), c(7, 13)), e(c(7, 13), c(7, 6))},
				breach:   []core.Edge{e(c(0, 13), c(7, 6))},
			},
			{
				vertices: []core.Coordinate{c(27, 13), c(20, 13), c(20, 6)},
				incoming: []core.Edge{e(c(20, 13), c(27, 13)), e(c(20, 13), c(20, 6))},
				breach:   []core.Edge{e(c(27, 13), c(20, 6))},
			},
			{
				vertices: []core.Coordinate{c(7, 6), c(7, 13), c(14, 13)},
				incoming: []core.Edge{e(c(7, 6), c(7, 13)), e(c(7, 13), c(14, 13))},
				outgoing: []core.Edge{e(c(7, 6), c(14, 13))},
			},
			{
				vertices: []core.Coordinate{c(13, 13), c(20, 13), c(20, 6)},
				incoming: []core.Edge{e(c(13, 13), c(20, 13)), e(c(20, 13), c(20, 6))},
				outgoing: []core.Edge{e(c(13, 13), c(20, 6))},
			},
			{
				vertices: []core.Coordinate{c(7, 6), c(13, 12), c(14, 12), c(20, 6)},
				incoming: []core.Edge{e(c(7, 6), c(13, 12)), e(c(13, 12), c(14, 12)), e(c(14, 12), c(20, 6))},
				outgoing: []core.Edge{e(c(7, 6), c(20, 6))},
			},
			{
				vertices: []core.Coordinate{c(7, 6), c(20, 6), c(14, 0), c(13, 0)},
				incoming: []core.Edge{e(c(7, 6), c(20, 6))},
				breach:   []core.Edge{e(c(7, 6), c(13, 0)), e(c(13, 0), c(14, 0)), e(c(14, 0), c(20, 6))},
			},
		}
	}

	return []regionSpec{
		{
			vertices: []core.Coordinate{c(0, 14), c(7, 14), c(7, 21)},
			incoming: []core.Edge{e(c(0, 14), c(7, 14)), e(c(7, 14), c(7, 21))},
			breach:   []core.Edge{e(c(0, 14), c(7, 21))},
		},
		{
			vertices: []core.Coordinate{c(27, 14), c(20, 14), c(20, 21)},
			incoming: []core.Edge{e(c(20, 14), c(27, 14)), e(c(20, 14), c(20, 21))},
			breach:   []core.Edge{e(c(27, 14), c(20, 21))},
		},
		{
			vertices: []core.Coordinate{c(7, 21), c(7, 14), c(14, 14)},
			incoming: []core.Edge{e(c(7, 21), c(7, 14)), e(c(7, 14), c(14, 14))},
			outgoing: []core.Edge{e(c(7, 21), c(14, 14))},
		},
		{
			vertices: []core.Coordinate{c(13, 14), c(20, 14), c(20, 21)},
			incoming: []core.Edge{e(c(13, 14), c(20, 14)), e(c(20, 14), c(20, 21))},
			outgoing: []core.Edge{e(c(13, 14), c(20, 21))},
		},
		{
			vertices: []core.Coordinate{c(7, 21), c(13, 15), c(14, 15), c(20, 21)},
			incoming: []core.Edge{e(c(7, 21), c(13, 15)), e(c(13, 15), c(14, 15)), e(c(14, 15), c(20, 21))},
			outgoing: []core.Edge{e(c(7, 21), c(20, 21))},
		},
		{
			vertices: []core.Coordinate{c(7, 21), c(20, 21), c(14, 27), c(13, 27)},
			incoming: []core.Edge{e(c(7, 21), c(20, 21))},
			breach:   []core.Edge{e(c(7, 21), c(13, 27)), e(c(13, 27), c(14, 27)), e(c(14, 27), c(20, 21))},
		},
	}
}

// frontRegionIDs are the candidates considered before the back regions open up
var frontRegionIDs = []int{0, 1, 2, 3}

// allRegionIDs covers the whole tiling
var allRegionIDs = []int{0, 1, 2, 3, 4, 5}
