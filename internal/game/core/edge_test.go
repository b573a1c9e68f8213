package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdge_LatticePoints(t *testing.T) {
	tests := []struct {
		name     string
		edge     Edge
		expected []Coordinate
	}{
		{
			"Horizontal",
			NewEdge(Coordinate{2, 5}, Coordinate{5, 5}),
			[]Coordinate{{2, 5}, {3, 5}, {4, 5}, {5, 5}},
		},
		{
			"Vertical",
			NewEdge(Coordinate{7, 6}, Coordinate{7, 9}),
			[]Coordinate{{7, 6}, {7, 7}, {7, 8}, {7, 9}},
		},
		{
			"DiagonalUp",
			NewEdge(Coordinate{0, 0}, Coordinate{3, 3}),
			[]Coordinate{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			"DiagonalDown",
			NewEdge(Coordinate{0, 3}, Coordinate{3, 0}),
			[]Coordinate{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
		},
		{
			"SingleStep",
			NewEdge(Coordinate{4, 4}, Coordinate{5, 4}),
			[]Coordinate{{4, 4}, {5, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := tt.edge.LatticePoints()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, points)
		})
	}
}

func TestEdge_LatticePointsSymmetric(t *testing.T) {
	// Interpolating (A,B) must yield the same tiles as (B,A)
	edges := []Edge{
		NewEdge(Coordinate{0, 13}, Coordinate{7, 13}),
		NewEdge(Coordinate{7, 13}, Coordinate{7, 6}),
		NewEdge(Coordinate{0, 13}, Coordinate{7, 6}),
	}
	for _, e := range edges {
		forward, err := e.LatticePoints()
		require.NoError(t, err)
		backward, err := NewEdge(e.B, e.A).LatticePoints()
		require.NoError(t, err)
		assert.Equal(t, forward, backward, "edge %v", e)
	}
}

func TestEdge_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{"Supported_Horizontal", NewEdge(Coordinate{0, 0}, Coordinate{5, 0}), nil},
		{"Supported_Diagonal", NewEdge(Coordinate{0, 0}, Coordinate{4, 4}), nil},
		{"Degenerate", NewEdge(Coordinate{3, 3}, Coordinate{3, 3}), ErrDegenerateEdge},
		{"UnsupportedSlope", NewEdge(Coordinate{0, 0}, Coordinate{4, 2}), ErrUnsupportedSlope},
		{"UnsupportedSteep", NewEdge(Coordinate{0, 0}, Coordinate{1, 3}), ErrUnsupportedSlope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
