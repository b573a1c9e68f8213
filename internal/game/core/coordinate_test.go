package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate(t *testing.T) {
	c := NewCoordinate(3, 5)
	assert.Equal(t, 3, c.X)
	assert.Equal(t, 5, c.Y)
}

func TestCoordinate_IndexRoundTrip(t *testing.T) {
	// FromIndex and ToIndex must be inverses on a 28-wide board
	width := 28
	for i := 0; i < width*width; i++ {
		coord := FromIndex(i, width)
		assert.Equal(t, i, coord.ToIndex(width), "round trip failed for index %d", i)
	}
}

func TestCoordinate_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		coord  Coordinate
		width  int
		height int
		valid  bool
	}{
		{"Valid_Origin", Coordinate{0, 0}, 28, 28, true},
		{"Valid_Middle", Coordinate{13, 14}, 28, 28, true},
		{"Valid_Corner", Coordinate{27, 27}, 28, 28, true},
		{"Invalid_NegativeX", Coordinate{-1, 5}, 28, 28, false},
		{"Invalid_NegativeY", Coordinate{5, -1}, 28, 28, false},
		{"Invalid_TooLargeX", Coordinate{28, 5}, 28, 28, false},
		{"Invalid_TooLargeY", Coordinate{5, 28}, 28, 28, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.coord.IsValid(tt.width, tt.height))
		})
	}
}

func TestCoordinate_DistanceTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Coordinate
		to       Coordinate
		expected int
	}{
		{"Same", Coordinate{5, 5}, Coordinate{5, 5}, 0},
		{"Adjacent_Horizontal", Coordinate{5, 5}, Coordinate{6, 5}, 1},
		{"Adjacent_Vertical", Coordinate{5, 5}, Coordinate{5, 6}, 1},
		{"Diagonal", Coordinate{0, 0}, Coordinate{1, 1}, 2},
		{"Far", Coordinate{0, 0}, Coordinate{5, 7}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.DistanceTo(tt.to))
			assert.Equal(t, tt.expected, tt.to.DistanceTo(tt.from), "distance not symmetric")
		})
	}
}

func TestCoordinate_EuclideanSq(t *testing.T) {
	assert.Equal(t, 0, Coordinate{3, 3}.EuclideanSq(Coordinate{3, 3}))
	assert.Equal(t, 2, Coordinate{0, 0}.EuclideanSq(Coordinate{1, 1}))
	assert.Equal(t, 25, Coordinate{0, 0}.EuclideanSq(Coordinate{3, 4}))
}

func TestCoordinate_Neighbors(t *testing.T) {
	// Order is fixed: up, down, right, left
	n := Coordinate{5, 5}.Neighbors()
	assert.Equal(t, []Coordinate{{5, 6}, {5, 4}, {6, 5}, {4, 5}}, n)
}

func TestCoordinate_IsAdjacentTo(t *testing.T) {
	c := Coordinate{5, 5}
	assert.True(t, c.IsAdjacentTo(Coordinate{5, 6}))
	assert.True(t, c.IsAdjacentTo(Coordinate{4, 5}))
	assert.False(t, c.IsAdjacentTo(Coordinate{6, 6}), "diagonal is not adjacent")
	assert.False(t, c.IsAdjacentTo(c), "self is not adjacent")
}
