package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexCount is returned when an index list does not describe whole triangles.
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	// ErrIndexRange is returned when an index references a vertex that does not exist.
	ErrIndexRange = errors.New("index out of range")
)

// Vertices returns the 14 vertices of the scene in a fresh slice.
// 0-3 are the bottom of the cube, 4-7 the top, 8-9 the roof ridge and 10-13 the floor.
func Vertices() []Vertex {
	return []Vertex{
		// bottom
		NewVertex([3]int8{-1, -1, -1}, [2]int8{0, 0}),
		NewVertex([3]int8{-1, -1, 1}, [2]int8{0, 0}),
		NewVertex([3]int8{1, -1, 1}, [2]int8{0, 0}),
		NewVertex([3]int8{1, -1, -1}, [2]int8{0, 0}),
		// top
		NewVertex([3]int8{-1, 1, -1}, [2]int8{0, 0}),
		NewVertex([3]int8{-1, 1, 1}, [2]int8{0, 0}),
		NewVertex([3]int8{1, 1, 1}, [2]int8{0, 0}),
		NewVertex([3]int8{1, 1, -1}, [2]int8{0, 0}),
		// roof ridge
		NewVertex([3]int8{0, 2, 1}, [2]int8{1, 1}),
		NewVertex([3]int8{0, 2, -1}, [2]int8{1, 1}),
		// floor
		NewVertex([3]int8{-20, -1, 20}, [2]int8{1, 0}),
		NewVertex([3]int8{20, -1, 20}, [2]int8{1, 0}),
		NewVertex([3]int8{20, -1, -20}, [2]int8{1, 0}),
		NewVertex([3]int8{-20, -1, -20}, [2]int8{1, 0}),
	}
}

// Indices returns the triangle list for Vertices in a fresh slice.
func Indices() []uint16 {
	return []uint16{
		// roof
		5, 8, 9, 5, 4, 9, 7, 6, 9, 6, 8, 9, 4, 7, 9, 5, 8, 6,
		// right
		2, 6, 7, 2, 7, 3,
		// left
		1, 5, 4, 4, 1, 0,
		// front
		0, 3, 7, 4, 7, 0,
		// back
		1, 2, 6, 1, 5, 6,
		// floor
		10, 13, 12, 10, 11, 12,
	}
}

// Validate checks that indices form whole triangles over vertices.
//
// Parameters:
//   - vertices: the vertex list
//   - indices: the triangle list indexing into vertices
//
// Returns:
//   - error: ErrIndexCount or ErrIndexRange (wrapped with the offending position), nil when valid
func Validate(vertices []Vertex, indices []uint16) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("%w: indices[%d] = %d with %d vertices", ErrIndexRange, i, idx, len(vertices))
		}
	}
	return nil
}
