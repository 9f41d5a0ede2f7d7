// Package mesh holds the compiled-in geometry of the demo scene: a cube with a pyramid roof standing on a floor quad,
// the 2x2 texture painted onto it and the sampler used to read that texture.
package mesh

import "unsafe"

// Vertex is the GPU vertex layout for the scene.
// Position holds x, y, z and a homogeneous w that is always 1. TexCoord is an integer texture coordinate.
// The trailing padding keeps the stride at 8 bytes, since vertex buffer strides must be 4-byte aligned.
type Vertex struct {
	Position [4]int8
	TexCoord [2]int8
	_        [2]int8
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// Byte offsets of the vertex attributes, matching the @location order in the shader.
const (
	PositionOffset = uint64(unsafe.Offsetof(Vertex{}.Position))
	TexCoordOffset = uint64(unsafe.Offsetof(Vertex{}.TexCoord))
)

// NewVertex builds a Vertex from a 3D position and a texture coordinate, setting w to 1.
//
// Parameters:
//   - pos: the x, y, z position
//   - tc: the texture coordinate
//
// Returns:
//   - Vertex: the packed vertex
func NewVertex(pos [3]int8, tc [2]int8) Vertex {
	return Vertex{
		Position: [4]int8{pos[0], pos[1], pos[2], 1},
		TexCoord: tc,
	}
}

// Point returns the vertex position as float32 homogeneous coordinates.
func (v Vertex) Point() [4]float32 {
	return [4]float32{float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2]), float32(v.Position[3])}
}
