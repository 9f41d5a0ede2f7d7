package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, uint64(8), VertexStride)
	assert.Equal(t, uint64(0), PositionOffset)
	assert.Equal(t, uint64(4), TexCoordOffset)
}

func TestVerticesHomogeneous(t *testing.T) {
	vertices := Vertices()
	require.Len(t, vertices, 14)
	for i, v := range vertices {
		assert.Equal(t, int8(1), v.Position[3], "vertex %d", i)
	}
	assert.Equal(t, [4]float32{0, 2, 1, 1}, vertices[8].Point())
	assert.Equal(t, [2]int8{1, 0}, vertices[13].TexCoord)
}

func TestIndicesWithinRange(t *testing.T) {
	vertices := Vertices()
	indices := Indices()

	assert.Len(t, indices, 48)
	assert.Zero(t, len(indices)%3)
	for _, idx := range indices {
		assert.Less(t, int(idx), len(vertices))
	}
	assert.NoError(t, Validate(vertices, indices))
}

func TestValidateRejects(t *testing.T) {
	vertices := Vertices()

	assert.ErrorIs(t, Validate(vertices, []uint16{0, 1}), ErrIndexCount)
	assert.ErrorIs(t, Validate(vertices, []uint16{0, 1, 14}), ErrIndexRange)
}

func TestFreshCopies(t *testing.T) {
	a := Indices()
	a[0] = 99
	assert.Equal(t, uint16(5), Indices()[0])

	tex := Texels()
	assert.Len(t, tex, TexelWidth*TexelHeight*4)
	tex[0] = 0
	assert.Equal(t, byte(0xdb), Texels()[0])
}

func TestSampler(t *testing.T) {
	assert.Equal(t, SamplerInfo{Filter: FilterBilinear, Wrap: WrapClamp}, Sampler())
}
