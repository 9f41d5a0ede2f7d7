package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("scene", WithGroup(1))

	assert.Equal(t, "scene", p.Label())
	assert.Equal(t, 1, p.Group())
	assert.Equal(t, wgpu.IndexFormatUint16, p.IndexFormat())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Nil(t, p.Sampler(2))
	assert.Zero(t, p.IndexCount())
}

func TestSetMeshAndRelease(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetMesh(nil, nil, 42, wgpu.IndexFormatUint32)

	assert.Equal(t, 42, p.IndexCount())
	assert.Equal(t, wgpu.IndexFormatUint32, p.IndexFormat())

	// nil resources are skipped on release
	p.SetBuffer(0, nil)
	p.SetTexture(1, nil, nil)
	p.SetSampler(2, nil)
	p.Release()

	assert.Zero(t, p.IndexCount())
	assert.Nil(t, p.VertexBuffer())
}
