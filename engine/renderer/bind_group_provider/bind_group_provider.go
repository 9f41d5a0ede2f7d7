package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string
	group int

	// GPU resources below are created by the Renderer and released by Release.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textures        map[int]*wgpu.Texture
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
	indexFormat  wgpu.IndexFormat
}

// BindGroupProvider owns the GPU resources behind one bind group, and optionally the vertex and index
// buffers of a mesh drawn with it. The Renderer fills it in during initialization:
//  1. the caller creates a provider with a label and the @group index it binds to
//  2. Renderer.InitMeshBuffers / InitTextureView / InitSampler attach resources
//  3. Renderer.InitBindGroup creates uniform buffers and the bind group from a layout descriptor
//  4. Renderer.WriteBuffers updates uniforms and DrawCall binds the group
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Group returns the @group index this provider binds to.
	//
	// Returns:
	//   - int: the bind group index
	Group() int

	// BindGroup returns the created bind group, nil until initialized.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, nil until initialized.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding, nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view at a binding, nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at a binding, nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the GPU vertex buffer, nil until initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, nil until initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn by DrawCall.
	IndexCount() int

	// IndexFormat returns the element format of the index buffer.
	IndexFormat() wgpu.IndexFormat

	// SetBindGroup stores the created bind group and its layout.
	//
	// Parameters:
	//   - bg: the created bind group
	//   - bgl: the layout it was created with
	SetBindGroup(bg *wgpu.BindGroup, bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a buffer for a binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores a texture and the view bound at a binding. The texture is kept so it can be released.
	SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView)

	// SetSampler stores a sampler for a binding.
	SetSampler(binding int, s *wgpu.Sampler)

	// SetMesh stores the vertex and index buffers of the mesh drawn with this provider.
	//
	// Parameters:
	//   - vertexBuffer: the GPU vertex buffer
	//   - indexBuffer: the GPU index buffer
	//   - indexCount: the number of indices
	//   - indexFormat: the element format of the index buffer
	SetMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int, indexFormat wgpu.IndexFormat)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new, empty BindGroupProvider bound to @group(0) unless WithGroup says otherwise.
//
// Parameters:
//   - label: a debug label used for the GPU objects created for this provider
//   - options: functional options applied after the defaults
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
		indexFormat:  wgpu.IndexFormatUint16,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() int {
	return p.group
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) IndexFormat() wgpu.IndexFormat {
	return p.indexFormat
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup, bgl *wgpu.BindGroupLayout) {
	p.bindGroup = bg
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView) {
	p.textures[binding] = tex
	p.textureViews[binding] = view
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int, indexFormat wgpu.IndexFormat) {
	p.vertexBuffer = vertexBuffer
	p.indexBuffer = indexBuffer
	p.indexCount = indexCount
	p.indexFormat = indexFormat
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
