package engine

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/little-cube/common"
	"github.com/Carmen-Shannon/little-cube/engine/camera"
	"github.com/Carmen-Shannon/little-cube/engine/mesh"
	"github.com/Carmen-Shannon/little-cube/engine/renderer"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/cube.vert.wgsl
var cubeVertexWGSL string

//go:embed assets/cube.frag.wgsl
var cubeFragmentWGSL string

// CubePipelineKey is the key the scene pipeline is registered under.
const CubePipelineKey = "cube"

// Bindings of the scene bind group (group 0), matching the cube shaders.
const (
	sceneGroup     = 0
	bindingCamera  = 0
	bindingTexture = 1
	bindingSampler = 2
)

var (
	// CubeVertexShader holds the scene vertex shader per shading language.
	CubeVertexShader = shader.Variants{shader.LanguageWGSL: cubeVertexWGSL}

	// CubeFragmentShader holds the scene fragment shader per shading language.
	CubeFragmentShader = shader.Variants{shader.LanguageWGSL: cubeFragmentWGSL}
)

// shaderIncludes are the WGSL snippets the cube shaders may include by name.
var shaderIncludes = map[string]string{
	"camera_uniform": camera.GPUCameraUniformSource,
}

// sceneResources are the GPU objects created once at startup.
type sceneResources struct {
	pipeline pipeline.Pipeline

	// mesh holds the vertex and index buffers.
	mesh bind_group_provider.BindGroupProvider

	// scene holds the camera uniform, texture and sampler bindings.
	scene bind_group_provider.BindGroupProvider
}

// cubeVertexLayout describes mesh.Vertex to the pipeline: signed 8-bit position and texture coordinate.
func cubeVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: mesh.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatSint8x4, Offset: mesh.PositionOffset, ShaderLocation: 0},
			{Format: wgpu.VertexFormatSint8x2, Offset: mesh.TexCoordOffset, ShaderLocation: 1},
		},
	}
}

// samplerStagingData maps the scene sampler description onto GPU sampler settings.
func samplerStagingData(info mesh.SamplerInfo) renderer.SamplerStagingData {
	s := renderer.SamplerStagingData{
		MagFilter:    wgpu.FilterModeNearest,
		MinFilter:    wgpu.FilterModeNearest,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}
	if info.Filter == mesh.FilterBilinear {
		s.MagFilter = wgpu.FilterModeLinear
		s.MinFilter = wgpu.FilterModeLinear
	}
	if info.Wrap == mesh.WrapRepeat {
		s.AddressModeU = wgpu.AddressModeRepeat
		s.AddressModeV = wgpu.AddressModeRepeat
		s.AddressModeW = wgpu.AddressModeRepeat
	}
	return s
}

// newCubePipeline picks the shader variants for lang and builds the scene pipeline description.
func newCubePipeline(lang shader.Language) (pipeline.Pipeline, error) {
	vsSource, err := CubeVertexShader.Pick(lang)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	fsSource, err := CubeFragmentShader.Pick(lang)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}

	pp := shader.NewPreProcessor(shaderIncludes)
	vs, err := shader.NewShader("cube_vs", shader.ShaderTypeVertex, vsSource, pp)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("cube_fs", shader.ShaderTypeFragment, fsSource, pp)
	if err != nil {
		return nil, err
	}

	return pipeline.NewPipeline(CubePipelineKey,
		pipeline.WithShaders(vs, fs),
		pipeline.WithVertexLayouts(cubeVertexLayout()),
		pipeline.WithDepth(true, true, wgpu.CompareFunctionLessEqual),
		pipeline.WithCullMode(wgpu.CullModeNone),
	), nil
}

// newSceneResources uploads the mesh, texture and sampler and builds the pipeline and bind group.
// The texture is created exactly once.
//
// Parameters:
//   - device: the GPU device
//
// Returns:
//   - *sceneResources: the created resources
//   - error: the first failure, wrapped with the step that failed
func newSceneResources(device Device) (*sceneResources, error) {
	vertices, indices := mesh.Vertices(), mesh.Indices()
	if err := mesh.Validate(vertices, indices); err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	p, err := newCubePipeline(device.ShaderLanguage())
	if err != nil {
		return nil, err
	}
	if err := device.RegisterPipelines(p); err != nil {
		return nil, err
	}

	res := &sceneResources{
		pipeline: p,
		mesh:     bind_group_provider.NewBindGroupProvider("Cube Mesh"),
		scene:    bind_group_provider.NewBindGroupProvider("Cube Scene", bind_group_provider.WithGroup(sceneGroup)),
	}
	created := false
	defer func() {
		if !created {
			res.Release()
		}
	}()

	if err := device.InitMeshBuffers(res.mesh, common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices)); err != nil {
		return nil, fmt.Errorf("mesh buffers: %w", err)
	}

	texture := renderer.TextureStagingData{
		Pixels: mesh.Texels(),
		Width:  mesh.TexelWidth,
		Height: mesh.TexelHeight,
		Format: wgpu.TextureFormatRGBA8Unorm,
	}
	if err := device.InitTextureView(res.scene, bindingTexture, texture); err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if err := device.InitSampler(res.scene, bindingSampler, samplerStagingData(mesh.Sampler())); err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}

	layout, ok := p.BindGroupLayoutDescriptors()[sceneGroup]
	if !ok {
		return nil, fmt.Errorf("pipeline %q declares no bind group %d", CubePipelineKey, sceneGroup)
	}
	if err := device.InitBindGroup(res.scene, layout); err != nil {
		return nil, fmt.Errorf("bind group: %w", err)
	}

	created = true
	return res, nil
}

// Release frees the buffers, texture, sampler and bind group.
func (r *sceneResources) Release() {
	r.mesh.Release()
	r.scene.Release()
}
