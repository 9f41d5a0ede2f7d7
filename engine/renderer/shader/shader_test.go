package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cameraSnippet = `struct CameraUniform {
    model_view_proj: mat4x4<f32>,
};`

const vertexSource = `//#include camera_uniform

struct VertexInput {
    @location(0) pos: vec4<i32>,
    @location(1) tex_coord: vec2<i32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) tex_coord: vec2<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;

/* not an entry point: @fragment fn nope() {} */
@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.tex_coord = vec2<f32>(in.tex_coord);
    out.clip = camera.model_view_proj * vec4<f32>(in.pos);
    return out;
}
`

const fragmentSource = `@group(0) @binding(1) var t_color: texture_2d<f32>;
@group(0) @binding(2) var s_color: sampler; // bilinear

@fragment
fn fs_main(@location(0) tex_coord: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(t_color, s_color, tex_coord);
}
`

func TestNewShaderVertex(t *testing.T) {
	pp := NewPreProcessor(map[string]string{"camera_uniform": cameraSnippet})
	s, err := NewShader("cube_vs", ShaderTypeVertex, vertexSource, pp)
	require.NoError(t, err)

	assert.Equal(t, "cube_vs", s.Key())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Contains(t, s.Source(), "model_view_proj: mat4x4<f32>")
	assert.NotContains(t, s.Source(), "#include")
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)

	layouts := s.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 1)
	entries := layouts[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, entries[0].Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
	assert.Equal(t, uint64(64), entries[0].Buffer.MinBindingSize)
	assert.Equal(t, "camera", s.BindGroupVarName(0, 0))
	assert.Equal(t, "", s.BindGroupVarName(3, 0))
}

func TestNewShaderFragment(t *testing.T) {
	s, err := NewShader("cube_fs", ShaderTypeFragment, fragmentSource, nil)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	entries := s.BindGroupLayoutDescriptors()[0].Entries
	require.Len(t, entries, 2)

	assert.Equal(t, uint32(1), entries[0].Binding)
	assert.Equal(t, wgpu.TextureViewDimension2D, entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.ShaderStageFragment, entries[0].Visibility)

	assert.Equal(t, uint32(2), entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[1].Sampler.Type)
	assert.Equal(t, "s_color", s.BindGroupVarName(0, 2))
}

func TestNewShaderErrors(t *testing.T) {
	_, err := NewShader("missing", ShaderTypeFragment, vertexSource, NewPreProcessor(map[string]string{"camera_uniform": cameraSnippet}))
	assert.ErrorIs(t, err, ErrNoEntryPoint)

	_, err = NewShader("unknown_include", ShaderTypeVertex, vertexSource, nil)
	assert.ErrorContains(t, err, `unknown include "camera_uniform"`)
}

func TestVariantsPick(t *testing.T) {
	v := Variants{LanguageWGSL: fragmentSource}

	src, err := v.Pick(LanguageWGSL)
	require.NoError(t, err)
	assert.Equal(t, fragmentSource, src)

	_, err = v.Pick(Language("glsl_150"))
	assert.ErrorIs(t, err, ErrVariantNotFound)
	assert.ErrorContains(t, err, "have wgsl")

	_, err = Variants{}.Pick(LanguageWGSL)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestStructLayouts(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct Inner { a: vec3<f32>, b: f32, };
struct Outer {
    m: mat4x4<f32>,
    inner: Inner,
    list: array<vec4<f32>, 3>,
    @builtin(position) p: vec4<f32>,
};`))
	sizes := computeStructSizes(structs)

	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Inner"])
	assert.Equal(t, wgslTypeLayout{128, 16}, sizes["Outer"])

	_, ok := resolveTypeLayout("array<f32>", sizes)
	assert.False(t, ok)
}

func TestStripComments(t *testing.T) {
	src := "a // one\n/* b /* nested */ c */d\ne"
	assert.Equal(t, "a \nd\ne", stripComments(src))
}
