package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/little-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/shader"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ClearValues are the colour and depth every frame starts from.
type ClearValues struct {
	Color [4]float64
	Depth float32
}

// RendererBackend is the API-specific half of the Renderer.
type RendererBackend interface {
	ShaderLanguage() shader.Language
	ConfigureSurface(width, height int) error
	SetPresentMode(mode PresentMode)
	SetClearValues(clear ClearValues)
	RegisterRenderPipeline(p pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginFrame() error
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)
	EndFrame()
	Present()
	Release()
}

// SampleCount maps a configured sample count to an MSAASampleCount.
// Zero and one both disable MSAA.
//
// Parameters:
//   - samples: the requested number of samples per pixel
//
// Returns:
//   - MSAASampleCount: the matching sample count
//   - error: an error if the count is not supported
func SampleCount(samples int) (MSAASampleCount, error) {
	switch samples {
	case 0, 1:
		return MSAAOff, nil
	case 4:
		return MSAA4x, nil
	default:
		return MSAAOff, fmt.Errorf("unsupported MSAA sample count %d, want 1 or 4", samples)
	}
}
