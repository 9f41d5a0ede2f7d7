package engine

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/little-cube/common"
	"github.com/Carmen-Shannon/little-cube/engine/camera"
	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/Carmen-Shannon/little-cube/engine/renderer"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvents struct {
	queue         []input.Event
	width, height int
	capture       bool
}

func (f *fakeEvents) Next() (input.Event, bool) {
	if len(f.queue) == 0 {
		return nil, false
	}
	ev := f.queue[0]
	f.queue = f.queue[1:]
	return ev, true
}

func (f *fakeEvents) DrawSize() (int, int)          { return f.width, f.height }
func (f *fakeEvents) SetCaptureCursor(capture bool) { f.capture = capture }
func (f *fakeEvents) CaptureCursor() bool           { return f.capture }

type fakeDevice struct {
	lang shader.Language

	pipelines   []pipeline.Pipeline
	vertexBytes int
	indexBytes  int
	indexCount  int
	textures    []renderer.TextureStagingData
	samplers    []renderer.SamplerStagingData
	bindGroups  []wgpu.BindGroupLayoutDescriptor

	writes   [][]byte
	clears   [][4]float64
	draws    []string
	ends     int
	presents int
	resizes  [][2]int

	textureErr error
	beginErr   error
}

func (d *fakeDevice) ShaderLanguage() shader.Language { return d.lang }

func (d *fakeDevice) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	d.pipelines = append(d.pipelines, pipelines...)
	return nil
}

func (d *fakeDevice) InitMeshBuffers(_ bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	d.vertexBytes, d.indexBytes, d.indexCount = len(vertexData), len(indexData), indexCount
	return nil
}

func (d *fakeDevice) InitTextureView(_ bind_group_provider.BindGroupProvider, _ int, data renderer.TextureStagingData) error {
	if d.textureErr != nil {
		return d.textureErr
	}
	d.textures = append(d.textures, data)
	return nil
}

func (d *fakeDevice) InitSampler(_ bind_group_provider.BindGroupProvider, _ int, data renderer.SamplerStagingData) error {
	d.samplers = append(d.samplers, data)
	return nil
}

func (d *fakeDevice) InitBindGroup(_ bind_group_provider.BindGroupProvider, desc wgpu.BindGroupLayoutDescriptor) error {
	d.bindGroups = append(d.bindGroups, desc)
	return nil
}

func (d *fakeDevice) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		d.writes = append(d.writes, w.Data)
	}
}

func (d *fakeDevice) Clear(color [4]float64, _ float32) { d.clears = append(d.clears, color) }
func (d *fakeDevice) BeginFrame() error                 { return d.beginErr }

func (d *fakeDevice) DrawCall(key string, mesh bind_group_provider.BindGroupProvider, _ []bind_group_provider.BindGroupProvider) error {
	d.draws = append(d.draws, key+"/"+mesh.Label())
	return nil
}

func (d *fakeDevice) EndFrame() { d.ends++ }
func (d *fakeDevice) Present()  { d.presents++ }

func (d *fakeDevice) Resize(width, height int) error {
	d.resizes = append(d.resizes, [2]int{width, height})
	return nil
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestEngine(t *testing.T, events ...input.Event) (*engine, *fakeEvents, *fakeDevice) {
	t.Helper()
	src := &fakeEvents{queue: events, width: 640, height: 480, capture: true}
	dev := &fakeDevice{lang: shader.LanguageWGSL}
	e, err := NewEngine(src, dev, WithLogger(quietLogger))
	require.NoError(t, err)
	return e.(*engine), src, dev
}

// clipOf transforms the world origin by the last uploaded matrix.
func clipOf(e *engine) [4]float32 {
	return common.MulVec4(e.ModelViewProjection(), [4]float32{0, 0, 0, 1})
}

func TestNewEngine_CreatesStartupResourcesOnce(t *testing.T) {
	_, _, dev := newTestEngine(t)

	require.Len(t, dev.pipelines, 1)
	p := dev.pipelines[0]
	assert.Equal(t, CubePipelineKey, p.PipelineKey())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	require.Len(t, p.VertexLayouts(), 1)
	assert.Equal(t, uint64(8), p.VertexLayouts()[0].ArrayStride)

	assert.Equal(t, 14*8, dev.vertexBytes)
	assert.Equal(t, 48*2, dev.indexBytes)
	assert.Equal(t, 48, dev.indexCount)

	require.Len(t, dev.textures, 1, "the texture is created exactly once")
	assert.Equal(t, uint32(2), dev.textures[0].Width)
	assert.Equal(t, uint32(2), dev.textures[0].Height)
	assert.Len(t, dev.textures[0].Pixels, 16)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, dev.textures[0].Format)

	require.Len(t, dev.samplers, 1)
	assert.Equal(t, wgpu.FilterModeLinear, dev.samplers[0].MagFilter)
	assert.Equal(t, wgpu.FilterModeLinear, dev.samplers[0].MinFilter)
	assert.Equal(t, wgpu.AddressModeClampToEdge, dev.samplers[0].AddressModeU)
	assert.Equal(t, wgpu.AddressModeClampToEdge, dev.samplers[0].AddressModeV)

	require.Len(t, dev.bindGroups, 1)
	entries := dev.bindGroups[0].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
	assert.Equal(t, uint64(64), entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[2].Sampler.Type)
}

func TestNewEngine_MissingShaderVariant(t *testing.T) {
	src := &fakeEvents{width: 640, height: 480}
	dev := &fakeDevice{lang: shader.Language("glsl-150")}
	_, err := NewEngine(src, dev, WithLogger(quietLogger))
	require.Error(t, err)
	assert.ErrorIs(t, err, shader.ErrVariantNotFound)
	assert.Empty(t, dev.pipelines)
}

func TestNewEngine_DeviceFailureIsFatal(t *testing.T) {
	boom := errors.New("out of memory")
	src := &fakeEvents{width: 640, height: 480}
	dev := &fakeDevice{lang: shader.LanguageWGSL, textureErr: boom}
	_, err := NewEngine(src, dev, WithLogger(quietLogger))
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "texture")
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	_, err := NewEngine(nil, &fakeDevice{})
	assert.Error(t, err)
	_, err = NewEngine(&fakeEvents{}, nil)
	assert.Error(t, err)
}

func TestEngine_RenderTickDrawsOneFrame(t *testing.T) {
	e, _, dev := newTestEngine(t)

	assert.True(t, e.HandleEvent(input.RenderEvent{ExtDt: 0, Width: 640, Height: 480}))
	assert.Equal(t, LoopStateIdle, e.State())

	require.Len(t, dev.clears, 1)
	assert.Equal(t, DefaultClearColor, dev.clears[0])
	require.Len(t, dev.writes, 1)
	assert.Len(t, dev.writes[0], 64)
	assert.Equal(t, []string{"cube/Cube Mesh"}, dev.draws)
	assert.Equal(t, 1, dev.ends)
	assert.Equal(t, 1, dev.presents)

	// Camera at (0.5, 0.5, 4) looking down -Z with a 90 degree FOV at 4:3.
	clip := clipOf(e)
	assert.InDelta(t, 4, clip[3], 1e-4)
	assert.InDelta(t, -0.09375, clip[0]/clip[3], 1e-4)
	assert.InDelta(t, -0.125, clip[1]/clip[3], 1e-4)
	assert.Greater(t, clip[2]/clip[3], float32(0))
	assert.Less(t, clip[2]/clip[3], float32(1))
}

func TestEngine_PressForwardThenRenderExtrapolates(t *testing.T) {
	e, _, dev := newTestEngine(t)

	e.HandleEvent(input.RenderEvent{ExtDt: 0})
	before := e.ModelViewProjection()

	e.HandleEvent(input.PressEvent{Key: common.KeyW})
	e.HandleEvent(input.RenderEvent{ExtDt: 1})
	after := e.ModelViewProjection()

	assert.NotEqual(t, before, after)
	assert.InDelta(t, 3, clipOf(e)[3], 1e-4, "one second forward at speed 1")

	// Rendering extrapolates without moving the controller.
	assert.Equal(t, [3]float32{0.5, 0.5, 4}, e.Camera().Position())
	assert.Len(t, dev.writes, 2)
}

func TestEngine_UpdateTickMovesCamera(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.HandleEvent(input.PressEvent{Key: common.KeyW})
	e.HandleEvent(input.UpdateEvent{Dt: 0.5})
	e.HandleEvent(input.ReleaseEvent{Key: common.KeyW})
	e.HandleEvent(input.UpdateEvent{Dt: 0.5})

	pos := e.Camera().Position()
	assert.InDelta(t, 0.5, pos[0], 1e-5)
	assert.InDelta(t, 0.5, pos[1], 1e-5)
	assert.InDelta(t, 3.5, pos[2], 1e-5)
}

func TestEngine_MatrixIsRecomputedEveryFrame(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.HandleEvent(input.RenderEvent{})
	first := e.ModelViewProjection()
	e.HandleEvent(input.MouseRelativeEvent{DX: 90, DY: 0})
	e.HandleEvent(input.RenderEvent{})

	assert.NotEqual(t, first, e.ModelViewProjection())
}

func TestEngine_Resize(t *testing.T) {
	e, _, dev := newTestEngine(t)
	fov, near, far := e.Perspective().Fov, e.Perspective().Near, e.Perspective().Far

	e.HandleEvent(input.ResizeEvent{Width: 1280, Height: 640})
	assert.InDelta(t, 2, e.Perspective().Aspect, 1e-6)
	assert.Equal(t, [][2]int{{1280, 640}}, dev.resizes)
	assert.Equal(t, fov, e.Perspective().Fov)
	assert.Equal(t, near, e.Perspective().Near)
	assert.Equal(t, far, e.Perspective().Far)
	assert.Equal(t, LoopStateIdle, e.State())
}

func TestEngine_ResizeToZeroHeightKeepsProjection(t *testing.T) {
	e, _, dev := newTestEngine(t)
	before := e.Perspective()

	e.HandleEvent(input.ResizeEvent{Width: 640, Height: 0})

	assert.Equal(t, before, e.Perspective())
	assert.Empty(t, dev.resizes)
}

func TestEngine_FrameAcquireFailureSkipsFrame(t *testing.T) {
	e, _, dev := newTestEngine(t)
	dev.beginErr = errors.New("surface outdated")

	assert.True(t, e.HandleEvent(input.RenderEvent{ExtDt: 0}))

	assert.Empty(t, dev.draws)
	assert.Zero(t, dev.presents)
	assert.Equal(t, LoopStateIdle, e.State())
}

func TestEngine_ToggleCaptureKey(t *testing.T) {
	e, src, _ := newTestEngine(t)

	e.HandleEvent(input.PressEvent{Key: common.KeyC})
	assert.False(t, src.capture)
	e.HandleEvent(input.ReleaseEvent{Key: common.KeyC})
	assert.False(t, src.capture)
	e.HandleEvent(input.PressEvent{Key: common.KeyC})
	assert.True(t, src.capture)
}

func TestEngine_RunStopsOnClose(t *testing.T) {
	e, src, dev := newTestEngine(t,
		input.UpdateEvent{Dt: 0.01},
		input.RenderEvent{ExtDt: 0.005},
		input.CloseEvent{},
		input.RenderEvent{ExtDt: 0},
	)

	require.NoError(t, e.Run())
	assert.Equal(t, LoopStateStopped, e.State())
	assert.Equal(t, 1, dev.presents)
	assert.Len(t, src.queue, 1, "events after close are not consumed")
	assert.False(t, e.HandleEvent(input.RenderEvent{}))
}

func TestEngine_RunStopsWhenStreamEnds(t *testing.T) {
	e, _, dev := newTestEngine(t, input.RenderEvent{})

	require.NoError(t, e.Run())
	assert.Equal(t, LoopStateStopped, e.State())
	assert.Equal(t, 1, dev.presents)
}

func TestEngine_Options(t *testing.T) {
	src := &fakeEvents{width: 100, height: 100}
	dev := &fakeDevice{lang: shader.LanguageWGSL}
	eng, err := NewEngine(src, dev,
		WithLogger(quietLogger),
		WithProfiling(true),
		WithClearColor([4]float64{1, 0, 0, 1}),
		WithCamera([3]float32{1, 2, 3}, camera.KeyboardZQSD()),
		WithPerspective(camera.WithFov(60)),
		WithToggleCaptureKey(common.KeyQ),
	)
	require.NoError(t, err)
	e := eng.(*engine)

	assert.NotNil(t, e.profiler)
	assert.Equal(t, [3]float32{1, 2, 3}, e.Camera().Position())
	assert.Equal(t, camera.KeyboardZQSD(), e.Camera().Settings())
	assert.Equal(t, float32(60), e.Perspective().Fov)
	assert.Equal(t, float32(1), e.Perspective().Aspect)
	assert.Equal(t, input.Key(common.KeyQ), e.toggleCaptureKey)

	e.HandleEvent(input.RenderEvent{})
	assert.Equal(t, [4]float64{1, 0, 0, 1}, dev.clears[0])
}

func TestLoopStateString(t *testing.T) {
	assert.Equal(t, "idle", LoopStateIdle.String())
	assert.Equal(t, "updating", LoopStateUpdating.String())
	assert.Equal(t, "drawing", LoopStateDrawing.String())
	assert.Equal(t, "stopped", LoopStateStopped.String())
	assert.Equal(t, "LoopState(9)", LoopState(9).String())
}
