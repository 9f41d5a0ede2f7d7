package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/little-cube/common"
	"github.com/Carmen-Shannon/little-cube/engine/camera"
	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/Carmen-Shannon/little-cube/engine/profiler"
	"github.com/Carmen-Shannon/little-cube/engine/renderer"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/little-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is the colour every frame starts from.
var DefaultClearColor = [4]float64{0.3, 0.3, 0.3, 1}

// DefaultCameraPosition is where the camera starts: slightly above and in front of the cube.
var DefaultCameraPosition = [3]float32{0.5, 0.5, 4}

// LoopState is the phase of the render loop.
type LoopState int

const (
	// LoopStateIdle waits for the next event.
	LoopStateIdle LoopState = iota
	// LoopStateUpdating handles an input, update or resize event.
	LoopStateUpdating
	// LoopStateDrawing renders a frame.
	LoopStateDrawing
	// LoopStateStopped is terminal; the window has closed.
	LoopStateStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopStateIdle:
		return "idle"
	case LoopStateUpdating:
		return "updating"
	case LoopStateDrawing:
		return "drawing"
	case LoopStateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("LoopState(%d)", int(s))
	}
}

// EventSource is the window side of the loop: an ordered event stream plus cursor control.
// Satisfied by window.Window.
type EventSource interface {
	Next() (input.Event, bool)
	DrawSize() (int, int)
	SetCaptureCursor(capture bool)
	CaptureCursor() bool
}

// Device is the GPU capability the loop renders with. Satisfied by renderer.Renderer.
type Device interface {
	ShaderLanguage() shader.Language
	RegisterPipelines(pipelines ...pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData renderer.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData renderer.SamplerStagingData) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	Clear(color [4]float64, depth float32)
	BeginFrame() error
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame()
	Present()
	Resize(width, height int) error
}

var _ Device = renderer.Renderer(nil)

// engine implements the Engine interface.
// All loop state lives here and is touched only by the goroutine running the loop.
type engine struct {
	logger *slog.Logger
	events EventSource
	device Device

	resources *sceneResources

	state       LoopState
	firstPerson camera.FirstPerson
	perspective camera.Perspective
	model       [16]float32
	uniform     camera.GPUCameraUniform
	clearColor  [4]float64

	toggleCaptureKey input.Key

	profiler         *profiler.Profiler
	profilingEnabled bool

	// Construction-time settings collected from builder options
	cameraPosition     [3]float32
	cameraSettings     camera.FirstPersonSettings
	cameraOptions      []camera.FirstPersonBuilderOption
	perspectiveOptions []camera.PerspectiveBuilderOption
}

// Engine runs the demo: it pulls events from the window, drives the first-person camera
// and draws the scene once per render tick.
type Engine interface {
	// Run processes events until the window closes. Per-frame failures are logged and the frame skipped.
	//
	// Returns:
	//   - error: nil once the event stream has ended
	Run() error

	// HandleEvent processes a single event.
	//
	// Parameters:
	//   - ev: the event to process
	//
	// Returns:
	//   - bool: false once the loop has stopped
	HandleEvent(ev input.Event) bool

	// State returns the current loop state.
	State() LoopState

	// Camera returns the first-person controller.
	Camera() camera.FirstPerson

	// Perspective returns the current projection parameters.
	Perspective() camera.Perspective

	// ModelViewProjection returns the matrix uploaded for the last drawn frame.
	ModelViewProjection() [16]float32

	// Release frees the GPU resources created at startup.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates the engine and all startup GPU resources: mesh buffers, texture, sampler, pipeline
// and bind group. On failure the resources created so far are released.
//
// Parameters:
//   - events: the window event stream
//   - device: the GPU device to render with
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the engine, ready to Run
//   - error: an error if a startup resource could not be created
func NewEngine(events EventSource, device Device, options ...EngineBuilderOption) (Engine, error) {
	if events == nil || device == nil {
		return nil, errors.New("engine requires an event source and a device")
	}

	e := &engine{
		logger:           slog.Default(),
		events:           events,
		device:           device,
		state:            LoopStateIdle,
		model:            common.Identity4(),
		clearColor:       DefaultClearColor,
		toggleCaptureKey: common.KeyC,
		cameraPosition:   DefaultCameraPosition,
		cameraSettings:   camera.KeyboardWASD(),
	}
	for _, opt := range options {
		opt(e)
	}

	e.firstPerson = camera.NewFirstPerson(e.cameraPosition, e.cameraSettings, e.cameraOptions...)
	width, height := events.DrawSize()
	e.perspective = camera.NewPerspective(width, height, e.perspectiveOptions...)
	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler(e.logger)
	}

	res, err := newSceneResources(device)
	if err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}
	e.resources = res

	e.logger.Info("engine ready",
		"width", width,
		"height", height,
		"fov", e.perspective.Fov,
		"shader_language", string(device.ShaderLanguage()),
	)
	return e, nil
}

func (e *engine) Run() error {
	for e.state != LoopStateStopped {
		ev, ok := e.events.Next()
		if !ok {
			e.state = LoopStateStopped
			break
		}
		e.HandleEvent(ev)
	}
	e.logger.Info("engine stopped")
	return nil
}

func (e *engine) HandleEvent(ev input.Event) bool {
	if e.state == LoopStateStopped {
		return false
	}

	switch ev := ev.(type) {
	case input.RenderEvent:
		e.state = LoopStateDrawing
		e.draw(ev)
	case input.ResizeEvent:
		e.state = LoopStateUpdating
		e.resize(ev.Width, ev.Height)
	case input.CloseEvent:
		e.state = LoopStateStopped
		return false
	case input.PressEvent:
		e.state = LoopStateUpdating
		if ev.Key == e.toggleCaptureKey {
			e.events.SetCaptureCursor(!e.events.CaptureCursor())
			e.logger.Debug("cursor capture toggled", "captured", e.events.CaptureCursor())
		}
		e.firstPerson.Event(ev)
	default:
		e.state = LoopStateUpdating
		e.firstPerson.Event(ev)
	}

	e.state = LoopStateIdle
	return true
}

// draw renders one frame. The matrix is recomputed from the current camera and projection every time.
func (e *engine) draw(ev input.RenderEvent) {
	view := e.firstPerson.Camera(float32(ev.ExtDt)).Orthogonal()
	e.uniform.ModelViewProj = camera.ModelViewProjection(e.model, view, e.perspective.Projection())

	e.device.Clear(e.clearColor, 1)
	if err := e.device.BeginFrame(); err != nil {
		e.logger.Warn("frame skipped", "error", err)
		return
	}

	e.device.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: e.resources.scene,
		Binding:  bindingCamera,
		Data:     e.uniform.Marshal(),
	}})

	if err := e.device.DrawCall(CubePipelineKey, e.resources.mesh, []bind_group_provider.BindGroupProvider{e.resources.scene}); err != nil {
		e.logger.Error("draw failed", "error", err)
	}
	e.device.EndFrame()
	e.device.Present()

	if e.profiler != nil {
		e.profiler.Tick()
	}
}

// resize recomputes the projection and refreshes the render targets.
// A size without a usable aspect ratio (a minimized window) keeps the previous projection and targets.
func (e *engine) resize(width, height int) {
	if !e.perspective.Resize(width, height) {
		e.logger.Debug("resize ignored", "width", width, "height", height)
		return
	}
	if err := e.device.Resize(width, height); err != nil {
		e.logger.Warn("surface reconfigure failed", "width", width, "height", height, "error", err)
		return
	}
	e.logger.Debug("resized", "width", width, "height", height, "aspect", e.perspective.Aspect)
}

func (e *engine) State() LoopState {
	return e.state
}

func (e *engine) Camera() camera.FirstPerson {
	return e.firstPerson
}

func (e *engine) Perspective() camera.Perspective {
	return e.perspective
}

func (e *engine) ModelViewProjection() [16]float32 {
	return e.uniform.ModelViewProj
}

func (e *engine) Release() {
	if e.resources != nil {
		e.resources.Release()
		e.resources = nil
	}
}
