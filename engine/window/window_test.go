package window

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances by step every time it is read.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestNewEngineWindow_Defaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "Little Cube", w.title)
	width, height := w.DrawSize()
	assert.Equal(t, 640, width)
	assert.Equal(t, 480, height)
	assert.True(t, w.exitOnEsc)
	assert.True(t, w.CaptureCursor())
	require.NotNil(t, w.scheduler)
}

func TestNewEngineWindow_Options(t *testing.T) {
	w := newEngineWindow(
		WithTitle("cube"),
		WithWidth(1024),
		WithHeight(768),
		WithExitOnEsc(false),
		WithCaptureCursor(false),
		WithUpdatesPerSecond(60),
		WithMaxFPS(30),
	)
	assert.Equal(t, "cube", w.title)
	width, height := w.DrawSize()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 768, height)
	assert.False(t, w.exitOnEsc)
	assert.False(t, w.CaptureCursor())
	assert.Equal(t, time.Second/60, w.scheduler.updateInterval)
	assert.Equal(t, time.Second/30, w.scheduler.renderInterval)
}

func TestWindowNext_QueuedInputComesFirst(t *testing.T) {
	w := newEngineWindow(WithWidth(320), WithHeight(240))
	w.now = steppingClock(time.Millisecond)

	w.push(input.PressEvent{Key: 87})
	w.push(input.MouseRelativeEvent{DX: 3, DY: -1})

	ev, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, input.PressEvent{Key: 87}, ev)

	ev, ok = w.Next()
	require.True(t, ok)
	assert.Equal(t, input.MouseRelativeEvent{DX: 3, DY: -1}, ev)

	ev, ok = w.Next()
	require.True(t, ok)
	render, isRender := ev.(input.RenderEvent)
	require.True(t, isRender)
	assert.Equal(t, 320, render.Width)
	assert.Equal(t, 240, render.Height)
}

func TestWindowNext_EndsAfterClose(t *testing.T) {
	w := newEngineWindow()
	w.now = steppingClock(time.Millisecond)

	w.push(input.CloseEvent{})
	w.push(input.PressEvent{Key: 87})

	ev, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, input.CloseEvent{}, ev)

	_, ok = w.Next()
	assert.False(t, ok)

	w.push(input.PressEvent{Key: 65})
	_, ok = w.Next()
	assert.False(t, ok, "events after close are dropped")
}

func TestWindowSetCaptureCursor_WithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow()
	w.SetCaptureCursor(false)
	assert.False(t, w.CaptureCursor())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}
