package window

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FirstTickRenders(t *testing.T) {
	s := NewScheduler(100, 50)
	start := time.Unix(0, 0)

	ev, ok := s.Tick(start, 800, 600)
	require.True(t, ok)
	assert.Equal(t, input.RenderEvent{ExtDt: 0, Width: 800, Height: 600}, ev)

	_, ok = s.Tick(start, 800, 600)
	assert.False(t, ok, "render is capped")
}

func TestScheduler_UpdateBeforeRender(t *testing.T) {
	s := NewScheduler(100, 0)
	start := time.Unix(0, 0)
	s.Tick(start, 1, 1)

	// 25ms later two updates are due; both come before the render.
	now := start.Add(25 * time.Millisecond)
	var got []input.Event
	for {
		ev, ok := s.Tick(now, 1, 1)
		require.True(t, ok, "uncapped rendering always has a tick")
		got = append(got, ev)
		if _, isRender := ev.(input.RenderEvent); isRender {
			break
		}
	}

	require.Len(t, got, 3)
	assert.Equal(t, input.UpdateEvent{Dt: 0.01}, got[0])
	assert.Equal(t, input.UpdateEvent{Dt: 0.01}, got[1])
	render := got[2].(input.RenderEvent)
	assert.InDelta(t, 0.005, render.ExtDt, 1e-9)
}

func TestScheduler_RenderCap(t *testing.T) {
	s := NewScheduler(1, 60)
	start := time.Unix(0, 0)
	_, ok := s.Tick(start, 1, 1)
	require.True(t, ok)

	renders := 0
	for ms := 1; ms <= 500; ms++ {
		if ev, ok := s.Tick(start.Add(time.Duration(ms)*time.Millisecond), 1, 1); ok {
			if _, isRender := ev.(input.RenderEvent); isRender {
				renders++
			}
		}
	}
	// At most 60 per second, so 30 in half a second.
	assert.LessOrEqual(t, renders, 30)
	assert.GreaterOrEqual(t, renders, 28)
}

func TestScheduler_StallDoesNotReplayForever(t *testing.T) {
	s := NewScheduler(100, 0)
	start := time.Unix(0, 0)
	s.Tick(start, 1, 1)

	now := start.Add(10 * time.Second)
	updates := 0
	for {
		ev, _ := s.Tick(now, 1, 1)
		if _, isRender := ev.(input.RenderEvent); isRender {
			break
		}
		updates++
	}
	assert.LessOrEqual(t, updates, 1)
}

func TestScheduler_Until(t *testing.T) {
	s := NewScheduler(100, 20)
	start := time.Unix(0, 0)
	assert.Zero(t, s.Until(start))

	s.Tick(start, 1, 1) // render
	assert.Equal(t, 10*time.Millisecond, s.Until(start))
	assert.Equal(t, 4*time.Millisecond, s.Until(start.Add(6*time.Millisecond)))
	assert.Zero(t, s.Until(start.Add(time.Second)))
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(0, 0)
	assert.Equal(t, time.Second/120, s.updateInterval)
	assert.Zero(t, s.renderInterval)
}
