package window

import (
	"time"

	"github.com/Carmen-Shannon/little-cube/engine/input"
)

// maxUpdateLag caps how many update ticks the scheduler replays after a stall.
const maxUpdateLag = 10

// Scheduler produces fixed-rate update ticks and capped render ticks from a clock.
// Update ticks take priority: a render tick is only emitted once no update is due,
// so RenderEvent.ExtDt is always shorter than one update interval after a catch-up.
type Scheduler struct {
	updateInterval time.Duration
	renderInterval time.Duration

	started    bool
	lastUpdate time.Time
	nextUpdate time.Time
	nextRender time.Time
}

// NewScheduler creates a Scheduler emitting updatesPerSecond update ticks and at most maxFPS render ticks per second.
// A maxFPS of zero or less leaves rendering uncapped.
//
// Parameters:
//   - updatesPerSecond: update tick rate, must be positive
//   - maxFPS: render tick cap, or zero for no cap
//
// Returns:
//   - *Scheduler: the scheduler
func NewScheduler(updatesPerSecond, maxFPS int) *Scheduler {
	if updatesPerSecond <= 0 {
		updatesPerSecond = 120
	}
	s := &Scheduler{
		updateInterval: time.Second / time.Duration(updatesPerSecond),
	}
	if maxFPS > 0 {
		s.renderInterval = time.Second / time.Duration(maxFPS)
	}
	return s
}

// Tick returns the event due at now, if any.
//
// Parameters:
//   - now: the current time
//   - width: drawable width reported on render ticks
//   - height: drawable height reported on render ticks
//
// Returns:
//   - input.Event: an UpdateEvent or RenderEvent
//   - bool: false if nothing is due
func (s *Scheduler) Tick(now time.Time, width, height int) (input.Event, bool) {
	if !s.started {
		s.started = true
		s.lastUpdate = now
		s.nextUpdate = now.Add(s.updateInterval)
		s.nextRender = now
	}

	if !now.Before(s.nextUpdate) {
		if now.Sub(s.nextUpdate) > maxUpdateLag*s.updateInterval {
			s.nextUpdate = now
		}
		s.lastUpdate = s.nextUpdate
		s.nextUpdate = s.nextUpdate.Add(s.updateInterval)
		return input.UpdateEvent{Dt: s.updateInterval.Seconds()}, true
	}

	if !now.Before(s.nextRender) {
		s.nextRender = now.Add(s.renderInterval)
		extDt := now.Sub(s.lastUpdate).Seconds()
		if extDt < 0 {
			extDt = 0
		}
		return input.RenderEvent{ExtDt: extDt, Width: width, Height: height}, true
	}

	return nil, false
}

// Until returns how long the caller may block before the next tick is due.
//
// Parameters:
//   - now: the current time
//
// Returns:
//   - time.Duration: the wait, never negative
func (s *Scheduler) Until(now time.Time) time.Duration {
	if !s.started {
		return 0
	}
	next := s.nextUpdate
	if s.nextRender.Before(next) {
		next = s.nextRender
	}
	if d := next.Sub(now); d > 0 {
		return d
	}
	return 0
}
