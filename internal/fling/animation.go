// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Animation is a fling whose velocity decays exponentially with
// time. Positions are relative to where the fling started and
// are unbounded; clamping is left to the caller.
type Animation struct {
	// Initial time.
	t0 time.Time
	// Initial velocity in pixels per second.
	v0 float32
	// Time until the velocity drops below thresholdVelocity.
	dur time.Duration
}

const (
	// Velocity in pixels per second below which an animation
	// is considered settled.
	thresholdVelocity = 1
	// Exponential friction decay per second.
	friction = 2
)

// Start a fling given a starting velocity. Returns whether a
// fling was started.
func (f *Animation) Start(now time.Time, velocity float32) bool {
	*f = Animation{}
	if -thresholdVelocity <= velocity && velocity <= thresholdVelocity {
		return false
	}
	f.t0 = now
	f.v0 = velocity
	secs := math.Log(float64(abs(velocity))/thresholdVelocity) / friction
	f.dur = time.Duration(secs * float64(time.Second))
	return true
}

// Stop the animation.
func (f *Animation) Stop() {
	*f = Animation{}
}

// Active reports whether the animation was started and not stopped.
func (f *Animation) Active() bool {
	return f.v0 != 0
}

// Finished reports whether the animation has reached its final position
// at time now. An inactive animation is always finished.
func (f *Animation) Finished(now time.Time) bool {
	return !f.Active() || now.Sub(f.t0) >= f.dur
}

// Position returns the distance travelled since the start of the fling.
// The position stops changing once the animation is finished.
func (f *Animation) Position(now time.Time) float32 {
	if !f.Active() {
		return 0
	}
	return f.at(f.elapsed(now))
}

// Final returns the position where the animation settles.
func (f *Animation) Final() float32 {
	if !f.Active() {
		return 0
	}
	return f.at(f.dur)
}

// Velocity returns the velocity at time now, or zero if the animation
// is finished.
func (f *Animation) Velocity(now time.Time) float32 {
	if f.Finished(now) {
		return 0
	}
	k := f.elapsed(now).Seconds()
	return f.v0 * float32(math.Exp(-friction*k))
}

func (f *Animation) elapsed(now time.Time) time.Duration {
	d := now.Sub(f.t0)
	if d < 0 {
		d = 0
	}
	if d > f.dur {
		d = f.dur
	}
	return d
}

// at integrates v0*exp(-friction*t) from 0 to d.
func (f *Animation) at(d time.Duration) float32 {
	k := d.Seconds()
	return f.v0 * float32(1-math.Exp(-friction*k)) / friction
}
