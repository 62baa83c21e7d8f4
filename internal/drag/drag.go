// SPDX-License-Identifier: Unlicense OR MIT

// Package drag feeds raw pointer positions to a ruler for hosts that
// don't recognize gestures themselves.
package drag

import (
	"time"

	"github.com/hudson/ruler/internal/fling"
	"github.com/hudson/ruler/ruler"
)

// Tracker tracks a single pointer and estimates its velocity at
// release.
type Tracker struct {
	Ruler *ruler.Ruler

	epoch  time.Time
	est    fling.Extrapolation
	active bool
	x      float32
}

// Active reports whether a pointer is pressed.
func (t *Tracker) Active() bool {
	return t.active
}

// Press starts tracking a pointer at x.
func (t *Tracker) Press(now time.Time, x float32) {
	if t.epoch.IsZero() {
		t.epoch = now
	}
	t.active = true
	t.est = fling.Extrapolation{}
	t.sample(now, x)
	t.Ruler.PointerDown(x)
}

// Move drags the ruler to x. It is ignored if no pointer is pressed.
func (t *Tracker) Move(now time.Time, x float32) {
	if !t.active {
		return
	}
	t.sample(now, x)
	t.Ruler.PointerMove(x)
}

// Release ends the drag at x and reports whether the ruler flings.
func (t *Tracker) Release(now time.Time, x float32) bool {
	if !t.active {
		return false
	}
	t.active = false
	t.sample(now, x)
	t.Ruler.PointerUp(now, x, t.est.Estimate().Velocity)
	return t.Ruler.Flinging()
}

// Cancel ends the drag without a fling.
func (t *Tracker) Cancel() {
	if !t.active {
		return
	}
	t.active = false
	t.Ruler.PointerCancel()
}

// X returns the last pointer position.
func (t *Tracker) X() float32 {
	return t.x
}

func (t *Tracker) sample(now time.Time, x float32) {
	t.x = x
	t.est.Sample(now.Sub(t.epoch), x)
}
