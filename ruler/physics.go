// SPDX-License-Identifier: Unlicense OR MIT

package ruler

import (
	"time"

	"github.com/hudson/ruler/internal/fling"
)

// Physics starts momentum decays for flings.
type Physics interface {
	// StartDecay starts a decay at now with the given initial
	// velocity in pixels per second.
	StartDecay(now time.Time, velocity float32) Decay
}

// Decay is a decaying motion along the ruler. The motion is unbounded;
// the ruler stops it at its ends.
type Decay interface {
	// Position returns the distance travelled since the start, in
	// pixels.
	Position(now time.Time) float32
	// Finished reports whether the terminal position is reached.
	Finished(now time.Time) bool
}

// FrictionPhysics decays velocities exponentially.
type FrictionPhysics struct {
	// MaxVelocity limits the initial velocity. Zero means 8000 pixels
	// per second.
	MaxVelocity float32
}

const defaultMaxVelocity = 8000

// StartDecay clamps velocity to MaxVelocity and starts a decay.
func (p FrictionPhysics) StartDecay(now time.Time, velocity float32) Decay {
	limit := p.MaxVelocity
	if limit <= 0 {
		limit = defaultMaxVelocity
	}
	velocity = max(min(velocity, limit), -limit)
	a := new(fling.Animation)
	a.Start(now, velocity)
	return a
}
