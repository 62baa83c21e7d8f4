// SPDX-License-Identifier: Unlicense OR MIT

/*
Package ruler implements the state of a horizontal ruler: a tape of
tick marks that is dragged or flung to select a value in a range.

A Ruler converts pointer input into a tape offset, clamps the offset
to the range and derives the selected value from it. Ruler does not
draw; Render emits lines and labels to a Surface, and the caller is
responsible for calling AdvanceFrame once per frame while a fling is
in progress.

The tape offset is zero when Min is selected and decreases as the
selected value increases:

	value = Min + round(|offset| / Spacing)

While dragging and flinging the offset follows the pointer and the
momentum exactly. When a gesture ends the offset snaps to the tick of
the selected value.
*/
package ruler

import (
	"math"
	"strconv"
	"time"
)

// Ruler tracks the offset and gesture state of a ruler. A Ruler
// must only be used from one goroutine.
type Ruler struct {
	cfg     Config
	physics Physics

	ticks     int
	offset    float32
	maxOffset float32
	// Pointer movement not yet applied to offset.
	pending float32
	// Last pointer position.
	anchor float32
	state  State

	decay Decay
	// Decay position at the previous frame.
	last float32

	width, height int

	onChange func(value float32)
	// Last value reported to onChange.
	reported float32
}

// State is the gesture state of a Ruler.
type State uint8

const (
	// StateIdle is the state when no gesture is in progress.
	StateIdle State = iota
	// StateDragging is reported while a pointer is down.
	StateDragging
	// StateFlinging is reported while the momentum of a fling
	// decays.
	StateFlinging
)

// New returns a ruler for cfg. Configuration errors never fail: an
// out of range initial value is clamped, and a configuration that
// fails Validate results in a ruler that can't move.
func New(cfg Config) *Ruler {
	r := &Ruler{
		cfg:     cfg,
		physics: cfg.Physics,
	}
	if r.physics == nil {
		r.physics = FrictionPhysics{}
	}
	if cfg.Validate() == nil {
		// Tolerate rounding errors in the span, but never let the
		// last tick exceed Max.
		r.ticks = int(math.Floor(float64(cfg.Max-cfg.Min) + 1e-3))
	}
	r.maxOffset = -float32(r.ticks) * r.spacing()
	r.offset = (cfg.Min - cfg.Initial) * r.spacing()
	r.clamp()
	r.reported = r.Value()
	return r
}

// OnChange registers fn to be called whenever the selected value
// changes. A nil fn removes the callback.
func (r *Ruler) OnChange(fn func(value float32)) {
	r.onChange = fn
}

// Config returns the configuration of the ruler.
func (r *Ruler) Config() Config {
	return r.cfg
}

// Value returns the selected value.
func (r *Ruler) Value() float32 {
	return r.cfg.Min + float32(r.tick())
}

// SetValue selects v, clamped to the range and rounded to the nearest
// tick. Any fling in progress is stopped.
func (r *Ruler) SetValue(v float32) {
	if r.state == StateFlinging {
		r.stop()
	}
	r.pending = 0
	n := int(math.Round(float64(v - r.cfg.Min)))
	n = max(min(n, r.ticks), 0)
	r.offset = -float32(n) * r.spacing()
	r.notify(r.cfg.Min + float32(n))
}

// State returns the gesture state.
func (r *Ruler) State() State {
	return r.state
}

// Flinging reports whether a fling is in progress and AdvanceFrame
// should be called for the next frame.
func (r *Ruler) Flinging() bool {
	return r.state == StateFlinging
}

// Offset returns the current tape offset in the range
// [MaxOffset(), 0].
func (r *Ruler) Offset() float32 {
	return r.offset
}

// MaxOffset returns the offset where Max is selected.
func (r *Ruler) MaxOffset() float32 {
	return r.maxOffset
}

// Size returns the size last passed to SizeChanged.
func (r *Ruler) Size() (width, height int) {
	return r.width, r.height
}

// PointerDown starts a drag at x, stopping any fling in progress.
func (r *Ruler) PointerDown(x float32) {
	if r.state == StateFlinging {
		r.stop()
	}
	r.state = StateDragging
	r.anchor = x
	r.pending = 0
}

// PointerMove drags the tape to x. A move without a preceding
// PointerDown starts a drag at x.
func (r *Ruler) PointerMove(x float32) {
	if r.state != StateDragging {
		r.PointerDown(x)
		return
	}
	r.pending = r.anchor - x
	r.move()
	r.anchor = x
}

// PointerUp ends a drag at x and snaps the tape to the selected tick.
// If the magnitude of velocity, in pixels per second, exceeds the
// minimum fling velocity, a fling starts at now.
func (r *Ruler) PointerUp(now time.Time, x, velocity float32) {
	if r.state != StateDragging {
		return
	}
	r.pending = r.anchor - x
	r.anchor = x
	r.commit()
	r.state = StateIdle
	if abs(velocity) > r.cfg.MinFlingVelocity {
		r.decay = r.physics.StartDecay(now, velocity)
		r.last = 0
		r.state = StateFlinging
	}
}

// PointerCancel ends a drag without a fling.
func (r *Ruler) PointerCancel() {
	if r.state != StateDragging {
		return
	}
	r.pending = 0
	r.commit()
	r.state = StateIdle
}

// SizeChanged records the size of the surface and re-clamps the offset.
func (r *Ruler) SizeChanged(width, height int) {
	r.width, r.height = width, height
	r.pending = 0
	r.clamp()
}

// AdvanceFrame moves the tape according to the fling in progress and
// reports whether the fling continues. When the fling ends, the tape
// snaps to the selected tick.
func (r *Ruler) AdvanceFrame(now time.Time) bool {
	if r.state != StateFlinging {
		return false
	}
	pos := r.decay.Position(now)
	r.pending = r.last - pos
	r.last = pos
	if r.decay.Finished(now) {
		r.stop()
		r.commit()
		return false
	}
	if r.move() {
		// The tape hit an end.
		r.stop()
		r.commit()
		return false
	}
	return true
}

// Render emits the ticks, labels and center indicator for the current
// offset to s.
func (r *Ruler) Render(s Surface) {
	cx := float32(r.width) / 2
	spacing := r.spacing()
	for i := 0; i <= r.ticks; i++ {
		x := cx + r.offset + float32(i)*spacing
		kind, h := Minor, r.cfg.MinorHeight
		switch {
		case i%10 == 0:
			kind, h = Major, r.cfg.MajorHeight
		case i%5 == 0:
			kind, h = Mid, r.cfg.MidHeight
		}
		s.Line(Line{
			Kind:  kind,
			X:     x,
			Y0:    0,
			Y1:    h,
			Width: r.cfg.LineWidth,
			Color: r.cfg.TickColor,
		})
		if kind == Major {
			s.Label(Label{
				X:        x,
				Baseline: h + r.cfg.LabelGap,
				Size:     r.cfg.TextSize,
				Text:     FormatValue(r.cfg.Min + float32(i)),
				Color:    r.cfg.LabelColor,
			})
		}
	}
	s.Line(Line{
		Kind:  Indicator,
		X:     cx,
		Y0:    0,
		Y1:    r.cfg.IndicatorLength,
		Width: r.cfg.LineWidth,
		Color: r.cfg.IndicatorColor,
	})
}

// FormatValue formats a ruler value in its shortest decimal form.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// move applies the pending movement without snapping and reports
// whether the offset was clamped.
func (r *Ruler) move() bool {
	r.offset -= r.pending
	r.pending = 0
	clamped := r.clamp()
	r.notify(r.Value())
	return clamped
}

// commit applies the pending movement and snaps the offset to the
// selected tick.
func (r *Ruler) commit() {
	r.offset -= r.pending
	r.pending = 0
	r.clamp()
	n := r.tick()
	r.offset = -float32(n) * r.spacing()
	r.notify(r.cfg.Min + float32(n))
}

// tick returns the index of the tick nearest to the offset.
func (r *Ruler) tick() int {
	s := r.spacing()
	if s == 0 {
		return 0
	}
	n := int(math.Round(float64(abs(r.offset) / s)))
	return min(n, r.ticks)
}

func (r *Ruler) clamp() bool {
	switch {
	case r.offset > 0:
		r.offset = 0
	case r.offset < r.maxOffset:
		r.offset = r.maxOffset
	default:
		return false
	}
	return true
}

func (r *Ruler) stop() {
	r.decay = nil
	r.last = 0
	r.state = StateIdle
}

func (r *Ruler) notify(v float32) {
	if v == r.reported {
		return
	}
	r.reported = v
	if r.onChange != nil {
		r.onChange(v)
	}
}

func (r *Ruler) spacing() float32 {
	if r.ticks == 0 {
		return 0
	}
	return r.cfg.Spacing
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateDragging:
		return "StateDragging"
	case StateFlinging:
		return "StateFlinging"
	default:
		panic("unreachable")
	}
}
