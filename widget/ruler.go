// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"

	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/hudson/ruler/gesture"
	"github.com/hudson/ruler/ruler"
)

// Ruler is for selecting a value by dragging or flinging a tape of
// ticks.
type Ruler struct {
	// Config describes the ruler in device independent units: lengths
	// are in dp and velocities in dp per second. Changes take effect
	// at the next Update only if the screen density changes or Reset
	// is called.
	Config ruler.Config

	r       *ruler.Ruler
	scale   float32
	pan     gesture.Pan
	list    ruler.DrawList
	size    image.Point
	changed bool
}

// Update processes pointer events and the fling in progress, and
// reports whether the value changed since the last call to Update.
func (r *Ruler) Update(gtx layout.Context) bool {
	r.init(gtx)
	for {
		e, ok := r.pan.Update(gtx.Metric, gtx.Source)
		if !ok {
			break
		}
		switch e.Kind {
		case gesture.KindPress:
			r.r.PointerDown(e.X)
		case gesture.KindMove:
			r.r.PointerMove(e.X)
		case gesture.KindRelease:
			r.r.PointerUp(gtx.Now, e.X, e.Velocity)
		case gesture.KindCancel:
			r.r.PointerCancel()
		}
	}
	if r.r.AdvanceFrame(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}
	changed := r.changed
	r.changed = false
	return changed
}

// Layout processes events and adds the pointer handler for an area of
// gtx.Constraints.Min.
func (r *Ruler) Layout(gtx layout.Context) layout.Dimensions {
	r.Update(gtx)
	size := gtx.Constraints.Min
	if size != r.size {
		r.size = size
		r.r.SizeChanged(size.X, size.Y)
	}
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	pointer.CursorGrab.Add(gtx.Ops)
	r.pan.Add(gtx.Ops)
	return layout.Dimensions{Size: size}
}

// Draw returns the primitives of the current frame, in pixels. The list
// is reused by the next call to Draw.
func (r *Ruler) Draw() *ruler.DrawList {
	r.list.Reset()
	if r.r != nil {
		r.r.Render(&r.list)
	}
	return &r.list
}

// Value returns the selected value. Before the first Update it is
// the configured initial value.
func (r *Ruler) Value() float32 {
	if r.r == nil {
		return r.Config.Initial
	}
	return r.r.Value()
}

// SetValue selects v. Before the first Update it replaces the
// configured initial value.
func (r *Ruler) SetValue(v float32) {
	if r.r == nil {
		r.Config.Initial = v
		return
	}
	r.r.SetValue(v)
}

// State returns the gesture state.
func (r *Ruler) State() ruler.State {
	if r.r == nil {
		return ruler.StateIdle
	}
	return r.r.State()
}

// Reset discards the ruler state so that Config takes effect at the
// next Update. The selected value is kept.
func (r *Ruler) Reset() {
	if r.r != nil {
		r.Config.Initial = r.r.Value()
	}
	r.r = nil
}

// maxFlingVelocity in dp per second.
const maxFlingVelocity = 8000

func (r *Ruler) init(gtx layout.Context) {
	scale := gtx.Metric.PxPerDp
	if scale == 0 {
		scale = 1
	}
	if r.r != nil && r.scale == scale {
		return
	}
	r.Reset()
	r.scale = scale
	r.size = image.Point{}
	cfg := r.Config.Scale(scale)
	if cfg.Physics == nil {
		cfg.Physics = ruler.FrictionPhysics{MaxVelocity: maxFlingVelocity * scale}
	}
	r.r = ruler.New(cfg)
	r.r.OnChange(func(float32) {
		r.changed = true
	})
}
