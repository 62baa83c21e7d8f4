// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements the pointer gestures of rulers.

Gestures accept low level pointer Events from an input
Source and reduce them to higher level actions.
*/
package gesture

import (
	"gioui.org/io/event"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/hudson/ruler/internal/fling"
)

// Pan detects horizontal drags of a single pointer and estimates the
// velocity of the pointer when it is released.
type Pan struct {
	dragging  bool
	pid       pointer.ID
	start     float32
	estimator fling.Extrapolation
}

// PanKind is the kind of a PanEvent.
type PanKind uint8

// PanEvent is a step of a pan gesture.
type PanEvent struct {
	Kind PanKind
	// X is the horizontal pointer position.
	X float32
	// Velocity is the estimated pointer velocity in pixels per
	// second at release. It is only set for KindRelease.
	Velocity float32
}

const (
	// KindPress is reported when a pan starts.
	KindPress PanKind = iota
	// KindMove is reported for every pointer movement during a pan.
	KindMove
	// KindRelease is reported when the pointer is lifted.
	KindRelease
	// KindCancel is reported when the pan is aborted, for example
	// because another handler grabbed the pointer.
	KindCancel
)

var touchSlop = unit.Dp(3)

// Add the handler to the operation list to receive pan events.
func (p *Pan) Add(ops *op.Ops) {
	event.Op(ops, p)
}

// Dragging reports whether a pan is in progress.
func (p *Pan) Dragging() bool {
	return p.dragging
}

// Update returns the next pan event, if any.
func (p *Pan) Update(cfg unit.Metric, q input.Source) (PanEvent, bool) {
	for {
		ev, ok := q.Event(pointer.Filter{
			Target: p,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			if p.dragging {
				continue
			}
			if e.Source != pointer.Touch && e.Buttons != pointer.ButtonPrimary {
				continue
			}
			p.dragging = true
			p.pid = e.PointerID
			p.start = e.Position.X
			p.estimator = fling.Extrapolation{}
			p.estimator.Sample(e.Time, e.Position.X)
			return PanEvent{Kind: KindPress, X: e.Position.X}, true
		case pointer.Drag:
			if !p.dragging || e.PointerID != p.pid {
				continue
			}
			p.estimator.Sample(e.Time, e.Position.X)
			if e.Priority < pointer.Grabbed {
				slop := float32(cfg.Dp(touchSlop))
				if d := e.Position.X - p.start; d > slop || d < -slop {
					q.Execute(pointer.GrabCmd{Tag: p, ID: e.PointerID})
				}
			}
			return PanEvent{Kind: KindMove, X: e.Position.X}, true
		case pointer.Release:
			if !p.dragging || e.PointerID != p.pid {
				continue
			}
			p.dragging = false
			est := p.estimator.Estimate()
			v := est.Velocity
			// Don't fling taps.
			if slop, d := float32(cfg.Dp(touchSlop)), est.Distance; -slop <= d && d <= slop {
				v = 0
			}
			return PanEvent{Kind: KindRelease, X: e.Position.X, Velocity: v}, true
		case pointer.Cancel:
			if !p.dragging {
				continue
			}
			p.dragging = false
			return PanEvent{Kind: KindCancel}, true
		}
	}
	return PanEvent{}, false
}

func (k PanKind) String() string {
	switch k {
	case KindPress:
		return "KindPress"
	case KindMove:
		return "KindMove"
	case KindRelease:
		return "KindRelease"
	case KindCancel:
		return "KindCancel"
	default:
		panic("invalid PanKind")
	}
}
