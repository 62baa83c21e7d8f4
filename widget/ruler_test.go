// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/hudson/ruler/ruler"
)

func rulerConfig() ruler.Config {
	cfg := ruler.DefaultConfig()
	cfg.MinorHeight = 10
	cfg.MidHeight = 15
	cfg.MajorHeight = 20
	return cfg
}

func newContext(r *input.Router, now time.Time) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 100)),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Now:         now,
		Source:      r.Source(),
	}
}

func TestRulerDrag(t *testing.T) {
	var r input.Router
	t0 := time.Unix(0, 0)
	gtx := newContext(&r, t0)
	w := &Ruler{Config: rulerConfig()}
	w.Layout(gtx)
	if got := w.Value(); got != 100 {
		t.Fatalf("initial value: got %v want 100", got)
	}
	r.Frame(gtx.Ops)
	r.Queue(
		pointer.Event{
			Kind:     pointer.Press,
			Source:   pointer.Touch,
			Position: f32.Pt(200, 50),
		},
		pointer.Event{
			Kind:     pointer.Move,
			Source:   pointer.Touch,
			Position: f32.Pt(50, 50),
			Time:     10 * time.Millisecond,
		},
		pointer.Event{
			Kind:     pointer.Release,
			Source:   pointer.Touch,
			Position: f32.Pt(50, 50),
			Time:     500 * time.Millisecond,
		},
	)
	if !w.Update(gtx) {
		t.Error("Update didn't report a change")
	}
	if got := w.Value(); got != 110 {
		t.Errorf("value: got %v want 110", got)
	}
	if got := w.State(); got != ruler.StateIdle {
		t.Errorf("state: got %v want %v", got, ruler.StateIdle)
	}
	if w.Update(gtx) {
		t.Error("Update reported a change twice")
	}
}

func TestRulerFling(t *testing.T) {
	var r input.Router
	t0 := time.Unix(0, 0)
	gtx := newContext(&r, t0)
	w := &Ruler{Config: rulerConfig()}
	w.Layout(gtx)
	r.Frame(gtx.Ops)
	events := []pointer.Event{{
		Kind:     pointer.Press,
		Source:   pointer.Touch,
		Position: f32.Pt(300, 50),
	}}
	for i := 1; i <= 5; i++ {
		events = append(events, pointer.Event{
			Kind:     pointer.Move,
			Source:   pointer.Touch,
			Position: f32.Pt(300-float32(20*i), 50),
			Time:     time.Duration(i) * 10 * time.Millisecond,
		})
	}
	events = append(events, pointer.Event{
		Kind:     pointer.Release,
		Source:   pointer.Touch,
		Position: f32.Pt(200, 50),
		Time:     55 * time.Millisecond,
	})
	for _, e := range events {
		r.Queue(e)
	}
	w.Update(gtx)
	if got := w.State(); got != ruler.StateFlinging {
		t.Fatalf("state: got %v want %v", got, ruler.StateFlinging)
	}
	before := w.Value()
	for i := 0; i < 1000 && w.State() == ruler.StateFlinging; i++ {
		gtx.Now = gtx.Now.Add(16 * time.Millisecond)
		w.Update(gtx)
	}
	if got := w.State(); got != ruler.StateIdle {
		t.Fatalf("fling didn't finish, state %v", got)
	}
	if w.Value() <= before {
		t.Errorf("fling to the left didn't increase the value from %v to %v", before, w.Value())
	}
}

func TestRulerDraw(t *testing.T) {
	var r input.Router
	gtx := newContext(&r, time.Unix(0, 0))
	w := &Ruler{Config: rulerConfig()}
	if l := w.Draw(); len(l.Lines) != 0 {
		t.Errorf("uninitialized ruler drew %d lines", len(l.Lines))
	}
	w.Layout(gtx)
	l := w.Draw()
	// 201 ticks and the indicator.
	if got := len(l.Lines); got != 202 {
		t.Errorf("got %d lines, want 202", got)
	}
	if got := l.Lines[100].X; got != 200 {
		t.Errorf("selected tick at %v, want the center 200", got)
	}
}

func TestRulerScale(t *testing.T) {
	var r input.Router
	gtx := newContext(&r, time.Unix(0, 0))
	gtx.Metric = unit.Metric{PxPerDp: 2, PxPerSp: 2}
	w := &Ruler{Config: rulerConfig()}
	w.Layout(gtx)
	l := w.Draw()
	if got, want := l.Lines[101].X-l.Lines[100].X, float32(30); got != want {
		t.Errorf("tick spacing %v, want %v", got, want)
	}
	w.SetValue(42)
	gtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	w.Layout(gtx)
	if got := w.Value(); got != 42 {
		t.Errorf("value after density change: got %v want 42", got)
	}
	l = w.Draw()
	if got, want := l.Lines[101].X-l.Lines[100].X, float32(15); got != want {
		t.Errorf("tick spacing %v, want %v", got, want)
	}
}

func TestRulerSetValueBeforeLayout(t *testing.T) {
	w := &Ruler{Config: rulerConfig()}
	w.SetValue(7)
	if got := w.Value(); got != 7 {
		t.Errorf("value: got %v want 7", got)
	}
	var r input.Router
	w.Layout(newContext(&r, time.Unix(0, 0)))
	if got := w.Value(); got != 7 {
		t.Errorf("value after layout: got %v want 7", got)
	}
}
