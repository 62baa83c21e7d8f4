// SPDX-License-Identifier: Unlicense OR MIT

package ruler

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinorHeight = 20
	cfg.MidHeight = 40
	cfg.MajorHeight = 60
	return cfg
}

// linearPhysics moves at a constant velocity for a fixed duration.
type linearPhysics struct {
	dur time.Duration
}

type linearDecay struct {
	t0  time.Time
	v   float32
	dur time.Duration
}

func (p linearPhysics) StartDecay(now time.Time, velocity float32) Decay {
	return &linearDecay{t0: now, v: velocity, dur: p.dur}
}

func (d *linearDecay) Position(now time.Time) float32 {
	e := now.Sub(d.t0)
	if e > d.dur {
		e = d.dur
	}
	return d.v * float32(e.Seconds())
}

func (d *linearDecay) Finished(now time.Time) bool {
	return now.Sub(d.t0) >= d.dur
}

func TestInitialState(t *testing.T) {
	r := New(testConfig())
	if got, want := r.Offset(), float32(-1500); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if got, want := r.MaxOffset(), float32(-3000); got != want {
		t.Errorf("max offset: got %v want %v", got, want)
	}
	if got, want := r.Value(), float32(100); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
}

func TestInitialValueRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1, 57, 199, 200} {
		cfg := testConfig()
		cfg.Initial = v
		if got := New(cfg).Value(); got != v {
			t.Errorf("initial %v: got value %v", v, got)
		}
	}
}

func TestInitialValueClamped(t *testing.T) {
	for _, tc := range []struct {
		initial, value float32
	}{
		{-50, 0},
		{1000, 200},
	} {
		cfg := testConfig()
		cfg.Initial = tc.initial
		r := New(cfg)
		if got := r.Value(); got != tc.value {
			t.Errorf("initial %v: got value %v want %v", tc.initial, got, tc.value)
		}
		if off := r.Offset(); off > 0 || off < r.MaxOffset() {
			t.Errorf("initial %v: offset %v out of range", tc.initial, off)
		}
	}
}

func TestDegenerateConfig(t *testing.T) {
	for _, cfg := range []Config{
		{Min: 10, Max: 10, Initial: 10, Spacing: 15},
		{Min: 10, Max: 0, Initial: 5, Spacing: 15},
		{Min: 0, Max: 100, Initial: 50, Spacing: 0},
		{Min: 0, Max: 100, Initial: 50, Spacing: -3},
	} {
		r := New(cfg)
		r.SizeChanged(300, 100)
		r.PointerDown(100)
		r.PointerMove(0)
		r.PointerUp(time.Unix(0, 0), 0, 1e4)
		for i := 0; i < 10 && r.AdvanceFrame(time.Unix(0, int64(i)*int64(time.Second))); i++ {
		}
		if got := r.Value(); got != cfg.Min {
			t.Errorf("%+v: got value %v want %v", cfg, got, cfg.Min)
		}
		var d DrawList
		r.Render(&d)
		if cfg.Validate() == nil {
			t.Errorf("%+v: expected validation error", cfg)
		}
	}
}

func TestDrag(t *testing.T) {
	r := New(testConfig())
	var values []float32
	r.OnChange(func(v float32) { values = append(values, v) })

	r.PointerDown(500)
	if got := r.State(); got != StateDragging {
		t.Fatalf("state: got %v want %v", got, StateDragging)
	}
	r.PointerMove(350)
	if got, want := r.Offset(), float32(-1650); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if got, want := r.Value(), float32(110); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	if len(values) != 1 || values[0] != 110 {
		t.Errorf("notifications: got %v want [110]", values)
	}
}

func TestDragUnsnapped(t *testing.T) {
	r := New(testConfig())
	r.PointerDown(500)
	r.PointerMove(493)
	if got, want := r.Offset(), float32(-1507); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if got, want := r.Value(), float32(100); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	r.PointerMove(490)
	if got, want := r.Value(), float32(101); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
}

func TestDragClamps(t *testing.T) {
	r := New(testConfig())
	r.PointerDown(0)
	r.PointerMove(-1e6)
	if got, want := r.Offset(), float32(-3000); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if got, want := r.Value(), float32(200); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	r.PointerMove(1e6)
	if got, want := r.Offset(), float32(0); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if got, want := r.Value(), float32(0); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
}

func TestReleaseSnaps(t *testing.T) {
	r := New(testConfig())
	r.PointerDown(500)
	r.PointerMove(343)
	r.PointerUp(time.Unix(0, 0), 343, 0)
	if got, want := r.Value(), float32(110); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	if got, want := r.Offset(), float32(-1650); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
	if r.AdvanceFrame(time.Unix(1, 0)) {
		t.Error("AdvanceFrame reported a fling after a slow release")
	}
}

func TestReleaseAppliesFinalMove(t *testing.T) {
	r := New(testConfig())
	r.PointerDown(500)
	r.PointerUp(time.Unix(0, 0), 350, 0)
	if got, want := r.Value(), float32(110); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
}

func TestCommitIdempotent(t *testing.T) {
	r := New(testConfig())
	r.PointerDown(500)
	r.PointerMove(337)
	r.PointerUp(time.Unix(0, 0), 337, 0)
	off, v := r.Offset(), r.Value()
	r.commit()
	if r.Offset() != off || r.Value() != v {
		t.Errorf("second commit moved from (%v, %v) to (%v, %v)", off, v, r.Offset(), r.Value())
	}
}

func TestFling(t *testing.T) {
	for _, tc := range []struct {
		name     string
		velocity float32
	}{
		{"towards max", -2000},
		{"towards min", 1200},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := New(testConfig())
			t0 := time.Unix(0, 0)
			r.PointerDown(500)
			r.PointerMove(350)
			r.PointerUp(t0, 350, tc.velocity)
			if got := r.State(); got != StateFlinging {
				t.Fatalf("state: got %v want %v", got, StateFlinging)
			}
			prev := r.Offset()
			now := t0
			frames := 0
			for {
				now = now.Add(16 * time.Millisecond)
				more := r.AdvanceFrame(now)
				off := r.Offset()
				if tc.velocity < 0 && off > prev || tc.velocity > 0 && off < prev {
					t.Fatalf("frame %d: offset moved backwards from %v to %v", frames, prev, off)
				}
				prev = off
				frames++
				if !more {
					break
				}
				if frames > 10000 {
					t.Fatal("fling did not finish")
				}
			}
			if frames < 2 {
				t.Errorf("fling finished after %d frames", frames)
			}
			if got := r.State(); got != StateIdle {
				t.Errorf("state: got %v want %v", got, StateIdle)
			}
			assertSnapped(t, r)
			if v := r.Value(); v == 110 {
				t.Errorf("fling didn't change the value")
			}
		})
	}
}

func TestFlingHitsEnd(t *testing.T) {
	cfg := testConfig()
	cfg.Physics = linearPhysics{dur: 10 * time.Second}
	r := New(cfg)
	t0 := time.Unix(0, 0)
	r.PointerDown(0)
	r.PointerUp(t0, 0, -1000)
	now := t0
	frames := 0
	for r.AdvanceFrame(now) {
		now = now.Add(125 * time.Millisecond)
		frames++
		if off := r.Offset(); off < r.MaxOffset() {
			t.Fatalf("offset %v beyond max offset %v", off, r.MaxOffset())
		}
	}
	// The first frame starts the fling, the next 12 move 125 pixels
	// each, and the 14th hits the end.
	if frames != 13 {
		t.Errorf("fling stopped after %d frames, want 13", frames)
	}
	if got, want := r.Value(), float32(200); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
}

func TestFlingTerminalPosition(t *testing.T) {
	cfg := testConfig()
	cfg.Physics = linearPhysics{dur: time.Second}
	r := New(cfg)
	t0 := time.Unix(0, 0)
	r.PointerDown(0)
	r.PointerUp(t0, 0, -152)
	if !r.AdvanceFrame(t0.Add(500 * time.Millisecond)) {
		t.Fatal("fling ended early")
	}
	if got, want := r.Offset(), float32(-1576); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	if r.AdvanceFrame(t0.Add(2 * time.Second)) {
		t.Fatal("fling didn't end")
	}
	// 152 pixels is 10.13 ticks.
	if got, want := r.Value(), float32(110); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	assertSnapped(t, r)
}

func TestPointerDownStopsFling(t *testing.T) {
	r := New(testConfig())
	t0 := time.Unix(0, 0)
	r.PointerDown(500)
	r.PointerMove(350)
	r.PointerUp(t0, 350, -3000)
	r.AdvanceFrame(t0.Add(50 * time.Millisecond))
	r.PointerDown(200)
	if got := r.State(); got != StateDragging {
		t.Errorf("state: got %v want %v", got, StateDragging)
	}
	off := r.Offset()
	if r.AdvanceFrame(t0.Add(time.Second)) {
		t.Error("AdvanceFrame reported a fling after PointerDown")
	}
	if r.Offset() != off {
		t.Errorf("offset moved from %v to %v after the fling stopped", off, r.Offset())
	}
}

func TestSlowReleaseNoFling(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)
	r.PointerDown(500)
	r.PointerUp(time.Unix(0, 0), 500, cfg.MinFlingVelocity)
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
}

func TestMoveWithoutDown(t *testing.T) {
	r := New(testConfig())
	r.PointerMove(300)
	if got := r.Offset(); got != -1500 {
		t.Errorf("implicit drag moved the offset to %v", got)
	}
	if got := r.State(); got != StateDragging {
		t.Errorf("state: got %v want %v", got, StateDragging)
	}
	r.PointerMove(285)
	if got, want := r.Value(), float32(101); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
}

func TestUpWithoutDown(t *testing.T) {
	r := New(testConfig())
	r.PointerUp(time.Unix(0, 0), 0, 1e4)
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
	if got := r.Offset(); got != -1500 {
		t.Errorf("offset: got %v want -1500", got)
	}
	r.PointerCancel()
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
}

func TestCancel(t *testing.T) {
	r := New(testConfig())
	r.PointerDown(500)
	r.PointerMove(440)
	r.PointerCancel()
	if got := r.State(); got != StateIdle {
		t.Errorf("state: got %v want %v", got, StateIdle)
	}
	if got, want := r.Value(), float32(104); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
	assertSnapped(t, r)
}

func TestNotifyOnlyOnChange(t *testing.T) {
	r := New(testConfig())
	n := 0
	r.OnChange(func(float32) { n++ })
	r.PointerDown(500)
	for x := float32(499); x > 496; x-- {
		r.PointerMove(x)
	}
	if n != 0 {
		t.Errorf("%d notifications for moves within a tick", n)
	}
	r.PointerMove(480)
	if n != 1 {
		t.Errorf("%d notifications after crossing a tick", n)
	}
	r.PointerUp(time.Unix(0, 0), 480, 0)
	if n != 1 {
		t.Errorf("%d notifications after a snapping release", n)
	}
	r.OnChange(nil)
	r.PointerDown(0)
	r.PointerMove(-100)
}

func TestSetValue(t *testing.T) {
	r := New(testConfig())
	var got []float32
	r.OnChange(func(v float32) { got = append(got, v) })
	for _, tc := range []struct {
		in, want float32
	}{
		{42, 42},
		{42.4, 42},
		{-3, 0},
		{500, 200},
	} {
		r.SetValue(tc.in)
		if v := r.Value(); v != tc.want {
			t.Errorf("SetValue(%v): got %v want %v", tc.in, v, tc.want)
		}
		assertSnapped(t, r)
	}
	if want := []float32{42, 0, 200}; !reflect.DeepEqual(got, want) {
		t.Errorf("notifications: got %v want %v", got, want)
	}
}

func TestSetValueStopsFling(t *testing.T) {
	r := New(testConfig())
	t0 := time.Unix(0, 0)
	r.PointerDown(0)
	r.PointerUp(t0, 0, 3000)
	r.SetValue(10)
	if r.Flinging() {
		t.Error("fling continued after SetValue")
	}
	if r.AdvanceFrame(t0.Add(time.Second)) {
		t.Error("AdvanceFrame reported a fling after SetValue")
	}
	if got := r.Value(); got != 10 {
		t.Errorf("value: got %v want 10", got)
	}
}

func TestSizeChanged(t *testing.T) {
	r := New(testConfig())
	r.SizeChanged(640, 200)
	if w, h := r.Size(); w != 640 || h != 200 {
		t.Errorf("size: got %dx%d", w, h)
	}
	if got := r.Offset(); got != -1500 {
		t.Errorf("offset: got %v want -1500", got)
	}
	r.offset = 20
	r.SizeChanged(320, 200)
	if got := r.Offset(); got != 0 {
		t.Errorf("offset: got %v want 0", got)
	}
}

func TestNonZeroMin(t *testing.T) {
	cfg := testConfig()
	cfg.Min, cfg.Max, cfg.Initial = -50, 50, 0
	r := New(cfg)
	if got, want := r.Offset(), float32(-750); got != want {
		t.Errorf("offset: got %v want %v", got, want)
	}
	r.PointerDown(0)
	r.PointerMove(1e5)
	if got, want := r.Value(), float32(-50); got != want {
		t.Errorf("value: got %v want %v", got, want)
	}
}

func TestFractionalRange(t *testing.T) {
	cfg := testConfig()
	cfg.Min, cfg.Max, cfg.Initial = 0, 10.6, 10.6
	r := New(cfg)
	if got, want := r.MaxOffset(), float32(-10*15); got != want {
		t.Errorf("max offset: got %v want %v", got, want)
	}
	if got := r.Value(); got != 10 {
		t.Errorf("value: got %v want 10", got)
	}
	r.SetValue(10.6)
	if got := r.Value(); got != 10 {
		t.Errorf("value after SetValue(10.6): got %v want 10", got)
	}
	r.PointerDown(0)
	r.PointerMove(-1e5)
	r.PointerUp(time.Unix(0, 0), -1e5, 0)
	if got := r.Value(); got > cfg.Max {
		t.Errorf("value %v exceeds max %v", got, cfg.Max)
	}
	var l DrawList
	r.Render(&l)
	if got := len(l.Lines); got != 12 {
		t.Errorf("%d lines, want 11 ticks and the indicator", got)
	}
}

func TestFractionalMinEnds(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		cfg := testConfig()
		cfg.Min = float32(rnd.Intn(2000)-1000) / 10
		cfg.Max = cfg.Min + float32(1+rnd.Intn(300))
		cfg.Initial = cfg.Max
		cfg.Spacing = 1 + rnd.Float32()*40
		r := New(cfg)
		t0 := time.Unix(0, 0)
		r.PointerDown(0)
		r.PointerMove(-1e6)
		r.PointerUp(t0, -1e6, 0)
		if got, want := r.Offset(), r.MaxOffset(); got != want {
			t.Fatalf("config %+v: offset at max %v, want %v", cfg, got, want)
		}
		if got := r.Value(); got != cfg.Min+float32(r.ticks) {
			t.Fatalf("config %+v: value at max %v", cfg, got)
		}
		r.SetValue(cfg.Max)
		if got, want := r.Offset(), r.MaxOffset(); got != want {
			t.Fatalf("config %+v: offset after SetValue(Max) %v, want %v", cfg, got, want)
		}
		r.PointerDown(0)
		r.PointerMove(1e6)
		r.PointerUp(t0, 1e6, 0)
		if got := r.Offset(); got != 0 {
			t.Fatalf("config %+v: offset at min %v, want 0", cfg, got)
		}
		if got := r.Value(); got != cfg.Min {
			t.Fatalf("config %+v: value at min %v, want %v", cfg, got, cfg.Min)
		}
	}
}

func TestRandomGestures(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		cfg := testConfig()
		cfg.Min = float32(rnd.Intn(1000)-500) / 10
		cfg.Max = cfg.Min + float32(1+rnd.Intn(300))
		cfg.Initial = cfg.Min + float32(rnd.Intn(int(cfg.Max-cfg.Min)+1))
		cfg.Spacing = 1 + rnd.Float32()*30
		r := New(cfg)
		now := time.Unix(0, 0)
		x := float32(0)
		for j := 0; j < 50; j++ {
			switch rnd.Intn(4) {
			case 0:
				r.PointerDown(x)
			case 1:
				x += float32(rnd.NormFloat64() * 200)
				r.PointerMove(x)
			case 2:
				r.PointerUp(now, x, float32(rnd.NormFloat64()*3000))
				if r.State() == StateIdle {
					assertSnapped(t, r)
				}
			case 3:
				now = now.Add(time.Duration(rnd.Intn(100)) * time.Millisecond)
				r.AdvanceFrame(now)
			}
			if off := r.Offset(); off > 0 || off < r.MaxOffset() {
				t.Fatalf("config %+v: offset %v out of [%v, 0]", cfg, off, r.MaxOffset())
			}
			v := r.Value()
			if v < cfg.Min || v > cfg.Max {
				t.Fatalf("config %+v: value %v out of range", cfg, v)
			}
			if n := float64(v - cfg.Min); math.Abs(n-math.Round(n)) > 1e-3 {
				t.Fatalf("config %+v: value %v is not a whole number of ticks", cfg, v)
			}
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateIdle:     "StateIdle",
		StateDragging: "StateDragging",
		StateFlinging: "StateFlinging",
	} {
		if got := s.String(); got != want {
			t.Errorf("got %q want %q", got, want)
		}
	}
}

func assertSnapped(t *testing.T, r *Ruler) {
	t.Helper()
	cfg := r.Config()
	n := math.Round(float64(r.Value() - cfg.Min))
	if got, want := r.Offset(), -float32(n)*cfg.Spacing; got != want {
		t.Errorf("offset %v not snapped to value %v (want %v)", got, r.Value(), want)
	}
}
