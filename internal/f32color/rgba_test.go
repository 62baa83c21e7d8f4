// SPDX-License-Identifier: Unlicense OR MIT

package f32color

import (
	"image/color"
	"testing"
)

func TestMulAlpha(t *testing.T) {
	for _, tc := range []struct {
		in    color.NRGBA
		alpha uint8
		want  color.NRGBA
	}{
		{color.NRGBA{R: 10, A: 0xFF}, 0xFF, color.NRGBA{R: 10, A: 0xFF}},
		{color.NRGBA{R: 10, A: 0xFF}, 0x80, color.NRGBA{R: 10, A: 0x80}},
		{color.NRGBA{G: 10, A: 0x80}, 0x80, color.NRGBA{G: 10, A: 0x40}},
		{color.NRGBA{B: 10, A: 0xFF}, 0, color.NRGBA{B: 10}},
	} {
		if got := MulAlpha(tc.in, tc.alpha); got != tc.want {
			t.Errorf("MulAlpha(%v, %v): got %v want %v", tc.in, tc.alpha, got, tc.want)
		}
	}
}

func TestDisabled(t *testing.T) {
	for col := 0; col <= 0xFF; col += 5 {
		in := color.NRGBA{R: uint8(col), G: uint8(col), B: uint8(col), A: 0xFF}
		got := Disabled(in)
		if got.A >= in.A {
			t.Errorf("%v: disabled alpha %v not reduced", in, got.A)
		}
		// Grays stay gray.
		if got.R != got.G || got.G != got.B {
			t.Errorf("%v: disabled gray became %v", in, got)
		}
	}
}
