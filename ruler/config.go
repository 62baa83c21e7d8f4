// SPDX-License-Identifier: Unlicense OR MIT

package ruler

import (
	"errors"
	"image/color"
)

// Config describes a ruler. Lengths are in pixels and velocities in
// pixels per second; use Scale to convert from device independent
// units.
type Config struct {
	// Min and Max bound the selectable values.
	Min, Max float32
	// Initial is the value selected at construction. It is clamped
	// into [Min, Max].
	Initial float32

	// Spacing is the distance between two ticks, that is, the length
	// of one value unit.
	Spacing float32
	// LineWidth is the stroke width of ticks and the indicator.
	LineWidth float32
	// Tick lengths. Every tick is minor, every fifth tick mid and
	// every tenth major.
	MinorHeight, MidHeight, MajorHeight float32
	// IndicatorLength is the length of the center line marking
	// the selection.
	IndicatorLength float32
	// LabelGap is the distance from the end of a major tick to the
	// baseline of its label.
	LabelGap float32
	// TextSize is a hint for the size of labels.
	TextSize float32

	// MinFlingVelocity is the release velocity above which the
	// ruler keeps moving after the pointer is lifted.
	MinFlingVelocity float32
	// Physics models the momentum after a fling. A nil Physics
	// means FrictionPhysics{}.
	Physics Physics

	TickColor      color.NRGBA
	LabelColor     color.NRGBA
	IndicatorColor color.NRGBA
}

var (
	ErrInvalidRange   = errors.New("ruler: max must be greater than min")
	ErrInvalidSpacing = errors.New("ruler: spacing must be positive")
)

// DefaultConfig returns a ruler from 0 to 200 with 100 selected. Tick
// heights are left zero; callers are expected to set them.
func DefaultConfig() Config {
	return Config{
		Min:              0,
		Max:              200,
		Initial:          100,
		Spacing:          15,
		LineWidth:        4,
		IndicatorLength:  200,
		LabelGap:         30,
		TextSize:         30,
		MinFlingVelocity: 50,
		TickColor:        color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
		LabelColor:       color.NRGBA{A: 0xff},
		IndicatorColor:   color.NRGBA{R: 0xff, A: 0xff},
	}
}

// Scale returns the configuration with every length and velocity
// multiplied by k.
func (c Config) Scale(k float32) Config {
	c.Spacing *= k
	c.LineWidth *= k
	c.MinorHeight *= k
	c.MidHeight *= k
	c.MajorHeight *= k
	c.IndicatorLength *= k
	c.LabelGap *= k
	c.TextSize *= k
	c.MinFlingVelocity *= k
	return c
}

// Validate reports configurations that New accepts but that result in
// a degenerate ruler.
func (c Config) Validate() error {
	if !(c.Max > c.Min) {
		return ErrInvalidRange
	}
	if !(c.Spacing > 0) {
		return ErrInvalidSpacing
	}
	return nil
}
