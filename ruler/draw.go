// SPDX-License-Identifier: Unlicense OR MIT

package ruler

import "image/color"

// Surface receives the draw primitives of a frame.
type Surface interface {
	Line(l Line)
	Label(l Label)
}

// LineKind identifies what a Line represents.
type LineKind uint8

const (
	Minor LineKind = iota
	Mid
	Major
	// Indicator is the fixed center line marking the selection.
	Indicator
)

// Line is a vertical line segment from (X, Y0) to (X, Y1).
type Line struct {
	Kind   LineKind
	X      float32
	Y0, Y1 float32
	Width  float32
	Color  color.NRGBA
}

// Label is a text horizontally centered on X, with its baseline at
// Baseline.
type Label struct {
	X        float32
	Baseline float32
	// Size is the configured text size.
	Size  float32
	Text  string
	Color color.NRGBA
}

// DrawList records primitives. The zero value is ready to use.
type DrawList struct {
	Lines  []Line
	Labels []Label
}

// Line appends l to the list.
func (d *DrawList) Line(l Line) {
	d.Lines = append(d.Lines, l)
}

// Label appends l to the list.
func (d *DrawList) Label(l Label) {
	d.Labels = append(d.Labels, l)
}

// Reset the list for reuse.
func (d *DrawList) Reset() {
	d.Lines = d.Lines[:0]
	d.Labels = d.Labels[:0]
}

func (k LineKind) String() string {
	switch k {
	case Minor:
		return "Minor"
	case Mid:
		return "Mid"
	case Major:
		return "Major"
	case Indicator:
		return "Indicator"
	default:
		panic("invalid LineKind")
	}
}
