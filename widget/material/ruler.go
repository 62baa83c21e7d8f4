// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	giowidget "gioui.org/widget"
	giomaterial "gioui.org/widget/material"

	"github.com/hudson/ruler/internal/f32color"
	"github.com/hudson/ruler/ruler"
	"github.com/hudson/ruler/widget"
)

// RulerStyle defines the presentation of a ruler.
type RulerStyle struct {
	TickColor      color.NRGBA
	LabelColor     color.NRGBA
	IndicatorColor color.NRGBA
	Font           font.Font
	TextSize       unit.Sp
	Shaper         *text.Shaper

	Ruler *widget.Ruler
}

// Ruler returns a style for r with colors from th.
func Ruler(th *giomaterial.Theme, r *widget.Ruler) RulerStyle {
	size := th.TextSize
	if ts := r.Config.TextSize; ts > 0 {
		size = unit.Sp(ts)
	}
	return RulerStyle{
		TickColor:      f32color.MulAlpha(th.Fg, 0x80),
		LabelColor:     th.Fg,
		IndicatorColor: th.ContrastBg,
		TextSize:       size,
		Shaper:         th.Shaper,
		Ruler:          r,
	}
}

// Layout the ruler with the full available width. The height fits the
// major ticks with their labels and the indicator.
func (s RulerStyle) Layout(gtx layout.Context) layout.Dimensions {
	cfg := s.Ruler.Config
	h := cfg.MajorHeight + cfg.LabelGap + float32(s.TextSize)/2
	if cfg.IndicatorLength > h {
		h = cfg.IndicatorLength
	}
	size := gtx.Constraints.Constrain(image.Pt(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(h))))
	gtx.Constraints.Min = size
	dims := s.Ruler.Layout(gtx)

	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	list := s.Ruler.Draw()
	for _, l := range list.Lines {
		// Skip ticks that are scrolled out of view.
		if l.X+l.Width < 0 || l.X-l.Width > float32(size.X) || l.Y1 == l.Y0 {
			continue
		}
		c := s.TickColor
		if l.Kind == ruler.Indicator {
			c = s.IndicatorColor
		}
		if !gtx.Enabled() {
			c = f32color.Disabled(c)
		}
		drawLine(gtx.Ops, l, c)
	}
	labelColor := s.LabelColor
	if !gtx.Enabled() {
		labelColor = f32color.Disabled(labelColor)
	}
	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: labelColor}.Add(gtx.Ops)
	material := m.Stop()
	for _, l := range list.Labels {
		s.drawLabel(gtx, l, material)
	}
	return dims
}

func drawLine(ops *op.Ops, l ruler.Line, c color.NRGBA) {
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(f32.Pt(l.X, l.Y0))
	p.LineTo(f32.Pt(l.X, l.Y1))
	paint.FillShape(ops, c, clip.Stroke{
		Path:  p.End(),
		Width: l.Width,
	}.Op())
}

// drawLabel centers the label horizontally on l.X with its baseline
// at l.Baseline.
func (s RulerStyle) drawLabel(gtx layout.Context, l ruler.Label, material op.CallOp) {
	gtx.Constraints = layout.Constraints{Max: gtx.Constraints.Max}
	m := op.Record(gtx.Ops)
	dims := giowidget.Label{MaxLines: 1}.Layout(gtx, s.Shaper, s.Font, s.TextSize, l.Text, material)
	call := m.Stop()
	if x := int(l.X); x+dims.Size.X/2 < 0 || x-dims.Size.X/2 > gtx.Constraints.Max.X {
		return
	}
	top := int(l.Baseline) - (dims.Size.Y - dims.Baseline)
	defer op.Offset(image.Pt(int(l.X)-dims.Size.X/2, top)).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
