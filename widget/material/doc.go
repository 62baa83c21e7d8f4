// SPDX-License-Identifier: Unlicense OR MIT

// Package material draws rulers in the Material design.
//
// The state and event handling of a ruler is kept by widget.Ruler,
// while RulerStyle draws it:
//
//	var r widget.Ruler
//	r.Config = ruler.DefaultConfig()
//	r.Config.MinorHeight, r.Config.MidHeight, r.Config.MajorHeight = 10, 16, 24
//
//	if r.Update(gtx) {
//		fmt.Println("Selected", r.Value())
//	}
//	material.Ruler(th, &r).Layout(gtx)
//
// Colors default to the theme: ticks in a translucent foreground, labels
// in the foreground and the indicator in the contrast background.
// Adjust the style fields to change them for a particular ruler:
//
//	s := material.Ruler(th, &r)
//	s.IndicatorColor = color.NRGBA{R: 0xff, A: 0xff}
//	s.Layout(gtx)
package material
