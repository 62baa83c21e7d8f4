// SPDX-License-Identifier: Unlicense OR MIT

package main

// A Gio program for picking a value with a ruler.

import (
	"flag"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	giowidget "gioui.org/widget"
	giomaterial "gioui.org/widget/material"

	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/hudson/ruler/internal/config"
	"github.com/hudson/ruler/internal/log"
	"github.com/hudson/ruler/ruler"
	"github.com/hudson/ruler/widget"
	"github.com/hudson/ruler/widget/material"
)

var (
	configPath = flag.String("config", "", "configuration file (default: user config directory)")
	verbose    = flag.Bool("v", false, "log value changes")
)

func main() {
	flag.Parse()
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	logger, err := log.New(level, cfg.Log.File, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rc, err := cfg.Ruler.Ruler()
	if err != nil {
		logger.Fatal(err)
	}

	go func() {
		var w app.Window
		w.Option(
			app.Title(cfg.Window.Title),
			app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
		)
		if err := loop(&w, rc, logger); err != nil {
			logger.Fatal(err)
		}
		logger.Close()
		os.Exit(0)
	}()
	app.Main()
}

func loadConfig() (config.Config, error) {
	path := *configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

type UI struct {
	theme *giomaterial.Theme
	ruler widget.Ruler
	reset giowidget.Clickable
	icon  *giowidget.Icon
	log   *log.Logger
	// initial is the value selected by the reset button.
	initial float32
}

func newUI(cfg ruler.Config, logger *log.Logger) (*UI, error) {
	icon, err := giowidget.NewIcon(icons.NavigationRefresh)
	if err != nil {
		return nil, err
	}
	th := giomaterial.NewTheme()
	th.Shaper = text.NewShaper(text.NoSystemFonts(), text.WithCollection(gofont.Collection()))
	return &UI{
		theme:   th,
		ruler:   widget.Ruler{Config: cfg},
		icon:    icon,
		log:     logger,
		initial: cfg.Initial,
	}, nil
}

func loop(w *app.Window, cfg ruler.Config, logger *log.Logger) error {
	ui, err := newUI(cfg, logger)
	if err != nil {
		return err
	}
	logger.WithField("value", ui.ruler.Value()).Info("ruler started")
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (u *UI) Layout(gtx layout.Context) layout.Dimensions {
	if u.reset.Clicked(gtx) {
		u.ruler.SetValue(u.initial)
		u.log.ValueChanged(u.ruler.Value(), u.ruler.State())
	}
	if u.ruler.Update(gtx) {
		u.log.ValueChanged(u.ruler.Value(), u.ruler.State())
	}
	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceEnd}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						l := giomaterial.H3(u.theme, ruler.FormatValue(u.ruler.Value()))
						l.Alignment = text.Middle
						return l.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return giomaterial.IconButton(u.theme, &u.reset, u.icon, "Reset").Layout(gtx)
					}),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(24)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				s := material.Ruler(u.theme, &u.ruler)
				s.TickColor = u.ruler.Config.TickColor
				s.LabelColor = u.ruler.Config.LabelColor
				s.IndicatorColor = u.ruler.Config.IndicatorColor
				return s.Layout(gtx)
			}),
		)
	})
}
