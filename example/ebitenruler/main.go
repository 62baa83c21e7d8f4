// SPDX-License-Identifier: Unlicense OR MIT

package main

// An ebiten program for picking a value with a ruler. Drag the ruler
// with the mouse or a finger, or use the arrow keys.

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hudson/ruler/internal/config"
	"github.com/hudson/ruler/internal/log"
)

var (
	configPath = flag.String("config", "", "configuration file (default: user config directory)")
	verbose    = flag.Bool("v", false, "log value changes")
)

func main() {
	flag.Parse()
	path := *configPath
	if path == "" {
		if p, err := config.Path(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
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
	defer logger.Close()
	rc, err := cfg.Ruler.Ruler()
	if err != nil {
		logger.Fatal(err)
	}
	game, err := NewGame(rc, logger)
	if err != nil {
		logger.Fatal(err)
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	logger.WithField("value", rc.Initial).Info("ruler started")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
