// SPDX-License-Identifier: Unlicense OR MIT

package main

// A terminal program for picking a value with a ruler. Drag the ruler
// with the mouse or use the arrow keys.

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hudson/ruler/internal/config"
	"github.com/hudson/ruler/internal/log"
)

var (
	configPath = flag.String("config", "", "configuration file (default: user config directory)")
	logPath    = flag.String("log", "", "log file (default: from configuration, or none)")
	verbose    = flag.Bool("v", false, "log value changes")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	path := *configPath
	if path == "" {
		if p, err := config.Path(); err == nil {
			path = p
		}
	}
	cfg := config.Default()
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
	}
	level, file := cfg.Log.Level, cfg.Log.File
	if *verbose {
		level = "debug"
	}
	if *logPath != "" {
		file = *logPath
	}
	// Standard output belongs to the terminal UI.
	logger, err := log.New(level, file, io.Discard)
	if err != nil {
		return err
	}
	defer logger.Close()
	rc, err := cfg.Ruler.Ruler()
	if err != nil {
		return err
	}
	m := newModel(rc, logger)
	logger.WithField("value", m.ruler.Value()).Info("ruler started")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("termruler: %w", err)
	}
	logger.WithField("value", m.ruler.Value()).Info("ruler closed")
	return nil
}
