// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hudson/ruler/internal/drag"
	"github.com/hudson/ruler/internal/log"
	"github.com/hudson/ruler/ruler"
)

// frameInterval is the pace of fling frames.
const frameInterval = time.Second / 60

type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Reset, k.Quit}
}

type frameMsg time.Time

type model struct {
	ruler   *ruler.Ruler
	initial float32
	keys    keyMap
	log     *log.Logger
	// now returns the time of input events.
	now  func() time.Time
	drag drag.Tracker

	grid    grid
	width   int
	ticking bool

	valueStyle lipgloss.Style
	helpStyle  lipgloss.Style
}

// cellConfig converts cfg so that the ticks are one cell apart.
func cellConfig(cfg ruler.Config) ruler.Config {
	k := float32(1)
	if cfg.Spacing > 0 {
		k = 1 / cfg.Spacing
	}
	cfg = cfg.Scale(k)
	if cfg.Physics == nil {
		cfg.Physics = ruler.FrictionPhysics{MaxVelocity: 8000 * k}
	}
	return cfg
}

func newModel(cfg ruler.Config, logger *log.Logger) *model {
	m := &model{
		ruler:      ruler.New(cellConfig(cfg)),
		initial:    cfg.Initial,
		keys:       newKeyMap(),
		log:        logger,
		now:        time.Now,
		valueStyle: lipgloss.NewStyle().Bold(true),
		helpStyle:  lipgloss.NewStyle().Faint(true),
	}
	m.drag.Ruler = m.ruler
	m.ruler.OnChange(func(v float32) {
		m.log.ValueChanged(v, m.ruler.State())
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.resize()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.ruler.SetValue(m.ruler.Value() - 1)
		case key.Matches(msg, m.keys.Right):
			m.ruler.SetValue(m.ruler.Value() + 1)
		case key.Matches(msg, m.keys.Reset):
			m.ruler.SetValue(m.initial)
		}
	case tea.MouseMsg:
		return m, m.mouse(msg)
	case frameMsg:
		if m.ruler.AdvanceFrame(time.Time(msg)) {
			return m, frame()
		}
		m.ticking = false
	}
	return m, nil
}

func (m *model) mouse(msg tea.MouseMsg) tea.Cmd {
	now := m.now()
	x := float32(msg.X)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.drag.Press(now, x)
	case tea.MouseActionMotion:
		m.drag.Move(now, x)
	case tea.MouseActionRelease:
		if m.drag.Release(now, x) && !m.ticking {
			m.ticking = true
			return frame()
		}
	}
	return nil
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// resize fits the grid to the width of the terminal and the tallest
// element of the ruler.
func (m *model) resize() {
	cfg := m.ruler.Config()
	h := max(cfg.MajorHeight+cfg.LabelGap+1, cfg.IndicatorLength)
	rows := int(math.Ceil(float64(h)))
	m.grid.Resize(m.width, rows)
	m.ruler.SizeChanged(m.width, rows)
}

func (m *model) View() string {
	m.grid.Clear()
	m.ruler.Render(&m.grid)
	value := m.valueStyle.Width(m.width).Align(lipgloss.Center).
		Render(ruler.FormatValue(m.ruler.Value()))
	var help []string
	for _, b := range m.keys.help() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		value,
		"",
		m.grid.String(),
		"",
		m.helpStyle.Render(strings.Join(help, " • ")),
	)
}
