// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hudson/ruler/ruler"
)

// grid is a ruler.Surface of terminal cells. One unit of length is one
// cell.
type grid struct {
	width, height int
	cells         []cell
	styles        map[color.NRGBA]lipgloss.Style
}

type cell struct {
	r   rune
	ink color.NRGBA
}

func (g *grid) Resize(width, height int) {
	g.width, g.height = max(width, 0), max(height, 0)
	g.cells = make([]cell, g.width*g.height)
	g.Clear()
}

func (g *grid) Clear() {
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
}

func (g *grid) Line(l ruler.Line) {
	x := int(math.Round(float64(l.X)))
	if x < 0 || x >= g.width {
		return
	}
	r := '│'
	if l.Kind == ruler.Indicator {
		r = '┃'
	}
	y0 := max(int(math.Floor(float64(l.Y0))), 0)
	y1 := min(int(math.Ceil(float64(l.Y1))), g.height)
	for y := y0; y < y1; y++ {
		g.cells[y*g.width+x] = cell{r: r, ink: l.Color}
	}
}

func (g *grid) Label(l ruler.Label) {
	y := min(int(math.Round(float64(l.Baseline))), g.height-1)
	if y < 0 {
		return
	}
	txt := []rune(l.Text)
	x0 := int(math.Round(float64(l.X))) - len(txt)/2
	for i, r := range txt {
		if x := x0 + i; x >= 0 && x < g.width {
			g.cells[y*g.width+x] = cell{r: r, ink: l.Color}
		}
	}
}

// Plain returns the grid without styling.
func (g *grid) Plain() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range g.cells[y*g.width : (y+1)*g.width] {
			b.WriteRune(c.r)
		}
	}
	return b.String()
}

// String renders the grid with runs of equal color styled by lipgloss.
func (g *grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := g.cells[y*g.width : (y+1)*g.width]
		for len(row) > 0 {
			n := 1
			for n < len(row) && row[n].ink == row[0].ink {
				n++
			}
			var run strings.Builder
			for _, c := range row[:n] {
				run.WriteRune(c.r)
			}
			b.WriteString(g.style(row[0].ink).Render(run.String()))
			row = row[n:]
		}
	}
	return b.String()
}

func (g *grid) style(c color.NRGBA) lipgloss.Style {
	if c.A == 0 {
		return lipgloss.NewStyle()
	}
	if s, ok := g.styles[c]; ok {
		return s
	}
	if g.styles == nil {
		g.styles = make(map[color.NRGBA]lipgloss.Style)
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	g.styles[c] = s
	return s
}
