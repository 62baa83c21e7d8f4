// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/hudson/ruler/internal/drag"
	"github.com/hudson/ruler/internal/log"
	"github.com/hudson/ruler/ruler"
)

// header is the height of the value display above the ruler.
const header = 96

type Game struct {
	ruler   *ruler.Ruler
	initial float32
	log     *log.Logger

	drag     drag.Tracker
	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID

	fonts *text.GoTextFaceSource
	faces map[float64]*text.GoTextFace

	width, height int
}

func NewGame(cfg ruler.Config, logger *log.Logger) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	g := &Game{
		ruler:   ruler.New(cfg),
		initial: cfg.Initial,
		log:     logger,
		fonts:   src,
		faces:   make(map[float64]*text.GoTextFace),
	}
	g.drag.Ruler = g.ruler
	g.ruler.OnChange(func(v float32) {
		g.log.ValueChanged(v, g.ruler.State())
	})
	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	g.updateTouch(now)
	if !g.touching {
		g.updateMouse(now)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.ruler.SetValue(g.ruler.Value() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.ruler.SetValue(g.ruler.Value() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ruler.SetValue(g.initial)
	}
	g.ruler.AdvanceFrame(now)
	return nil
}

func (g *Game) updateTouch(now time.Time) {
	if !g.touching {
		g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
		for _, id := range g.touchIDs {
			if x, y := ebiten.TouchPosition(id); y >= header {
				g.touch, g.touching = id, true
				g.drag.Press(now, float32(x))
				break
			}
		}
		return
	}
	if inpututil.IsTouchJustReleased(g.touch) {
		x, _ := inpututil.TouchPositionInPreviousTick(g.touch)
		g.touching = false
		g.drag.Release(now, float32(x))
		return
	}
	x, _ := ebiten.TouchPosition(g.touch)
	g.drag.Move(now, float32(x))
}

func (g *Game) updateMouse(now time.Time) {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if y >= header {
			g.drag.Press(now, float32(x))
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.drag.Release(now, float32(x))
	case g.drag.Active():
		g.drag.Move(now, float32(x))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(g.width)/2, header/4)
	op.ColorScale.ScaleWithColor(color.Black)
	text.Draw(screen, ruler.FormatValue(g.ruler.Value()), g.face(48), op)
	g.ruler.Render(&surface{dst: screen, top: header, game: g})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ruler.SizeChanged(outsideWidth, max(outsideHeight-header, 0))
	}
	return outsideWidth, outsideHeight
}

func (g *Game) face(size float64) *text.GoTextFace {
	if f, ok := g.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: g.fonts, Size: size}
	g.faces[size] = f
	return f
}

// surface draws ruler primitives to an ebiten image.
type surface struct {
	dst  *ebiten.Image
	top  float32
	game *Game
}

func (s *surface) Line(l ruler.Line) {
	vector.StrokeLine(s.dst, l.X, s.top+l.Y0, l.X, s.top+l.Y1, l.Width, l.Color, true)
}

func (s *surface) Label(l ruler.Label) {
	face := s.game.face(float64(l.Size))
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(l.X), float64(s.top+l.Baseline)-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(l.Color)
	text.Draw(s.dst, l.Text, face, op)
}
