package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/stopwatch/internal/field"
)

var face = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at (x, y), scaled up from the
// 7x13 bitmap face.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func textWidth(s string, scale float64) float64 {
	return text.Advance(s, face) * scale
}

// drawFrame executes the particle field's commands.
func drawFrame(dst *ebiten.Image, f field.Frame) {
	for _, c := range f.Commands {
		switch c.Kind {
		case field.Clear:
			vector.DrawFilledRect(dst, float32(c.X0), float32(c.Y0), float32(c.X1-c.X0), float32(c.Y1-c.Y0), c.Color, false)
		case field.Disc:
			vector.DrawFilledCircle(dst, float32(c.X0), float32(c.Y0), float32(c.Radius), c.Color, true)
		case field.Line:
			vector.StrokeLine(dst, float32(c.X0), float32(c.Y0), float32(c.X1), float32(c.Y1), 1, c.Color, true)
		}
	}
}

func buttonColor(b *button) color.Color {
	switch {
	case b.pressed:
		return color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case b.hovered:
		return color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		return color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
}
