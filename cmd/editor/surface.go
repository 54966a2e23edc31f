package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/bitmapper/textures"
	"github.com/milk9111/bitmapper/viewport"
)

var (
	canvasBackground = color.RGBA{24, 24, 24, 255}
	gridBackground   = color.RGBA{48, 48, 48, 255}
	gridLineColor    = color.RGBA{90, 90, 90, 255}
	hoverFill        = color.RGBA{255, 255, 255, 48}
	hoverStroke      = colornames.White
	missingTile      = colornames.Magenta
)

// tileImages converts the catalog into GPU images, one per palette index.
func tileImages(cat *textures.Catalog) []*ebiten.Image {
	imgs := make([]*ebiten.Image, cat.Count())
	for i := range imgs {
		if src := cat.Image(i); src != nil {
			imgs[i] = ebiten.NewImageFromImage(src)
		}
	}
	return imgs
}

// screenSurface draws controller output onto an ebiten image.
type screenSurface struct {
	dst      *ebiten.Image
	tiles    []*ebiten.Image
	fontFace *text.Face
}

func (s *screenSurface) DrawTile(tile int, r viewport.Rect) {
	if tile < 0 || tile >= len(s.tiles) || s.tiles[tile] == nil {
		vector.FillRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), missingTile, false)
		return
	}
	img := s.tiles[tile]
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterNearest
	s.dst.DrawImage(img, op)
}

func (s *screenSurface) DrawLine(x0, y0, x1, y1 float64) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridLineColor, false)
}

func (s *screenSurface) DrawHover(r viewport.Rect) {
	vector.FillRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), hoverFill, false)
	vector.StrokeRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, hoverStroke, false)
}

func (s *screenSurface) DrawText(str string, x, y float64) {
	drawText(s.dst, str, s.fontFace, x, y, color.White)
}

func drawText(dst *ebiten.Image, str string, face *text.Face, x, y float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, str, *face, op)
}

func fillRect(dst *ebiten.Image, r viewport.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}
