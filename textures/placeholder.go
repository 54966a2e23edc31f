package textures

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

var (
	placeholderFill   = color.RGBA{R: 255, A: 255}
	placeholderBorder = color.RGBA{A: 255}
)

// Placeholder is a red square with a 1px black border.
func Placeholder(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBorder), image.Point{}, draw.Src)
	if size > 2 {
		inner := image.Rect(1, 1, size-1, size-1)
		draw.Draw(img, inner, image.NewUniform(placeholderFill), image.Point{}, draw.Src)
	}
	return img
}

// bootstrap creates dir with a 32x32 placeholder in it.
func bootstrap(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, PlaceholderName))
	if err != nil {
		return err
	}
	if err := png.Encode(f, Placeholder(32)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
