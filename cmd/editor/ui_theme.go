package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

var (
	sidebarBackground = color.RGBA{40, 40, 40, 255}
	swatchIdle        = color.RGBA{60, 60, 60, 255}
	swatchSelected    = colornames.Gold
	labelColor        = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	paletteScrollImage = &widget.ScrollContainerImage{
		Idle: solidNineSlice(color.RGBA{30, 30, 30, 255}),
		Mask: solidNineSlice(color.RGBA{30, 30, 30, 255}),
	}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(sidebarBackground),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     color.Black,
				Hover:    color.Black,
				Pressed:  color.RGBA{0, 0, 200, 255},
				Disabled: color.Gray{Y: 128},
			},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(color.RGBA{70, 70, 70, 255}),
				Hover: solidNineSlice(color.RGBA{85, 85, 85, 255}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{140, 140, 140, 255}),
				Hover:   solidNineSlice(color.RGBA{170, 170, 170, 255}),
				Pressed: solidNineSlice(color.RGBA{120, 120, 120, 255}),
			},
		},
	}
}
