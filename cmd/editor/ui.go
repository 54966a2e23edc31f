package main

import (
	"fmt"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/bitmapper/editor"
)

const (
	paletteColumns = 5
	// paletteHeight is the visible height of the texture area; taller
	// palettes scroll.
	paletteHeight = 160
)

// Sidebar is the right-hand panel: map info, commands and the texture
// palette.
type Sidebar struct {
	theme    *widget.Theme
	fontFace *text.Face
	ctrl     *editor.Controller

	sizeLabel  *widget.Label
	zoomLabel  *widget.Label
	tileLabel  *widget.Label
	brushLabel *widget.Label
	modeLabel  *widget.Label
	gridBtn    *widget.Button

	palette     *widget.Container
	paletteArea *widget.Container
	scroll      *widget.ScrollContainer
	slider      *widget.Slider
	swatches    []*widget.Container
	selected    int
}

// BuildEditorUI lays out the sidebar at the right edge of the window.
func BuildEditorUI(ctrl *editor.Controller, tiles []*ebiten.Image, width int, fontFace *text.Face) (*ebitenui.UI, *Sidebar) {
	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newEditorTheme(fontFace)

	sb := &Sidebar{theme: ui.PrimaryTheme, fontFace: fontFace, ctrl: ctrl, selected: -1}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 0),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(sidebarBackground)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			),
		),
	)

	panel.AddChild(sb.newLabel("BitMapper2D"))
	sb.sizeLabel = sb.newLabel("")
	sb.zoomLabel = sb.newLabel("")
	sb.tileLabel = sb.newLabel("")
	sb.brushLabel = sb.newLabel("")
	sb.modeLabel = sb.newLabel("")
	for _, l := range []*widget.Label{sb.sizeLabel, sb.zoomLabel, sb.tileLabel, sb.brushLabel, sb.modeLabel} {
		panel.AddChild(l)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(2),
				widget.GridLayoutOpts.Spacing(6, 6),
				widget.GridLayoutOpts.Stretch([]bool{true, true}, nil),
			),
		),
	)
	buttons.AddChild(sb.newButton("Save", func() { _ = ctrl.Save() }))
	buttons.AddChild(sb.newButton("Load", func() { _ = ctrl.Load("") }))
	buttons.AddChild(sb.newButton("Clear", ctrl.Clear))
	buttons.AddChild(sb.newButton("Center", ctrl.Center))
	buttons.AddChild(sb.newButton("Size", ctrl.CyclePreset))
	sb.gridBtn = sb.newButton("", ctrl.ToggleGrid)
	buttons.AddChild(sb.gridBtn)
	panel.AddChild(buttons)

	panel.AddChild(sb.newLabel("Textures"))
	sb.palette = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(paletteColumns),
				widget.GridLayoutOpts.Spacing(4, 4),
			),
		),
	)
	sb.paletteArea = sb.newPaletteArea(width - 16)
	panel.AddChild(sb.paletteArea)
	sb.SetPalette(tiles)

	panel.AddChild(sb.newLabel("LMB paint, RMB erase, MMB pan"))
	panel.AddChild(sb.newLabel("Shift+LMB / F fill, 1-4 brush"))
	panel.AddChild(sb.newLabel("Tab size, G grid, C center"))
	panel.AddChild(sb.newLabel("Ctrl+S save, Ctrl+L load"))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchVertical:    true,
	}
	root.AddChild(panel)
	ui.Container = root

	sb.Refresh()
	return ui, sb
}

func (sb *Sidebar) newLabel(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, sb.fontFace, labelColor),
	)
}

func (sb *Sidebar) newButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(sb.theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, sb.fontFace, sb.theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(96, 28),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// newPaletteArea wraps the palette grid in a scroll container with a
// vertical slider. The mouse wheel scrolls it too.
func (sb *Sidebar) newPaletteArea(width int) *widget.Container {
	area := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, paletteHeight),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{MaxHeight: paletteHeight}),
		),
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(2),
				widget.GridLayoutOpts.Spacing(4, 0),
				widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			),
		),
	)

	sb.scroll = widget.NewScrollContainer(
		widget.ScrollContainerOpts.Content(sb.palette),
		widget.ScrollContainerOpts.Image(paletteScrollImage),
		widget.ScrollContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{MaxHeight: paletteHeight}),
		),
	)
	area.AddChild(sb.scroll)

	pageSize := func() int {
		content := sb.palette.GetWidget().Rect.Dy()
		if content <= 0 {
			return 1000
		}
		return int(math.Round(float64(sb.scroll.ViewRect().Dy()) / float64(content) * 1000))
	}
	sb.slider = widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionVertical),
		widget.SliderOpts.Images(sb.theme.SliderTheme.TrackImage, sb.theme.SliderTheme.HandleImage),
		widget.SliderOpts.MinMax(0, 1000),
		widget.SliderOpts.PageSizeFunc(pageSize),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			current := args.Slider.Current
			if pageSize() >= 1000 {
				current = 0
			}
			sb.scroll.ScrollTop = float64(current) / 1000
		}),
		widget.SliderOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(12, 0),
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{MaxHeight: paletteHeight}),
		),
	)
	area.AddChild(sb.slider)

	sb.scroll.GetWidget().ScrolledEvent.AddHandler(func(args any) {
		if a, ok := args.(*widget.WidgetScrolledEventArgs); ok {
			step := max(pageSize()/3, 1)
			sb.slider.Current -= int(math.Round(a.Y * float64(step)))
		}
	})
	return area
}

// SetPalette rebuilds the swatches, e.g. after the textures were reloaded.
func (sb *Sidebar) SetPalette(tiles []*ebiten.Image) {
	sb.palette.RemoveChildren()
	if sb.slider != nil {
		sb.slider.Current = 0
	}
	sb.swatches = sb.swatches[:0]
	sb.selected = -1
	for i, img := range tiles {
		idx := i
		swatch := widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(solidNineSlice(swatchIdle)),
			widget.ContainerOpts.Layout(
				widget.NewAnchorLayout(widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(2))),
			),
		)
		graphic := widget.NewGraphic(
			widget.GraphicOpts.Image(img),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(32, 32),
				widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
					HorizontalPosition: widget.AnchorLayoutPositionCenter,
					VerticalPosition:   widget.AnchorLayoutPositionCenter,
				}),
				widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
					sb.ctrl.SelectTile(idx)
				}),
			),
		)
		swatch.AddChild(graphic)
		sb.palette.AddChild(swatch)
		sb.swatches = append(sb.swatches, swatch)
	}
}

// Refresh copies controller state into the labels. Called once per frame.
func (sb *Sidebar) Refresh() {
	c := sb.ctrl
	sb.sizeLabel.Label = "Map: " + c.Preset().String()
	sb.zoomLabel.Label = fmt.Sprintf("Zoom: %.0f%%", c.Viewport().Zoom()*100)
	sb.tileLabel.Label = "Tile: " + c.TileLabel(c.SelectedTile())
	sb.brushLabel.Label = fmt.Sprintf("Brush: %dx%d", c.BrushSize(), c.BrushSize())
	sb.modeLabel.Label = "Mode: " + c.Mode().String()

	grid := "Grid: Off"
	if c.ShowGrid() {
		grid = "Grid: On"
	}
	if t := sb.gridBtn.Text(); t != nil {
		t.Label = grid
	}

	if sel := c.SelectedTile(); sel != sb.selected {
		for i, s := range sb.swatches {
			if i == sel {
				s.SetBackgroundImage(solidNineSlice(swatchSelected))
			} else {
				s.SetBackgroundImage(solidNineSlice(swatchIdle))
			}
		}
		sb.selected = sel
	}
}
