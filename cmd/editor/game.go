package main

import (
	"bytes"
	"image"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/bitmapper/editor"
	"github.com/milk9111/bitmapper/textures"
	"github.com/milk9111/bitmapper/viewport"
)

// Game adapts the editor controller to ebiten.
type Game struct {
	ctrl     *editor.Controller
	catalog  *textures.Catalog
	watcher  *textures.Watcher
	tiles    []*ebiten.Image
	ui       *ebitenui.UI
	sidebar  *Sidebar
	input    inputState
	fontFace *text.Face

	sidebarW      int
	width, height int
}

func loadFont() *text.Face {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var face text.Face = &text.GoTextFace{Source: s, Size: 14}
	return &face
}

func NewGame(ctrl *editor.Controller, cat *textures.Catalog, w *textures.Watcher, width, height, sidebarW int) *Game {
	g := &Game{
		ctrl:     ctrl,
		catalog:  cat,
		watcher:  w,
		tiles:    tileImages(cat),
		fontFace: loadFont(),
		sidebarW: sidebarW,
		width:    width,
		height:   height,
	}
	g.ui, g.sidebar = BuildEditorUI(ctrl, g.tiles, sidebarW, g.fontFace)
	return g
}

func (g *Game) canvasWidth() int {
	return g.width - g.sidebarW
}

// reloadTextures rescans the catalog after the watcher saw a change. A failed
// rescan keeps the current palette.
func (g *Game) reloadTextures() {
	cat, err := textures.Load(g.catalog.Dir, g.catalog.TileSize)
	if err != nil {
		log.Printf("Texture reload failed: %v", err)
		return
	}
	g.catalog = cat
	g.tiles = tileImages(cat)
	g.ctrl.SetPalette(cat)
	g.sidebar.SetPalette(g.tiles)
	log.Printf("Reloaded %d textures", cat.Count())
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	if g.watcher.Changed() {
		g.reloadTextures()
	}
	for {
		select {
		case err, ok := <-g.watcher.Errors:
			if !ok {
				log.Printf("Texture watcher stopped")
				g.watcher = nil
				return
			}
			log.Printf("Texture watcher error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.ctrl.Handle(editor.Event{Kind: editor.Quit})
	}
	g.pollWatcher()
	g.ui.Update()
	for _, ev := range g.input.poll(g.canvasWidth()) {
		g.ctrl.Handle(ev)
	}
	g.ctrl.Update()
	g.sidebar.Refresh()
	if g.ctrl.Quitting() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)

	canvas, ok := screen.SubImage(image.Rect(0, 0, g.canvasWidth(), g.height)).(*ebiten.Image)
	if ok {
		g.drawGridArea(canvas)
		g.ctrl.Draw(&screenSurface{dst: canvas, tiles: g.tiles, fontFace: g.fontFace})
		if msg := g.ctrl.Status(); msg != "" {
			drawText(canvas, msg, g.fontFace, 8, float64(g.height-24), color.RGBA{255, 220, 0, 255})
		}
	}

	g.ui.Draw(screen)
}

// drawGridArea shades the map's footprint so empty cells stand out from
// the canvas.
func (g *Game) drawGridArea(dst *ebiten.Image) {
	grid := g.ctrl.Grid()
	view := g.ctrl.Viewport()
	tl := view.CellRect(0, 0)
	br := view.CellRect(grid.Width(), grid.Height())
	r := viewport.Rect{X: tl.X, Y: tl.Y, W: br.X - tl.X, H: br.Y - tl.Y}
	fillRect(dst, r, gridBackground)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= g.sidebarW {
		outsideWidth = g.sidebarW + 1
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctrl.SetViewSize(float64(g.canvasWidth()), float64(g.height))
	}
	return g.width, g.height
}
