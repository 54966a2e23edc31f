package main

import (
	"testing"

	"github.com/ebitenui/ebitenui/event"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/bitmapper/editor"
	"github.com/milk9111/bitmapper/tilemap"
)

type testPalette int

func (p testPalette) Count() int { return int(p) }

func (p testPalette) IDs() []int {
	ids := make([]int, p)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func newTestSidebar(t *testing.T, tileCount int) *Sidebar {
	t.Helper()
	ctrl, err := editor.New(testPalette(tileCount), editor.Options{
		Presets:    tilemap.DefaultPresets,
		TileSize:   32,
		ZoomMin:    0.25,
		ZoomMax:    4,
		ZoomStep:   1.1,
		ViewWidth:  560,
		ViewHeight: 600,
	})
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	tiles := make([]*ebiten.Image, tileCount)
	for i := range tiles {
		tiles[i] = ebiten.NewImage(32, 32)
	}
	_, sb := BuildEditorUI(ctrl, tiles, 240, loadFont())
	return sb
}

func TestSidebar_PaletteAreaIsCapped(t *testing.T) {
	sb := newTestSidebar(t, 60)
	if len(sb.swatches) != 60 {
		t.Fatalf("swatches = %d, want 60", len(sb.swatches))
	}
	if _, h := sb.palette.PreferredSize(); h <= paletteHeight {
		t.Fatalf("palette content height %d should exceed the visible area %d", h, paletteHeight)
	}
	if _, h := sb.paletteArea.PreferredSize(); h > paletteHeight {
		t.Fatalf("palette area height = %d, want at most %d", h, paletteHeight)
	}
}

func TestSidebar_WheelScrollsPalette(t *testing.T) {
	sb := newTestSidebar(t, 60)
	event.ExecuteDeferred()

	sb.scroll.GetWidget().ScrolledEvent.Fire(&widget.WidgetScrolledEventArgs{Y: -1})
	event.ExecuteDeferred()
	if sb.slider.Current <= 0 {
		t.Fatalf("slider = %d after scrolling down, want > 0", sb.slider.Current)
	}

	sb.SetPalette([]*ebiten.Image{ebiten.NewImage(32, 32), ebiten.NewImage(32, 32), ebiten.NewImage(32, 32)})
	if sb.slider.Current != 0 || len(sb.swatches) != 3 {
		t.Fatalf("reloaded palette: slider = %d, swatches = %d", sb.slider.Current, len(sb.swatches))
	}
}
