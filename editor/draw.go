package editor

import (
	"fmt"

	"github.com/milk9111/bitmapper/brush"
	"github.com/milk9111/bitmapper/tilemap"
	"github.com/milk9111/bitmapper/viewport"
)

// Surface receives the controller's draw calls. Coordinates are canvas
// pixels.
type Surface interface {
	DrawTile(tile int, r viewport.Rect)
	DrawLine(x0, y0, x1, y1 float64)
	DrawHover(r viewport.Rect)
	DrawText(s string, x, y float64)
}

// Draw renders the visible part of the grid, the grid overlay, the brush
// footprint under the cursor and the cursor readout.
func (c *Controller) Draw(s Surface) {
	c0, r0, c1, r1 := c.view.VisibleCells(c.grid.Width(), c.grid.Height(), c.viewW, c.viewH)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if tile := c.grid.At(col, row); tile != tilemap.Empty {
				s.DrawTile(tile, c.view.CellRect(col, row))
			}
		}
	}

	if c.showGrid && c1 > c0 && r1 > r0 {
		top := c.view.CellRect(c0, r0)
		bottom := c.view.CellRect(c1, r1)
		for col := c0; col <= c1; col++ {
			x := c.view.CellRect(col, r0).X
			s.DrawLine(x, top.Y, x, bottom.Y)
		}
		for row := r0; row <= r1; row++ {
			y := c.view.CellRect(c0, row).Y
			s.DrawLine(top.X, y, bottom.X, y)
		}
	}

	cell, ok := c.Hover()
	if !ok {
		return
	}
	for _, fc := range brush.Footprint(c.grid, cell.Col, cell.Row, c.brushSize) {
		s.DrawHover(c.view.CellRect(fc.Col, fc.Row))
	}
	s.DrawText(fmt.Sprintf("X: %d, Y: %d", cell.Col, cell.Row), 8, 8)
	s.DrawText("Tile: "+c.TileLabel(c.grid.At(cell.Col, cell.Row)), 8, 24)
}
