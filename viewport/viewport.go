package viewport

import (
	"fmt"
	"math"
)

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Viewport maps screen pixels to grid cells. Screen coordinates are relative
// to the canvas origin; the caller subtracts any sidebar offset.
type Viewport struct {
	PanX, PanY float64
	TileSize   float64

	zoom    float64
	zoomMin float64
	zoomMax float64
	step    float64
}

// New returns a viewport at zoom 1 (clamped into range) with no pan.
func New(tileSize, zoomMin, zoomMax, step float64) (*Viewport, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %v", tileSize)
	}
	if zoomMin <= 0 || zoomMax < zoomMin {
		return nil, fmt.Errorf("invalid zoom range [%v, %v]", zoomMin, zoomMax)
	}
	if step <= 1 {
		return nil, fmt.Errorf("zoom step must be greater than 1, got %v", step)
	}
	v := &Viewport{TileSize: tileSize, zoomMin: zoomMin, zoomMax: zoomMax, step: step}
	v.zoom = v.clamp(1)
	return v, nil
}

func (v *Viewport) Zoom() float64    { return v.zoom }
func (v *Viewport) ZoomMin() float64 { return v.zoomMin }
func (v *Viewport) ZoomMax() float64 { return v.zoomMax }

// CellSize is the on-screen size of one cell at the current zoom.
func (v *Viewport) CellSize() float64 {
	return v.TileSize * v.zoom
}

func (v *Viewport) clamp(z float64) float64 {
	if z < v.zoomMin {
		return v.zoomMin
	}
	if z > v.zoomMax {
		return v.zoomMax
	}
	return z
}

// ScreenToCell returns the cell under (x, y). The result may lie outside the
// grid.
func (v *Viewport) ScreenToCell(x, y float64) (col, row int) {
	cs := v.CellSize()
	col = int(math.Floor((x - v.PanX) / cs))
	row = int(math.Floor((y - v.PanY) / cs))
	return col, row
}

// CellRect returns the screen rectangle covered by (col, row).
func (v *Viewport) CellRect(col, row int) Rect {
	cs := v.CellSize()
	return Rect{
		X: v.PanX + float64(col)*cs,
		Y: v.PanY + float64(row)*cs,
		W: cs,
		H: cs,
	}
}

// Pan moves the view by a screen-space delta. Panning is unclamped.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// ZoomAt scales by step^delta around the screen point (ax, ay), keeping the
// grid point under it fixed. Positive delta zooms in.
func (v *Viewport) ZoomAt(delta, ax, ay float64) {
	if delta == 0 {
		return
	}
	v.SetZoom(v.zoom*math.Pow(v.step, delta), ax, ay)
}

// SetZoom sets an absolute zoom factor around the anchor (ax, ay).
func (v *Viewport) SetZoom(z, ax, ay float64) {
	old := v.zoom
	z = v.clamp(z)
	if z == old {
		return
	}
	v.PanX = ax - (ax-v.PanX)*(z/old)
	v.PanY = ay - (ay-v.PanY)*(z/old)
	v.zoom = z
}

// Center pans so a cols x rows grid is centered in a viewW x viewH area at
// the current zoom.
func (v *Viewport) Center(cols, rows int, viewW, viewH float64) {
	cs := v.CellSize()
	v.PanX = (viewW - float64(cols)*cs) / 2
	v.PanY = (viewH - float64(rows)*cs) / 2
}

// VisibleCells returns the half-open cell range [c0,c1) x [r0,r1) of a
// cols x rows grid that intersects a viewW x viewH area.
func (v *Viewport) VisibleCells(cols, rows int, viewW, viewH float64) (c0, r0, c1, r1 int) {
	c0, r0 = v.ScreenToCell(0, 0)
	c1, r1 = v.ScreenToCell(viewW, viewH)
	c0 = max(c0, 0)
	r0 = max(r0, 0)
	c1 = min(c1+1, cols)
	r1 = min(r1+1, rows)
	return c0, r0, c1, r1
}
