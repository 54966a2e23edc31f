package brush

import (
	"fmt"

	"github.com/milk9111/bitmapper/tilemap"
)

const (
	MinSize = 1
	MaxSize = 4
)

// ValidSize reports whether size is a selectable brush size.
func ValidSize(size int) bool {
	return size >= MinSize && size <= MaxSize
}

// Bounds is satisfied by *tilemap.Grid.
type Bounds interface {
	InBounds(col, row int) bool
}

// Footprint returns the in-bounds cells of a size x size square whose
// top-left corner is (col-(size-1)/2, row-(size-1)/2). Odd sizes are centered
// on the cursor; even sizes extend right and down. Sizes below 1 are treated
// as 1.
func Footprint(b Bounds, col, row, size int) []tilemap.Cell {
	if size < 1 {
		size = 1
	}
	off := (size - 1) / 2
	cells := make([]tilemap.Cell, 0, size*size)
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			c, r := col-off+dx, row-off+dy
			if b.InBounds(c, r) {
				cells = append(cells, tilemap.Cell{Col: c, Row: r})
			}
		}
	}
	return cells
}

// Mode is what a brush writes: a tile index when painting, Empty when
// erasing.
type Mode struct {
	tile int
}

// Erase clears cells.
var Erase = Mode{tile: tilemap.Empty}

// Paint writes tile.
func Paint(tile int) Mode { return Mode{tile: tile} }

func (m Mode) Tile() int     { return m.tile }
func (m Mode) IsErase() bool { return m.tile == tilemap.Empty }

func (m Mode) String() string {
	if m.IsErase() {
		return "erase"
	}
	return fmt.Sprintf("paint(%d)", m.tile)
}

// Apply writes mode into every in-bounds cell and returns how many cells
// changed. An invalid tile index is rejected before any cell is touched.
func Apply(g *tilemap.Grid, cells []tilemap.Cell, mode Mode) (int, error) {
	if !g.ValidTile(mode.tile) {
		return 0, fmt.Errorf("brush %s: %w", mode, tilemap.ErrInvalidTileIndex)
	}
	changed := 0
	for _, c := range cells {
		if !g.InBounds(c.Col, c.Row) || g.At(c.Col, c.Row) == mode.tile {
			continue
		}
		if err := g.Set(c.Col, c.Row, mode.tile); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// Stroke applies the brush at every cell on the line from one cell to
// another, so fast drags leave no gaps.
func Stroke(g *tilemap.Grid, from, to tilemap.Cell, size int, mode Mode) (int, error) {
	changed := 0
	for _, p := range Line(from, to) {
		n, err := Apply(g, Footprint(g, p.Col, p.Row, size), mode)
		changed += n
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}
