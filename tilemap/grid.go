package tilemap

import (
	"errors"
	"fmt"
)

// Empty marks a cell with no tile. It is also the literal written to map files.
const Empty = -1

var (
	// ErrOutOfBounds is returned when a cell coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrInvalidTileIndex is returned when a tile index is neither Empty nor a
	// position in the texture catalog.
	ErrInvalidTileIndex = errors.New("invalid tile index")
)

// Cell is a grid coordinate.
type Cell struct {
	Col, Row int
}

// Grid is a rectangular map of tile indices stored row-major.
type Grid struct {
	width  int
	height int
	// tileCount is the number of paintable tiles; valid indices are 0..tileCount-1.
	tileCount int
	cells     []int
}

// New creates a width x height grid with every cell Empty. tileCount bounds
// the indices Set accepts.
func New(width, height, tileCount int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}
	return &Grid{
		width:     width,
		height:    height,
		tileCount: tileCount,
		cells:     emptyCells(width * height),
	}, nil
}

func emptyCells(n int) []int {
	cells := make([]int, n)
	for i := range cells {
		cells[i] = Empty
	}
	return cells
}

func (g *Grid) Width() int     { return g.width }
func (g *Grid) Height() int    { return g.height }
func (g *Grid) TileCount() int { return g.tileCount }

// Size returns the grid dimensions.
func (g *Grid) Size() Size {
	return Size{Width: g.width, Height: g.height}
}

// Remap sets the tile count to n and rewrites every non-Empty cell through
// fn. A result outside 0..n-1 stores Empty.
func (g *Grid) Remap(n int, fn func(tile int) int) {
	g.tileCount = n
	for i, v := range g.cells {
		if v == Empty {
			continue
		}
		if nv := fn(v); nv >= 0 && nv < n {
			g.cells[i] = nv
		} else {
			g.cells[i] = Empty
		}
	}
}

// InBounds reports whether (col, row) addresses a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.width && row < g.height
}

// ValidTile reports whether tile may be stored in the grid.
func (g *Grid) ValidTile(tile int) bool {
	return tile == Empty || (tile >= 0 && tile < g.tileCount)
}

// Get returns the tile index at (col, row).
func (g *Grid) Get(col, row int) (int, error) {
	if !g.InBounds(col, row) {
		return Empty, fmt.Errorf("get (%d,%d) on %dx%d grid: %w", col, row, g.width, g.height, ErrOutOfBounds)
	}
	return g.cells[row*g.width+col], nil
}

// At is Get for callers that have already checked bounds. Out of range
// coordinates read as Empty.
func (g *Grid) At(col, row int) int {
	if !g.InBounds(col, row) {
		return Empty
	}
	return g.cells[row*g.width+col]
}

// Set stores tile at (col, row).
func (g *Grid) Set(col, row, tile int) error {
	if !g.InBounds(col, row) {
		return fmt.Errorf("set (%d,%d) on %dx%d grid: %w", col, row, g.width, g.height, ErrOutOfBounds)
	}
	if !g.ValidTile(tile) {
		return fmt.Errorf("set (%d,%d) to %d with %d tiles: %w", col, row, tile, g.tileCount, ErrInvalidTileIndex)
	}
	g.cells[row*g.width+col] = tile
	return nil
}

// Resize reallocates the grid to width x height. With preserve the
// overlapping top-left region is copied over; every other cell is Empty. On
// error the grid is unchanged.
func (g *Grid) Resize(width, height int, preserve bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}
	cells := emptyCells(width * height)
	if preserve {
		for y := 0; y < min(g.height, height); y++ {
			copy(cells[y*width:y*width+min(g.width, width)], g.cells[y*g.width:])
		}
	}
	g.width, g.height, g.cells = width, height, cells
	return nil
}

// Clear sets every cell to Empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Replace swaps the contents of g for those of other in one step.
func (g *Grid) Replace(other *Grid) {
	g.width = other.width
	g.height = other.height
	g.tileCount = other.tileCount
	g.cells = append([]int(nil), other.cells...)
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]int(nil), g.cells...)
	return &c
}

// Row returns a copy of one row of the grid.
func (g *Grid) Row(row int) ([]int, error) {
	if row < 0 || row >= g.height {
		return nil, fmt.Errorf("row %d on %dx%d grid: %w", row, g.width, g.height, ErrOutOfBounds)
	}
	out := make([]int, g.width)
	copy(out, g.cells[row*g.width:(row+1)*g.width])
	return out, nil
}

// Count returns how many cells hold tile.
func (g *Grid) Count(tile int) int {
	n := 0
	for _, v := range g.cells {
		if v == tile {
			n++
		}
	}
	return n
}
