package fill

import (
	"fmt"

	"github.com/milk9111/bitmapper/tilemap"
)

// Flood replaces the 4-connected region of cells sharing the seed's value
// with tile and returns how many cells changed. Filling with the value the
// seed already holds is a no-op.
func Flood(g *tilemap.Grid, col, row, tile int) (int, error) {
	target, err := g.Get(col, row)
	if err != nil {
		return 0, fmt.Errorf("flood fill: %w", err)
	}
	if !g.ValidTile(tile) {
		return 0, fmt.Errorf("flood fill with %d: %w", tile, tilemap.ErrInvalidTileIndex)
	}
	if target == tile {
		return 0, nil
	}

	w := g.Width()
	visited := make([]bool, w*g.Height())
	stack := []tilemap.Cell{{Col: col, Row: row}}
	changed := 0
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !g.InBounds(c.Col, c.Row) {
			continue
		}
		idx := c.Row*w + c.Col
		if visited[idx] || g.At(c.Col, c.Row) != target {
			continue
		}
		visited[idx] = true
		if err := g.Set(c.Col, c.Row, tile); err != nil {
			return changed, err
		}
		changed++
		stack = append(stack,
			tilemap.Cell{Col: c.Col + 1, Row: c.Row},
			tilemap.Cell{Col: c.Col - 1, Row: c.Row},
			tilemap.Cell{Col: c.Col, Row: c.Row + 1},
			tilemap.Cell{Col: c.Col, Row: c.Row - 1},
		)
	}
	return changed, nil
}
