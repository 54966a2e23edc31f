package brush

import "github.com/milk9111/bitmapper/tilemap"

// Line rasterizes the segment between two cells with Bresenham's algorithm.
// Both endpoints are included.
func Line(from, to tilemap.Cell) []tilemap.Cell {
	x0, y0, x1, y1 := from.Col, from.Row, to.Col, to.Row
	var points []tilemap.Cell
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		points = append(points, tilemap.Cell{Col: x0, Row: y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
