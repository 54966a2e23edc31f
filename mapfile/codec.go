// Package mapfile reads and writes the plain text map format consumed by the
// game engine.
//
// A map file holds one line per grid row, top row first. Each line has
// exactly width integers separated by a single space and ends in '\n'. An
// empty cell is written as -1; any other value is a texture ID as numbered
// in the textures directory (000.png is 0). Readers accept "\r\n" line
// endings and one trailing newline.
package mapfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/milk9111/bitmapper/tilemap"
)

// DefaultDelimiter separates values on a line.
const DefaultDelimiter = " "

var (
	// ErrMalformedFile is returned when a file does not follow the format.
	ErrMalformedFile = errors.New("malformed map file")
	// ErrUnsupportedGridSize is returned when a well-formed file has
	// dimensions that are not a preset.
	ErrUnsupportedGridSize = errors.New("unsupported grid size")
)

// Codec converts grids to and from map text.
type Codec struct {
	// Delimiter defaults to DefaultDelimiter.
	Delimiter string
	// Presets lists the accepted dimensions. Empty accepts any size.
	Presets tilemap.Presets
	// IDs maps catalog positions to the IDs written to disk. When nil,
	// positions are written as-is and TileCount bounds them.
	IDs       []int
	TileCount int
}

func (c Codec) delimiter() string {
	if c.Delimiter == "" {
		return DefaultDelimiter
	}
	return c.Delimiter
}

func (c Codec) tileCount() int {
	if c.IDs != nil {
		return len(c.IDs)
	}
	return c.TileCount
}

func (c Codec) idOf(tile int) (int, bool) {
	if tile == tilemap.Empty {
		return tilemap.Empty, true
	}
	if tile < 0 || tile >= c.tileCount() {
		return 0, false
	}
	if c.IDs != nil {
		return c.IDs[tile], true
	}
	return tile, true
}

func (c Codec) positions() map[int]int {
	if c.IDs == nil {
		return nil
	}
	m := make(map[int]int, len(c.IDs))
	for pos, id := range c.IDs {
		m[id] = pos
	}
	return m
}

// Encode writes g to w.
func (c Codec) Encode(w io.Writer, g *tilemap.Grid) error {
	bw := bufio.NewWriter(w)
	delim := c.delimiter()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if col > 0 {
				bw.WriteString(delim)
			}
			id, ok := c.idOf(g.At(col, row))
			if !ok {
				return fmt.Errorf("encode cell (%d,%d) value %d: %w", col, row, g.At(col, row), tilemap.ErrInvalidTileIndex)
			}
			bw.WriteString(strconv.Itoa(id))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Marshal returns the map text for g.
func (c Codec) Marshal(g *tilemap.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses map text. Dimensions come from the content: the line count
// is the height and the first line's token count is the width.
func (c Codec) Decode(r io.Reader) (*tilemap.Grid, error) {
	delim := c.delimiter()
	positions := c.positions()
	count := c.tileCount()

	var rows [][]int
	width := 0
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		tokens := strings.Split(sc.Text(), delim)
		if line == 1 {
			width = len(tokens)
		}
		if len(tokens) != width {
			return nil, fmt.Errorf("line %d: %d values, want %d: %w", line, len(tokens), width, ErrMalformedFile)
		}
		values := make([]int, width)
		for i, tok := range tokens {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d value %d: %q is not an integer: %w", line, i+1, tok, ErrMalformedFile)
			}
			tile, ok := c.tileOf(v, positions, count)
			if !ok {
				return nil, fmt.Errorf("line %d value %d: unknown tile %d: %w", line, i+1, v, ErrMalformedFile)
			}
			values[i] = tile
		}
		rows = append(rows, values)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d exceeds %d bytes: %w", len(rows)+1, bufio.MaxScanTokenSize, ErrMalformedFile)
		}
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrMalformedFile)
	}

	size := tilemap.Size{Width: width, Height: len(rows)}
	if len(c.Presets) > 0 && !c.Presets.Contains(size) {
		return nil, fmt.Errorf("%s: %w", size, ErrUnsupportedGridSize)
	}
	g, err := tilemap.New(size.Width, size.Height, count)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedFile)
	}
	for y, values := range rows {
		for x, v := range values {
			if err := g.Set(x, y, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (c Codec) tileOf(v int, positions map[int]int, count int) (int, bool) {
	if v == tilemap.Empty {
		return tilemap.Empty, true
	}
	if positions != nil {
		pos, ok := positions[v]
		return pos, ok
	}
	return v, v >= 0 && v < count
}

// Unmarshal parses map text held in memory.
func (c Codec) Unmarshal(b []byte) (*tilemap.Grid, error) {
	return c.Decode(bytes.NewReader(b))
}
