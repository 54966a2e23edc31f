package editor

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/bitmapper/brush"
	"github.com/milk9111/bitmapper/fill"
	"github.com/milk9111/bitmapper/mapfile"
	"github.com/milk9111/bitmapper/tilemap"
	"github.com/milk9111/bitmapper/viewport"
)

// Mode is the interaction state of the controller.
type Mode int

const (
	Idle Mode = iota
	Painting
	Erasing
	Dragging
	FillPending
)

func (m Mode) String() string {
	switch m {
	case Painting:
		return "painting"
	case Erasing:
		return "erasing"
	case Dragging:
		return "dragging"
	case FillPending:
		return "fill"
	default:
		return "idle"
	}
}

// StatusFrames is how long a status message stays on screen.
const StatusFrames = 60

// Palette is the part of the texture catalog the controller needs.
type Palette interface {
	Count() int
	IDs() []int
}

type Options struct {
	Presets   tilemap.Presets
	Preset    int
	BrushSize int
	ShowGrid  bool
	Tile      int

	TileSize float64
	ZoomMin  float64
	ZoomMax  float64
	ZoomStep float64

	// ViewWidth and ViewHeight are the canvas size in pixels.
	ViewWidth  float64
	ViewHeight float64
	// PanStep is how far an arrow key pans, in pixels.
	PanStep float64

	MapsDir   string
	Delimiter string

	// Clipboard receives the export text on KeyCopy. Nil disables copying.
	Clipboard func([]byte) error
}

// Controller owns the grid and viewport and turns input events into edits.
type Controller struct {
	grid    *tilemap.Grid
	view    *viewport.Viewport
	palette Palette

	presets   tilemap.Presets
	preset    int
	brushSize int
	showGrid  bool
	tile      int

	mode     Mode
	last     tilemap.Cell
	lastX    float64
	lastY    float64
	cursorX  float64
	cursorY  float64
	hasMouse bool

	viewW, viewH float64
	panStep      float64

	mapsDir   string
	delimiter string
	clipboard func([]byte) error

	status       string
	statusFrames int
	quit         bool
}

func New(p Palette, opts Options) (*Controller, error) {
	if p == nil || p.Count() == 0 {
		return nil, errors.New("editor needs at least one paintable tile")
	}
	if len(opts.Presets) == 0 {
		return nil, errors.New("editor needs at least one grid preset")
	}
	if opts.Preset < 0 || opts.Preset >= len(opts.Presets) {
		opts.Preset = 0
	}
	if !brush.ValidSize(opts.BrushSize) {
		opts.BrushSize = brush.MinSize
	}
	if opts.Tile < 0 || opts.Tile >= p.Count() {
		opts.Tile = 0
	}
	if opts.PanStep <= 0 {
		opts.PanStep = 32
	}

	size := opts.Presets[opts.Preset]
	grid, err := tilemap.New(size.Width, size.Height, p.Count())
	if err != nil {
		return nil, err
	}
	view, err := viewport.New(opts.TileSize, opts.ZoomMin, opts.ZoomMax, opts.ZoomStep)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		grid:      grid,
		view:      view,
		palette:   p,
		presets:   opts.Presets,
		preset:    opts.Preset,
		brushSize: opts.BrushSize,
		showGrid:  opts.ShowGrid,
		tile:      opts.Tile,
		viewW:     opts.ViewWidth,
		viewH:     opts.ViewHeight,
		panStep:   opts.PanStep,
		mapsDir:   opts.MapsDir,
		delimiter: opts.Delimiter,
		clipboard: opts.Clipboard,
	}
	c.Center()
	return c, nil
}

func (c *Controller) Grid() *tilemap.Grid         { return c.grid }
func (c *Controller) Viewport() *viewport.Viewport { return c.view }
func (c *Controller) Mode() Mode                   { return c.mode }
func (c *Controller) BrushSize() int               { return c.brushSize }
func (c *Controller) ShowGrid() bool               { return c.showGrid }
func (c *Controller) SelectedTile() int            { return c.tile }
func (c *Controller) PresetIndex() int             { return c.preset }
func (c *Controller) Preset() tilemap.Size         { return c.presets[c.preset] }
func (c *Controller) Quitting() bool               { return c.quit }

// Status returns the transient status message, or "" once it has expired.
func (c *Controller) Status() string {
	if c.statusFrames <= 0 {
		return ""
	}
	return c.status
}

func (c *Controller) setStatus(msg string) {
	c.status = msg
	c.statusFrames = StatusFrames
}

// Update advances per-frame timers. Call it once per tick after the frame's
// events.
func (c *Controller) Update() {
	if c.statusFrames > 0 {
		c.statusFrames--
	}
}

// Hover returns the in-bounds cell under the cursor.
func (c *Controller) Hover() (tilemap.Cell, bool) {
	if !c.hasMouse {
		return tilemap.Cell{}, false
	}
	col, row := c.view.ScreenToCell(c.cursorX, c.cursorY)
	if !c.grid.InBounds(col, row) {
		return tilemap.Cell{}, false
	}
	return tilemap.Cell{Col: col, Row: row}, true
}

// SetViewSize updates the canvas size.
func (c *Controller) SetViewSize(w, h float64) {
	c.viewW, c.viewH = w, h
}

// SetPalette swaps in a reloaded catalog. Cells and the selection follow
// their texture ID to its new position; cells whose ID is gone become Empty.
func (c *Controller) SetPalette(p Palette) {
	if p == nil || p.Count() == 0 {
		return
	}
	oldIDs := c.palette.IDs()
	pos := make(map[int]int, p.Count())
	for i, id := range p.IDs() {
		pos[id] = i
	}
	remap := func(tile int) int {
		if tile < 0 || tile >= len(oldIDs) {
			return tilemap.Empty
		}
		if i, ok := pos[oldIDs[tile]]; ok {
			return i
		}
		return tilemap.Empty
	}

	before := c.grid.Count(tilemap.Empty)
	c.grid.Remap(p.Count(), remap)
	if lost := c.grid.Count(tilemap.Empty) - before; lost > 0 {
		log.Printf("Cleared %d cells whose texture was removed", lost)
	}

	if t := remap(c.tile); t != tilemap.Empty {
		c.tile = t
	} else if c.tile >= p.Count() {
		c.tile = p.Count() - 1
	}
	c.palette = p
}

// SelectTile sets the paint tile. Out of range indices are ignored.
func (c *Controller) SelectTile(i int) {
	if i >= 0 && i < c.palette.Count() {
		c.tile = i
	}
}

// SetBrushSize sets the brush size. Invalid sizes are ignored.
func (c *Controller) SetBrushSize(size int) {
	if brush.ValidSize(size) {
		c.brushSize = size
		log.Printf("Brush size: %dx%d", size, size)
	}
}

func (c *Controller) ToggleGrid() {
	c.showGrid = !c.showGrid
}

// Center pans so the grid sits in the middle of the canvas.
func (c *Controller) Center() {
	c.view.Center(c.grid.Width(), c.grid.Height(), c.viewW, c.viewH)
}

// Clear empties every cell.
func (c *Controller) Clear() {
	c.grid.Clear()
	log.Printf("Map cleared")
}

// CyclePreset moves to the next grid size, keeping the overlapping region.
func (c *Controller) CyclePreset() {
	c.setPreset(c.presets.Next(c.preset))
}

func (c *Controller) setPreset(i int) {
	size := c.presets[i]
	if err := c.grid.Resize(size.Width, size.Height, true); err != nil {
		log.Printf("Resize to %s failed: %v", size, err)
		return
	}
	c.preset = i
	c.Center()
	log.Printf("Map size changed to %s", size)
}

func (c *Controller) codec() mapfile.Codec {
	return mapfile.Codec{
		Delimiter: c.delimiter,
		Presets:   c.presets,
		IDs:       c.palette.IDs(),
	}
}

// MapPath is where the current grid is saved.
func (c *Controller) MapPath() string {
	return filepath.Join(c.mapsDir, mapfile.FileName(c.grid.Size()))
}

// Save writes the grid to MapPath.
func (c *Controller) Save() error {
	path, err := c.codec().Save(c.mapsDir, c.grid)
	if err != nil {
		log.Printf("Save failed: %v", err)
		c.setStatus("Save failed!")
		return err
	}
	log.Printf("Map saved to %s", path)
	c.setStatus("Map saved!")
	return nil
}

// Load replaces the grid with the map at path, or MapPath when path is
// empty. On failure the current grid is left untouched.
func (c *Controller) Load(path string) error {
	if path == "" {
		path = c.MapPath()
	}
	g, err := c.codec().Load(path)
	if err != nil {
		log.Printf("Load failed: %v", err)
		switch {
		case errors.Is(err, mapfile.ErrUnsupportedGridSize):
			c.setStatus("Unsupported map size!")
		case errors.Is(err, mapfile.ErrMalformedFile):
			c.setStatus("Malformed map file!")
		default:
			c.setStatus("Load failed!")
		}
		return err
	}
	c.grid.Replace(g)
	if i := c.presets.Index(g.Size()); i >= 0 {
		c.preset = i
	}
	c.Center()
	log.Printf("Map loaded from %s", path)
	c.setStatus("Map loaded!")
	return nil
}

// Copy places the export text on the clipboard.
func (c *Controller) Copy() error {
	if c.clipboard == nil {
		c.setStatus("Clipboard unavailable!")
		return errors.New("clipboard unavailable")
	}
	b, err := c.codec().Marshal(c.grid)
	if err != nil {
		log.Printf("Copy failed: %v", err)
		c.setStatus("Copy failed!")
		return err
	}
	if err := c.clipboard(b); err != nil {
		log.Printf("Copy failed: %v", err)
		c.setStatus("Copy failed!")
		return err
	}
	c.setStatus("Map copied!")
	return nil
}

// Handle applies one input event.
func (c *Controller) Handle(ev Event) {
	if ev.Kind != Quit && ev.Kind != KeyDown {
		c.cursorX, c.cursorY = ev.X, ev.Y
		c.hasMouse = true
	}
	switch ev.Kind {
	case ButtonDown:
		c.buttonDown(ev)
	case ButtonUp:
		c.mode = Idle
	case Motion:
		c.motion(ev)
	case Scroll:
		c.view.ZoomAt(ev.Delta, ev.X, ev.Y)
	case KeyDown:
		c.key(ev)
	case Quit:
		c.quit = true
	}
}

func (c *Controller) cellAt(x, y float64) tilemap.Cell {
	col, row := c.view.ScreenToCell(x, y)
	return tilemap.Cell{Col: col, Row: row}
}

func (c *Controller) buttonDown(ev Event) {
	if c.mode != Idle {
		return
	}
	cell := c.cellAt(ev.X, ev.Y)
	switch ev.Button {
	case ButtonLeft:
		if ev.Shift {
			c.fillAt(cell)
			return
		}
		c.mode = Painting
		c.last = cell
		c.stroke(cell, cell)
	case ButtonRight:
		c.mode = Erasing
		c.last = cell
		c.stroke(cell, cell)
	case ButtonMiddle:
		c.mode = Dragging
		c.lastX, c.lastY = ev.X, ev.Y
	}
}

func (c *Controller) motion(ev Event) {
	switch c.mode {
	case Painting, Erasing:
		cell := c.cellAt(c.clampToView(ev.X, ev.Y))
		if cell != c.last {
			c.stroke(c.last, cell)
			c.last = cell
		}
	case Dragging:
		c.view.Pan(ev.X-c.lastX, ev.Y-c.lastY)
		c.lastX, c.lastY = ev.X, ev.Y
	}
}

// clampToView pulls a point onto the canvas so strokes stop at its edge
// instead of painting cells hidden under the sidebar.
func (c *Controller) clampToView(x, y float64) (float64, float64) {
	if c.viewW > 0 {
		x = max(0, min(x, c.viewW-1))
	}
	if c.viewH > 0 {
		y = max(0, min(y, c.viewH-1))
	}
	return x, y
}

func (c *Controller) brushMode() brush.Mode {
	if c.mode == Erasing {
		return brush.Erase
	}
	return brush.Paint(c.tile)
}

func (c *Controller) stroke(from, to tilemap.Cell) {
	if _, err := brush.Stroke(c.grid, from, to, c.brushSize, c.brushMode()); err != nil {
		log.Printf("Brush failed: %v", err)
	}
}

// fillAt runs one flood fill and returns to Idle.
func (c *Controller) fillAt(cell tilemap.Cell) {
	if !c.grid.InBounds(cell.Col, cell.Row) {
		return
	}
	c.mode = FillPending
	n, err := fill.Flood(c.grid, cell.Col, cell.Row, c.tile)
	if err != nil {
		log.Printf("Fill failed: %v", err)
	} else if n > 0 {
		log.Printf("Filled %d cells at (%d,%d)", n, cell.Col, cell.Row)
	}
	c.mode = Idle
}

func (c *Controller) key(ev Event) {
	switch ev.Key {
	case KeyBrush1, KeyBrush2, KeyBrush3, KeyBrush4:
		c.SetBrushSize(int(ev.Key-KeyBrush1) + 1)
	case KeyToggleGrid:
		c.ToggleGrid()
	case KeyCyclePreset:
		if c.mode == Idle {
			c.CyclePreset()
		}
	case KeyPanLeft:
		c.view.Pan(c.panStep, 0)
	case KeyPanRight:
		c.view.Pan(-c.panStep, 0)
	case KeyPanUp:
		c.view.Pan(0, c.panStep)
	case KeyPanDown:
		c.view.Pan(0, -c.panStep)
	case KeyFill:
		if c.mode == Idle && c.hasMouse {
			c.fillAt(c.cellAt(c.cursorX, c.cursorY))
		}
	case KeyClear:
		c.Clear()
	case KeyCenter:
		c.Center()
	case KeyZoomIn:
		c.view.ZoomAt(1, c.viewW/2, c.viewH/2)
	case KeyZoomOut:
		c.view.ZoomAt(-1, c.viewW/2, c.viewH/2)
	case KeyPrevTile:
		c.tile = (c.tile - 1 + c.palette.Count()) % c.palette.Count()
	case KeyNextTile:
		c.tile = (c.tile + 1) % c.palette.Count()
	case KeySave:
		_ = c.Save()
	case KeyLoad:
		if c.mode == Idle {
			_ = c.Load("")
		}
	case KeyCopy:
		_ = c.Copy()
	case KeyQuit:
		c.quit = true
	}
}

// TileLabel names the tile shown in the cursor readout.
func (c *Controller) TileLabel(tile int) string {
	if tile == tilemap.Empty {
		return "None"
	}
	ids := c.palette.IDs()
	if tile >= 0 && tile < len(ids) {
		return fmt.Sprintf("%03d", ids[tile])
	}
	return fmt.Sprintf("%d?", tile)
}
