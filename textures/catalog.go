// Package textures loads the tile palette from a directory of numbered images.
package textures

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrCatalogUnavailable is returned when no texture and no placeholder can be
// provided.
var ErrCatalogUnavailable = errors.New("texture catalog unavailable")

// PlaceholderName is written into a freshly created textures directory.
const PlaceholderName = "000.png"

// Entry is one paintable texture.
type Entry struct {
	// ID is the number in the file name; it is what map files store.
	ID    int
	Name  string
	Image image.Image
}

// Catalog is the ordered palette. Position i in Entries is tile index i.
type Catalog struct {
	Dir      string
	TileSize int
	Entries  []Entry
	// Placeholder is set when the catalog holds only the built-in tile.
	Placeholder bool
}

// Count is the number of paintable tiles.
func (c *Catalog) Count() int { return len(c.Entries) }

// IDs returns the file ID of every tile index.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.Entries))
	for i, e := range c.Entries {
		ids[i] = e.ID
	}
	return ids
}

// Image returns the texture for tile index i, or nil.
func (c *Catalog) Image(i int) image.Image {
	if i < 0 || i >= len(c.Entries) {
		return nil
	}
	return c.Entries[i].Image
}

// IndexOf returns the tile index holding file ID id, or -1.
func (c *Catalog) IndexOf(id int) int {
	for i, e := range c.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Load reads every NNN.{png,jpg,jpeg,bmp} file in dir, in name order, scaled
// to tileSize. A missing directory is created holding a placeholder texture.
// An existing directory with no usable textures yields an in-memory
// placeholder.
func Load(dir string, tileSize int) (*Catalog, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size %d: %w", tileSize, ErrCatalogUnavailable)
	}
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := bootstrap(dir); err != nil {
			return nil, fmt.Errorf("create %s: %v: %w", dir, err, ErrCatalogUnavailable)
		}
		log.Printf("Created textures directory %s with %s", dir, PlaceholderName)
		files, err = os.ReadDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", dir, err, ErrCatalogUnavailable)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
	c := &Catalog{Dir: dir, TileSize: tileSize}
	seen := make(map[int]bool)
	for _, f := range files {
		if f.IsDir() || !IsTextureFile(f.Name()) {
			continue
		}
		id, ok := parseID(f.Name())
		if !ok {
			continue
		}
		if seen[id] {
			log.Printf("Skipping %s: texture %03d already loaded", f.Name(), id)
			continue
		}
		img, err := decodeFile(filepath.Join(dir, f.Name()))
		if err != nil {
			log.Printf("Skipping %s: %v", f.Name(), err)
			continue
		}
		seen[id] = true
		c.Entries = append(c.Entries, Entry{ID: id, Name: f.Name(), Image: scale(img, tileSize)})
	}
	if len(c.Entries) == 0 {
		log.Printf("No textures in %s, using placeholder", dir)
		c.Entries = []Entry{{ID: 0, Name: PlaceholderName, Image: Placeholder(tileSize)}}
		c.Placeholder = true
	}
	log.Printf("Loaded %d textures from %s", len(c.Entries), dir)
	return c, nil
}

// IsTextureFile reports whether name has a supported image extension.
func IsTextureFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".bmp":
		return true
	}
	return false
}

// parseID reads the three leading digits of a texture file name.
func parseID(name string) (int, bool) {
	if len(name) < 3 {
		return 0, false
	}
	id, err := strconv.Atoi(name[:3])
	if err != nil || id < 0 || strings.ContainsAny(name[:3], "+-") {
		return 0, false
	}
	return id, true
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func scale(src image.Image, size int) image.Image {
	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
