package mapfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/bitmapper/tilemap"
)

// FileName is the name a map of the given size is saved under.
func FileName(s tilemap.Size) string {
	return fmt.Sprintf("map_%dx%d.txt", s.Width, s.Height)
}

// Save writes g into dir under FileName and returns the path written.
func (c Codec) Save(dir string, g *tilemap.Grid) (string, error) {
	path := filepath.Join(dir, FileName(g.Size()))
	if err := c.SaveFile(path, g); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFile writes g to path. The file is replaced only once the new content
// is fully written.
func (c Codec) SaveFile(path string, g *tilemap.Grid) error {
	b, err := c.Marshal(g)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	f, err := os.CreateTemp(dir, ".map-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads the map at path.
func (c Codec) Load(path string) (*tilemap.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()
	g, err := c.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}
