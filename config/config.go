package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/bitmapper/brush"
	"github.com/milk9111/bitmapper/tilemap"
)

// DefaultFile is read when no -config flag is given. It may be absent.
const DefaultFile = "bitmapper.yaml"

type Config struct {
	TexturesDir   string   `yaml:"textures_dir"`
	MapsDir       string   `yaml:"maps_dir"`
	TileSize      int      `yaml:"tile_size"`
	ZoomMin       float64  `yaml:"zoom_min"`
	ZoomMax       float64  `yaml:"zoom_max"`
	ZoomStep      float64  `yaml:"zoom_step"`
	Presets       []string `yaml:"presets"`
	DefaultPreset int      `yaml:"default_preset"`
	BrushSize     int      `yaml:"brush_size"`
	ScreenWidth   int      `yaml:"screen_width"`
	ScreenHeight  int      `yaml:"screen_height"`
	SidebarWidth  int      `yaml:"sidebar_width"`
	WatchTextures bool     `yaml:"watch_textures"`
	Delimiter     string   `yaml:"delimiter"`
}

func Default() Config {
	return Config{
		TexturesDir:   "textures",
		MapsDir:       ".",
		TileSize:      32,
		ZoomMin:       0.25,
		ZoomMax:       4.0,
		ZoomStep:      1.1,
		Presets:       []string{"25x25", "50x50", "100x100"},
		DefaultPreset: 1,
		BrushSize:     1,
		ScreenWidth:   800,
		ScreenHeight:  600,
		SidebarWidth:  240,
		WatchTextures: true,
		Delimiter:     " ",
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// GridPresets parses the preset list.
func (c Config) GridPresets() (tilemap.Presets, error) {
	presets := make(tilemap.Presets, 0, len(c.Presets))
	for _, s := range c.Presets {
		size, err := tilemap.ParseSize(s)
		if err != nil {
			return nil, err
		}
		if presets.Contains(size) {
			return nil, fmt.Errorf("duplicate preset %s", size)
		}
		presets = append(presets, size)
	}
	return presets, nil
}

func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", c.TileSize)
	}
	if c.ZoomMin <= 0 || c.ZoomMax < c.ZoomMin {
		return fmt.Errorf("invalid zoom range [%v, %v]", c.ZoomMin, c.ZoomMax)
	}
	if c.ZoomStep <= 1 {
		return fmt.Errorf("zoom_step must be greater than 1, got %v", c.ZoomStep)
	}
	presets, err := c.GridPresets()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		return errors.New("at least one preset is required")
	}
	if c.DefaultPreset < 0 || c.DefaultPreset >= len(presets) {
		return fmt.Errorf("default_preset %d out of range [0, %d)", c.DefaultPreset, len(presets))
	}
	if !brush.ValidSize(c.BrushSize) {
		return fmt.Errorf("brush_size must be in [%d, %d], got %d", brush.MinSize, brush.MaxSize, c.BrushSize)
	}
	if c.ScreenWidth <= c.SidebarWidth || c.ScreenHeight <= 0 || c.SidebarWidth < 0 {
		return fmt.Errorf("invalid screen layout %dx%d with sidebar %d", c.ScreenWidth, c.ScreenHeight, c.SidebarWidth)
	}
	if c.Delimiter == "" || c.Delimiter == "-" || containsDigit(c.Delimiter) {
		return fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	return nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
