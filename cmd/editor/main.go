package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/bitmapper/config"
	"github.com/milk9111/bitmapper/editor"
	"github.com/milk9111/bitmapper/prefs"
	"github.com/milk9111/bitmapper/textures"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	texturesDir := flag.String("textures", "", "texture directory (overrides config)")
	mapsDir := flag.String("maps", "", "directory maps are saved to and loaded from (overrides config)")
	mapPath := flag.String("map", "", "map file to open at startup")
	tileSize := flag.Int("tile", 0, "tile size in pixels (overrides config)")
	noPrefs := flag.Bool("no-prefs", false, "do not restore or save editor preferences")
	flag.Parse()

	cfg, err := config.Load(*configPath, *configPath == config.DefaultFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *texturesDir != "" {
		cfg.TexturesDir = *texturesDir
	}
	if *mapsDir != "" {
		cfg.MapsDir = *mapsDir
	}
	if *tileSize > 0 {
		cfg.TileSize = *tileSize
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	presets, err := cfg.GridPresets()
	if err != nil {
		log.Fatalf("Invalid presets: %v", err)
	}

	cat, err := textures.Load(cfg.TexturesDir, cfg.TileSize)
	if err != nil {
		log.Fatalf("Failed to load textures: %v", err)
	}

	defaults := prefs.Prefs{
		Preset:    cfg.DefaultPreset,
		BrushSize: cfg.BrushSize,
		ShowGrid:  true,
	}
	var store *prefs.Store
	if *noPrefs {
		store = prefs.NewStore(nil, defaults)
	} else {
		store = prefs.Open(prefs.AppName, defaults)
	}
	p := store.Prefs()

	var copyFn func([]byte) error
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	} else {
		copyFn = func(b []byte) error {
			clipboard.Write(clipboard.FmtText, b)
			return nil
		}
	}

	ctrl, err := editor.New(cat, editor.Options{
		Presets:    presets,
		Preset:     p.Preset,
		BrushSize:  p.BrushSize,
		ShowGrid:   p.ShowGrid,
		Tile:       p.Tile,
		TileSize:   float64(cfg.TileSize),
		ZoomMin:    cfg.ZoomMin,
		ZoomMax:    cfg.ZoomMax,
		ZoomStep:   cfg.ZoomStep,
		ViewWidth:  float64(cfg.ScreenWidth - cfg.SidebarWidth),
		ViewHeight: float64(cfg.ScreenHeight),
		PanStep:    float64(cfg.TileSize),
		MapsDir:    cfg.MapsDir,
		Delimiter:  cfg.Delimiter,
		Clipboard:  copyFn,
	})
	if err != nil {
		log.Fatalf("Failed to start editor: %v", err)
	}
	if *mapPath != "" {
		if err := ctrl.Load(*mapPath); err != nil {
			log.Printf("Starting with an empty map: %v", err)
		}
	}

	var watcher *textures.Watcher
	if cfg.WatchTextures {
		watcher, err = textures.NewWatcher(cfg.TexturesDir)
		if err != nil {
			log.Printf("Texture watching disabled: %v", err)
			watcher = nil
		}
	}

	game := NewGame(ctrl, cat, watcher, cfg.ScreenWidth, cfg.ScreenHeight, cfg.SidebarWidth)

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("BitMapper2D")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	runErr := ebiten.RunGame(game)

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			log.Printf("Failed to close texture watcher: %v", err)
		}
	}
	store.Update(prefs.Prefs{
		Preset:    ctrl.PresetIndex(),
		BrushSize: ctrl.BrushSize(),
		ShowGrid:  ctrl.ShowGrid(),
		Tile:      ctrl.SelectedTile(),
	})
	if err := store.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
