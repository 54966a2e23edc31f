// Package prefs keeps editor preferences between sessions.
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application the preferences are stored under.
const AppName = "bitmapper"

const (
	prefsObject   = "editor"
	prefsProperty = "prefs"
)

// Prefs is the editor state restored on the next launch.
type Prefs struct {
	Preset    int  `yaml:"preset"`
	BrushSize int  `yaml:"brush_size"`
	ShowGrid  bool `yaml:"show_grid"`
	Tile      int  `yaml:"tile"`
}

// Store persists Prefs through gdata. A Store without a manager keeps them in
// memory only.
type Store struct {
	manager *gdata.Manager
	prefs   Prefs
}

// Open opens the gdata storage for appName. If it cannot be opened the store
// runs memory-only.
func Open(appName string, defaults Prefs) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("Preferences unavailable, not persisting: %v", err)
		m = nil
	}
	return NewStore(m, defaults)
}

// NewStore loads saved prefs from m, falling back to defaults.
func NewStore(m *gdata.Manager, defaults Prefs) *Store {
	s := &Store{manager: m, prefs: defaults}
	if err := s.load(); err != nil {
		log.Printf("Failed to load preferences, using defaults: %v", err)
		s.prefs = defaults
	}
	return s
}

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}
	p := s.prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("unmarshal prefs: %w", err)
	}
	s.prefs = p
	return nil
}

func (s *Store) Prefs() Prefs { return s.prefs }

// Persistent reports whether Save writes to disk.
func (s *Store) Persistent() bool { return s.manager != nil }

// Update replaces the in-memory prefs. Call Save to persist them.
func (s *Store) Update(p Prefs) { s.prefs = p }

func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
