package tilemap

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a grid dimension pair.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses "WxH".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("parse size %q: want WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("parse size %q: dimensions must be positive", s)
	}
	return Size{Width: width, Height: height}, nil
}

// DefaultPresets are the grid sizes the editor cycles through.
var DefaultPresets = Presets{{25, 25}, {50, 50}, {100, 100}}

// Presets is the fixed, ordered set of supported grid sizes.
type Presets []Size

// Index returns the position of s in p, or -1.
func (p Presets) Index(s Size) int {
	for i, preset := range p {
		if preset == s {
			return i
		}
	}
	return -1
}

// Contains reports whether s is one of the presets.
func (p Presets) Contains(s Size) bool {
	return p.Index(s) >= 0
}

// Next returns the index after i, wrapping around.
func (p Presets) Next(i int) int {
	if len(p) == 0 {
		return 0
	}
	return (i + 1) % len(p)
}
