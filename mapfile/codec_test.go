package mapfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/bitmapper/fill"
	"github.com/milk9111/bitmapper/tilemap"
)

func testCodec() Codec {
	return Codec{Presets: tilemap.DefaultPresets, TileCount: 6}
}

func TestRoundTrip_AllPresets(t *testing.T) {
	c := testCodec()
	for _, size := range tilemap.DefaultPresets {
		t.Run(size.String(), func(t *testing.T) {
			g, err := tilemap.New(size.Width, size.Height, 6)
			if err != nil {
				t.Fatal(err)
			}
			for row := 0; row < size.Height; row++ {
				for col := 0; col < size.Width; col++ {
					v := (col*5 + row*3) % 7
					if v == 6 {
						v = tilemap.Empty
					}
					if err := g.Set(col, row, v); err != nil {
						t.Fatal(err)
					}
				}
			}
			b, err := c.Marshal(g)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := c.Unmarshal(b)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got.Size() != size {
				t.Fatalf("size = %s, want %s", got.Size(), size)
			}
			for row := 0; row < size.Height; row++ {
				for col := 0; col < size.Width; col++ {
					if got.At(col, row) != g.At(col, row) {
						t.Fatalf("tile (%d,%d) = %d, want %d", col, row, got.At(col, row), g.At(col, row))
					}
				}
			}
		})
	}
}

func TestFilledGridScenario(t *testing.T) {
	c := testCodec()
	g, _ := tilemap.New(25, 25, 6)
	if _, err := fill.Flood(g, 12, 12, 3); err != nil {
		t.Fatal(err)
	}
	b, err := c.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != 25 {
		t.Fatalf("got %d lines, want 25", len(lines))
	}
	wantLine := strings.TrimSuffix(strings.Repeat("3 ", 25), " ")
	for i, line := range lines {
		if line != wantLine {
			t.Fatalf("line %d = %q, want %q", i+1, line, wantLine)
		}
	}
	got, err := c.Unmarshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(0, 0) != 3 || got.At(24, 24) != 3 {
		t.Fatalf("corners = %d, %d; want 3, 3", got.At(0, 0), got.At(24, 24))
	}
}

func TestEncode_EmptyIsMinusOne(t *testing.T) {
	g, _ := tilemap.New(2, 2, 3)
	_ = g.Set(1, 0, 2)
	b, err := Codec{}.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "-1 2\n-1 -1\n" {
		t.Fatalf("encoded %q", b)
	}
}

func TestIDMapping(t *testing.T) {
	// catalog positions 0,1,2 hold textures 000, 004, 010
	c := Codec{IDs: []int{0, 4, 10}}
	g, _ := tilemap.New(3, 1, 3)
	_ = g.Set(0, 0, 2)
	_ = g.Set(1, 0, 1)
	b, err := c.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "10 4 -1\n" {
		t.Fatalf("encoded %q", b)
	}
	got, err := c.Unmarshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(0, 0) != 2 || got.At(1, 0) != 1 || got.At(2, 0) != tilemap.Empty {
		t.Fatal("IDs should map back to catalog positions")
	}
	if _, err := c.Unmarshal([]byte("3 4 -1\n")); !errors.Is(err, ErrMalformedFile) {
		t.Fatalf("unknown ID: err = %v, want ErrMalformedFile", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	c := Codec{TileCount: 4}
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"short_row", "1 2 3\n1 2\n"},
		{"long_row", "1 2\n1 2 3\n"},
		{"not_integer", "1 x\n1 2\n"},
		{"float", "1 2.5\n1 2\n"},
		{"out_of_range", "1 4\n1 2\n"},
		{"negative", "1 -2\n1 2\n"},
		{"blank_middle_row", "1 2\n\n1 2\n"},
		{"two_trailing_newlines", "1 2\n1 2\n\n"},
		{"double_delimiter", "1  2\n1 2\n"},
		{"overlong_row", strings.Repeat("1 ", 40000) + "1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.Unmarshal([]byte(tc.text)); !errors.Is(err, ErrMalformedFile) {
				t.Fatalf("err = %v, want ErrMalformedFile", err)
			}
		})
	}
}

func TestDecode_LineEndings(t *testing.T) {
	c := Codec{TileCount: 4}
	for _, text := range []string{"1 2\r\n3 -1\r\n", "1 2\n3 -1", "1 2\n3 -1\n"} {
		g, err := c.Unmarshal([]byte(text))
		if err != nil {
			t.Fatalf("Unmarshal(%q): %v", text, err)
		}
		if g.Width() != 2 || g.Height() != 2 || g.At(0, 1) != 3 || g.At(1, 1) != tilemap.Empty {
			t.Fatalf("Unmarshal(%q) decoded wrong grid", text)
		}
	}
}

func TestDecode_UnsupportedGridSize(t *testing.T) {
	c := testCodec()
	text := strings.Repeat("-1 -1 -1\n", 3)
	if _, err := c.Unmarshal([]byte(text)); !errors.Is(err, ErrUnsupportedGridSize) {
		t.Fatalf("err = %v, want ErrUnsupportedGridSize", err)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "maps")
	c := testCodec()
	g, _ := tilemap.New(25, 25, 6)
	_ = g.Set(3, 4, 5)

	path, err := c.Save(dir, g)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "map_25x25.txt" {
		t.Fatalf("saved to %s", path)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the map file in %s, got %d entries", dir, len(entries))
	}
	got, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.At(3, 4) != 5 {
		t.Fatal("loaded grid differs from saved grid")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	c := testCodec()
	if _, err := c.Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("a b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load(bad); !errors.Is(err, ErrMalformedFile) {
		t.Fatalf("err = %v, want ErrMalformedFile", err)
	}
}
