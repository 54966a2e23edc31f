package textures

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func solid(size int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLoad_ScansNumberedImages(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "002.bmp"), solid(16, color.White))
	writeImage(t, filepath.Join(dir, "000.png"), solid(32, color.Black))
	writeImage(t, filepath.Join(dir, "001.jpg"), solid(64, color.White))
	writeImage(t, filepath.Join(dir, "010_grass.jpeg"), solid(8, color.Black))
	writeImage(t, filepath.Join(dir, "grass.png"), solid(32, color.Black))
	writeImage(t, filepath.Join(dir, "001.png"), solid(32, color.Black))
	if err := os.WriteFile(filepath.Join(dir, "003.png"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "004.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir, 32)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantIDs := []int{0, 1, 2, 10}
	ids := c.IDs()
	if len(ids) != len(wantIDs) {
		t.Fatalf("IDs = %v, want %v", ids, wantIDs)
	}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] {
			t.Fatalf("IDs = %v, want %v", ids, wantIDs)
		}
	}
	if c.Entries[1].Name != "001.jpg" {
		t.Fatalf("duplicate ID should keep the first file by name, got %s", c.Entries[1].Name)
	}
	for _, e := range c.Entries {
		if b := e.Image.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Fatalf("%s scaled to %v, want 32x32", e.Name, b)
		}
	}
	if c.Placeholder {
		t.Fatal("catalog with textures should not be a placeholder")
	}
	if c.IndexOf(10) != 3 || c.IndexOf(3) != -1 {
		t.Fatal("IndexOf mismatch")
	}
	if c.Image(4) != nil || c.Image(0) == nil {
		t.Fatal("Image bounds mismatch")
	}
}

func TestLoad_BootstrapsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "textures")
	c, err := Load(dir, 48)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Count() != 1 || c.Entries[0].ID != 0 {
		t.Fatalf("expected the single placeholder texture, got %d entries", c.Count())
	}
	f, err := os.Open(filepath.Join(dir, PlaceholderName))
	if err != nil {
		t.Fatalf("placeholder not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("placeholder file is %v, want 32x32", b)
	}
	r, g, b, _ := img.At(16, 16).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Fatal("placeholder centre should be red")
	}
	r, g, b, _ = img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatal("placeholder border should be black")
	}
}

func TestLoad_LogsCountOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "000.png"), solid(32, color.Black))
	writeImage(t, filepath.Join(dir, "001.png"), solid(32, color.White))
	if _, err := Load(dir, 32); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := strings.Count(buf.String(), "Loaded 2 textures"); n != 1 {
		t.Fatalf("count logged %d times, want once:\n%s", n, buf.String())
	}
}

func TestLoad_EmptyDirectoryUsesPlaceholder(t *testing.T) {
	c, err := Load(t.TempDir(), 32)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Placeholder || c.Count() != 1 {
		t.Fatal("empty directory should yield one placeholder tile")
	}
}

func TestLoad_Unavailable(t *testing.T) {
	if _, err := Load(t.TempDir(), 0); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
	// a regular file where the directory should be
	file := filepath.Join(t.TempDir(), "textures")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(file, 32); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		name string
		id   int
		ok   bool
	}{
		{"000.png", 0, true},
		{"042.bmp", 42, true},
		{"123abc.jpg", 123, true},
		{"12.png", 0, false},
		{"ab1.png", 0, false},
		{"-12.png", 0, false},
		{"+12.png", 0, false},
	}
	for _, c := range cases {
		id, ok := parseID(c.name)
		if ok != c.ok || (ok && id != c.id) {
			t.Fatalf("parseID(%q) = %d, %v; want %d, %v", c.name, id, ok, c.id, c.ok)
		}
	}
}

func TestWatcher_ReportsTextureChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	writeImage(t, filepath.Join(dir, "005.png"), solid(4, color.White))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Base(name) != "005.png" {
				t.Fatalf("unexpected event for %s", name)
			}
			return
		case <-deadline:
			t.Fatal("no event for a new texture")
		}
	}
}

func TestWatcher_ReportsAfterLastWrite(t *testing.T) {
	const debounce = 300 * time.Millisecond
	dir := t.TempDir()
	w, err := newWatcher(dir, debounce)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "007.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := f.Write([]byte("chunk")); err != nil {
			t.Fatal(err)
		}
		time.Sleep(debounce / 6)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	lastWrite := time.Now()

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "007.png" {
			t.Fatalf("unexpected event for %s", name)
		}
		if waited := time.Since(lastWrite); waited < debounce/2 {
			t.Fatalf("event %v after the last write, want the directory to settle first", waited)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for a texture being written")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("a burst of writes should be reported once, got another event for %s", name)
	case <-time.After(2 * debounce):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	_ = w.Close()
	if w.Changed() {
		t.Fatal("closed watcher should report no changes")
	}
}
