package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danfragoso/deskamp/internal/fsys"
)

// fakeLister serves canned directory listings and counts List calls.
type fakeLister struct {
	entries map[string][]fsys.Entry
	calls   int
}

func (f *fakeLister) List(dir string) ([]fsys.Entry, error) {
	f.calls++
	entries, ok := f.entries[dir]
	if !ok {
		return nil, errors.New("no such directory")
	}
	return entries, nil
}

func file(name string) fsys.Entry {
	return fsys.Entry{Name: name, Path: "/music/" + name}
}

func TestExtractUnreadableFileFallsBack(t *testing.T) {
	e := NewExtractor(Options{Lister: &fakeLister{}})
	track := e.Extract("/nope/09 - Moonlight Sonata.flac")

	if track == nil {
		t.Fatal("Extract returned nil")
	}
	if track.Title != "09 - Moonlight Sonata" {
		t.Errorf("Title = %q, want the filename without extension", track.Title)
	}
	if track.Artist != "Unknown Artist" || track.Album != "Unknown Album" {
		t.Errorf("fallback identity = %q / %q", track.Artist, track.Album)
	}
	if track.Format != "FLAC" {
		t.Errorf("Format = %q, want FLAC", track.Format)
	}
	if track.Duration != 0 {
		t.Errorf("Duration = %v, want 0", track.Duration)
	}
	if track.FilePath != "/nope/09 - Moonlight Sonata.flac" {
		t.Errorf("FilePath = %q", track.FilePath)
	}
}

func TestExtractJunkContentFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "static.mp3")
	if err := os.WriteFile(path, []byte("this is not audio"), 0644); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor(Options{Lister: &fakeLister{}})
	track := e.Extract(path)

	if track.Title != "static" {
		t.Errorf("Title = %q, want static", track.Title)
	}
	if track.Format != "MP3" {
		t.Errorf("Format = %q, want MP3", track.Format)
	}
}

func TestExtractAssignsStableID(t *testing.T) {
	e := NewExtractor(Options{Lister: &fakeLister{}})

	first := e.Extract("/music/a.mp3")
	second := e.Extract("/music/a.mp3")
	other := e.Extract("/music/b.mp3")

	if first.ID == "" {
		t.Fatal("extracted track has no id")
	}
	if first.ID != second.ID {
		t.Errorf("same path produced ids %s and %s, want identical", first.ID, second.ID)
	}
	if first.ID == other.ID {
		t.Error("different paths produced the same id")
	}
}

func TestExtractNoExtensionFormat(t *testing.T) {
	e := NewExtractor(Options{Lister: &fakeLister{}})
	track := e.Extract("/nope/mystery")
	if track.Format != "AUDIO" {
		t.Errorf("Format = %q, want AUDIO", track.Format)
	}
}

func TestExtractManyKeepsOrderAndReportsProgress(t *testing.T) {
	e := NewExtractor(Options{Lister: &fakeLister{}})
	paths := []string{"/x/a.mp3", "/x/b.flac", "/x/c.ogg"}

	var progress [][2]int
	tracks := e.ExtractMany(paths, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	if len(tracks) != len(paths) {
		t.Fatalf("got %d tracks for %d paths", len(tracks), len(paths))
	}
	for i, track := range tracks {
		if track.FilePath != paths[i] {
			t.Errorf("tracks[%d].FilePath = %q, want %q", i, track.FilePath, paths[i])
		}
	}
	want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
	if len(progress) != len(want) {
		t.Fatalf("progress called %d times, want %d", len(progress), len(want))
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress[%d] = %v, want %v", i, progress[i], want[i])
		}
	}
}

func TestMimeForExt(t *testing.T) {
	cases := map[string]string{
		".png":  "image/png",
		".PNG":  "image/png",
		".gif":  "image/gif",
		".bmp":  "image/bmp",
		".webp": "image/webp",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".bin":  "image/jpeg",
	}
	for ext, want := range cases {
		if got := mimeForExt(ext); got != want {
			t.Errorf("mimeForExt(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestPlaceholderIsStablePNG(t *testing.T) {
	a := Placeholder("Some Album", 64)
	b := Placeholder("Some Album", 64)
	c := Placeholder("Another Album", 64)

	if !strings.HasPrefix(a, "data:image/png;base64,") {
		t.Errorf("Placeholder prefix = %q", a[:30])
	}
	if a != b {
		t.Error("placeholder is not stable for the same name")
	}
	if a == c {
		t.Error("different names produced identical placeholders")
	}
}

func TestThumbnailPassthroughOnGarbage(t *testing.T) {
	if got := Thumbnail("not a data uri", 32); got != "not a data uri" {
		t.Errorf("Thumbnail on garbage = %q, want the input unchanged", got)
	}
}
