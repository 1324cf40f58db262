package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danfragoso/deskamp/internal/fsys"
)

func TestPickCoverFileCanonicalPriority(t *testing.T) {
	entries := []fsys.Entry{
		file("01 - intro.mp3"),
		file("random.png"),
		file("folder.jpg"),
		file("cover.png"),
	}
	pick, ok := pickCoverFile(entries)
	if !ok {
		t.Fatal("no cover picked")
	}
	// cover outranks folder regardless of extension or listing order.
	if pick.Name != "cover.png" {
		t.Errorf("picked %q, want cover.png", pick.Name)
	}
}

func TestPickCoverFileNameBeforeExtension(t *testing.T) {
	// All extensions of a name are tried before the next name.
	entries := []fsys.Entry{
		file("folder.jpg"),
		file("cover.webp"),
	}
	pick, _ := pickCoverFile(entries)
	if pick.Name != "cover.webp" {
		t.Errorf("picked %q, want cover.webp", pick.Name)
	}
}

func TestPickCoverFileCaseInsensitive(t *testing.T) {
	entries := []fsys.Entry{
		file("AlbumArt.JPG"),
	}
	pick, ok := pickCoverFile(entries)
	if !ok || pick.Name != "AlbumArt.JPG" {
		t.Errorf("picked %v, %v; want AlbumArt.JPG", pick, ok)
	}
}

func TestPickCoverFileFallsBackToFirstImage(t *testing.T) {
	entries := []fsys.Entry{
		file("01 - intro.mp3"),
		file("liner-notes.pdf"),
		file("band-photo.jpeg"),
		file("back.png"),
	}
	pick, ok := pickCoverFile(entries)
	if !ok {
		t.Fatal("no cover picked")
	}
	if pick.Name != "band-photo.jpeg" {
		t.Errorf("picked %q, want the first image in listing order", pick.Name)
	}
}

func TestPickCoverFileNoImages(t *testing.T) {
	entries := []fsys.Entry{
		file("01 - intro.mp3"),
		{Name: "artwork", IsDirectory: true, Path: "/music/artwork"},
	}
	if _, ok := pickCoverFile(entries); ok {
		t.Error("picked a cover from a folder with no image files")
	}
}

func TestFolderArtworkReadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{0x89, 'P', 'N', 'G'}
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), payload, 0644); err != nil {
		t.Fatal(err)
	}

	lister := &countingOSLister{}
	e := NewExtractor(Options{Lister: lister})

	uri := e.FolderArtwork(dir)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("uri = %q, want a png data uri", uri)
	}

	again := e.FolderArtwork(dir)
	if again != uri {
		t.Error("second lookup returned a different uri")
	}
	if lister.calls != 1 {
		t.Errorf("directory listed %d times, want 1", lister.calls)
	}
}

func TestFolderArtworkCachesMiss(t *testing.T) {
	dir := t.TempDir() // empty, no artwork

	lister := &countingOSLister{}
	e := NewExtractor(Options{Lister: lister})

	if uri := e.FolderArtwork(dir); uri != "" {
		t.Errorf("uri = %q, want empty", uri)
	}
	if uri := e.FolderArtwork(dir); uri != "" {
		t.Errorf("second uri = %q, want empty", uri)
	}
	if lister.calls != 1 {
		t.Errorf("directory listed %d times, want 1; the miss was not cached", lister.calls)
	}
}

// countingOSLister delegates to the real filesystem while counting calls.
type countingOSLister struct {
	calls int
}

func (l *countingOSLister) List(dir string) ([]fsys.Entry, error) {
	l.calls++
	return fsys.OSLister{}.List(dir)
}
