// Package fsys is the directory-listing boundary between the core and the
// host filesystem. Both folder-artwork probing and audio discovery go
// through a Lister so they can be driven by fakes in tests.
package fsys

import (
	"os"
	"path/filepath"
)

// Entry is a single directory entry.
type Entry struct {
	Name        string
	IsDirectory bool
	Path        string
}

// Lister lists the entries of a directory, in directory order.
type Lister interface {
	List(dir string) ([]Entry, error)
}

// OSLister reads directories from the local filesystem.
type OSLister struct{}

func (OSLister) List(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		entries = append(entries, Entry{
			Name:        d.Name(),
			IsDirectory: d.IsDir(),
			Path:        filepath.Join(dir, d.Name()),
		})
	}
	return entries, nil
}
