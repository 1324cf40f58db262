// Package scanner discovers audio files under a root directory through
// the fsys.Lister boundary, and can watch folders for new files.
package scanner

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/fsys"
)

// audioExtensions is the fixed whitelist of recognized audio files.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".aac":  true,
	".wma":  true,
	".opus": true,
	".aiff": true,
	".ape":  true,
	".wv":   true,
}

// skipDirs are folder names never worth descending into.
var skipDirs = map[string]bool{
	"node_modules":              true,
	"$recycle.bin":              true,
	"system volume information": true,
	"lost+found":                true,
}

// IsAudioFile reports whether a filename has a recognized audio extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scanner walks directories for audio files.
type Scanner struct {
	lister fsys.Lister
	log    *zap.Logger
}

// New builds a Scanner; a nil lister means the local filesystem.
func New(lister fsys.Lister, log *zap.Logger) *Scanner {
	if lister == nil {
		lister = fsys.OSLister{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{lister: lister, log: log}
}

// Discover returns all audio file paths under root, in listing order.
// Dotfile-prefixed directories and the deny-list are skipped; unreadable
// directories are logged and skipped, never fatal. onDir (if non-nil) is
// called before each directory is listed, for progress display.
func (s *Scanner) Discover(root string, onDir func(dir string)) []string {
	var paths []string
	s.walk(root, onDir, &paths)
	return paths
}

func (s *Scanner) walk(dir string, onDir func(string), paths *[]string) {
	if onDir != nil {
		onDir(dir)
	}

	entries, err := s.lister.List(dir)
	if err != nil {
		s.log.Warn("cannot list directory, skipping",
			zap.String("dir", dir), zap.Error(err))
		return
	}

	for _, ent := range entries {
		if ent.IsDirectory {
			if strings.HasPrefix(ent.Name, ".") || skipDirs[strings.ToLower(ent.Name)] {
				continue
			}
			s.walk(ent.Path, onDir, paths)
			continue
		}
		if IsAudioFile(ent.Name) {
			*paths = append(*paths, ent.Path)
		}
	}
}
