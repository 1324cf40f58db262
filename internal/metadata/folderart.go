package metadata

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/fsys"
)

// coverNames are conventional cover-art base names, in priority order.
// Each name is tried across all image extensions before moving on.
var coverNames = []string{
	"cover", "folder", "album", "front", "art", "artwork",
	"albumart", "albumartsmall", "albumartlarge",
	"thumb", "thumbnail", "disc", "cd",
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// FolderArtwork resolves cover art for the directory containing a track:
// a canonical cover filename first, otherwise the first image file in
// listing order, otherwise nothing. Results are cached per folder,
// including the definitive "no artwork here", so sibling tracks don't
// re-list the same directory.
func (e *Extractor) FolderArtwork(dir string) string {
	if entry, ok := e.folder.Get(dir); ok {
		return entry.uri
	}

	entries, err := e.lister.List(dir)
	if err != nil {
		e.log.Debug("cannot list folder for artwork",
			zap.String("dir", dir), zap.Error(err))
		e.folder.Put(dir, folderArt{})
		return ""
	}

	pick, ok := pickCoverFile(entries)
	if !ok {
		e.folder.Put(dir, folderArt{})
		return ""
	}

	data, err := os.ReadFile(pick.Path)
	if err != nil {
		e.log.Warn("cannot read folder artwork file",
			zap.String("path", pick.Path), zap.Error(err))
		e.folder.Put(dir, folderArt{})
		return ""
	}

	uri := dataURI(mimeForExt(filepath.Ext(pick.Name)), data)
	e.folder.Put(dir, folderArt{uri: uri, found: true})
	return uri
}

// pickCoverFile selects the artwork file from a directory listing.
func pickCoverFile(entries []fsys.Entry) (fsys.Entry, bool) {
	byName := make(map[string]fsys.Entry, len(entries))
	for _, ent := range entries {
		if ent.IsDirectory {
			continue
		}
		lower := strings.ToLower(ent.Name)
		if _, dup := byName[lower]; !dup {
			byName[lower] = ent
		}
	}

	for _, name := range coverNames {
		for _, ext := range imageExts {
			if ent, ok := byName[name+ext]; ok {
				return ent, true
			}
		}
	}

	// No canonical name matched; fall back to the first image file in
	// directory-listing order.
	for _, ent := range entries {
		if !ent.IsDirectory && isImageExt(filepath.Ext(ent.Name)) {
			return ent, true
		}
	}

	return fsys.Entry{}, false
}

func isImageExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}
