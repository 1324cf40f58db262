// Package metadata extracts tags and artwork from audio files. Extraction
// never fails to the caller: unreadable or untagged files degrade to a
// fallback record so a single bad file cannot abort a batch scan.
package metadata

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/fifocache"
	"github.com/danfragoso/deskamp/internal/fsys"
	"github.com/danfragoso/deskamp/internal/model"
)

// Default artwork cache ceilings.
const (
	DefaultEmbeddedCacheSize = 500
	DefaultFolderCacheSize   = 200
)

// folderArt is a folder-cache entry. found distinguishes "checked, none
// found" from keys that were never probed at all.
type folderArt struct {
	uri   string
	found bool
}

// Extractor reads track metadata and resolves artwork, caching artwork
// payloads behind two FIFO-bounded maps.
type Extractor struct {
	lister   fsys.Lister
	embedded *fifocache.Cache[string, string]
	folder   *fifocache.Cache[string, folderArt]
	log      *zap.Logger
}

// Options configures an Extractor. Zero values get sensible defaults.
type Options struct {
	Lister            fsys.Lister
	EmbeddedCacheSize int
	FolderCacheSize   int
	Logger            *zap.Logger
}

// NewExtractor builds an Extractor.
func NewExtractor(opts Options) *Extractor {
	if opts.Lister == nil {
		opts.Lister = fsys.OSLister{}
	}
	if opts.EmbeddedCacheSize <= 0 {
		opts.EmbeddedCacheSize = DefaultEmbeddedCacheSize
	}
	if opts.FolderCacheSize <= 0 {
		opts.FolderCacheSize = DefaultFolderCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Extractor{
		lister:   opts.Lister,
		embedded: fifocache.New[string, string](opts.EmbeddedCacheSize),
		folder:   fifocache.New[string, folderArt](opts.FolderCacheSize),
		log:      opts.Logger,
	}
}

// Extract reads metadata from a single audio file. On any failure it
// returns the degraded fallback record instead of an error.
func (e *Extractor) Extract(path string) *model.Track {
	t := e.fallbackTrack(path)

	f, err := os.Open(path)
	if err != nil {
		e.log.Warn("cannot open audio file, using fallback metadata",
			zap.String("path", path), zap.Error(err))
		t.Artwork = e.FolderArtwork(filepath.Dir(path))
		return t
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		e.log.Debug("tag read failed, using fallback metadata",
			zap.String("path", path), zap.Error(err))
		t.Artwork = e.FolderArtwork(filepath.Dir(path))
		return t
	}

	if v := strings.TrimSpace(m.Title()); v != "" {
		t.Title = v
	}
	if v := strings.TrimSpace(m.Artist()); v != "" {
		t.Artist = v
	}
	if v := strings.TrimSpace(m.Album()); v != "" {
		t.Album = v
	}
	t.Genre = strings.TrimSpace(m.Genre())
	t.Year = m.Year()
	t.TrackNumber, _ = m.Track()
	t.DiscNumber, _ = m.Disc()
	if ft := string(m.FileType()); ft != "" && m.FileType() != tag.UnknownFileType {
		t.Format = ft
	}

	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		t.Artwork = e.embeddedArtwork(path, pic)
	} else {
		t.Artwork = e.FolderArtwork(filepath.Dir(path))
	}

	return t
}

// ExtractMany processes paths sequentially and returns results 1:1 with
// the input order, failures included, so callers can zip paths with
// results positionally. progress (if non-nil) is called after each file.
func (e *Extractor) ExtractMany(paths []string, progress func(done, total int)) []*model.Track {
	tracks := make([]*model.Track, 0, len(paths))
	for i, path := range paths {
		tracks = append(tracks, e.Extract(path))
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return tracks
}

// trackID derives the id from the file path, so re-extracting the same
// file on a later run resolves to the same library record instead of a
// duplicate.
func trackID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
}

// fallbackTrack is the degraded record used whenever tag parsing is not
// possible: filename-derived title, Unknown Artist/Album, zero duration.
func (e *Extractor) fallbackTrack(path string) *model.Track {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	format := model.FallbackFormat
	if ext != "" {
		format = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}

	return &model.Track{
		ID:       trackID(path),
		FilePath: path,
		Title:    strings.TrimSuffix(base, ext),
		Artist:   model.FallbackArtist,
		Album:    model.FallbackAlbum,
		Format:   format,
	}
}

// embeddedArtwork encodes an embedded tag picture as a data URI. The cache
// key includes the payload length because the same path re-parsed may carry
// a different embedded image across edits, and re-parsing is cheaper than
// bitwise comparison.
func (e *Extractor) embeddedArtwork(path string, pic *tag.Picture) string {
	key := fmt.Sprintf("%s:%d", path, len(pic.Data))
	if uri, ok := e.embedded.Get(key); ok {
		return uri
	}

	mime := pic.MIMEType
	if mime == "" {
		mime = mimeForExt("." + pic.Ext)
	}

	uri := dataURI(mime, pic.Data)
	e.embedded.Put(key, uri)
	return uri
}

// mimeForExt maps an image file extension to a MIME type, defaulting to
// JPEG.
func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
