// Package library owns the flat set of known tracks and playlists, plus
// the view state (search, facet filters, sort) that shapes what a front
// end shows. Artist/Album/Genre/Year listings are derived on every read,
// never cached, so they always reflect the current track set.
package library

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/model"
)

// ViewType selects which listing the UI is looking at.
type ViewType string

const (
	ViewSongs      ViewType = "songs"
	ViewArtists    ViewType = "artists"
	ViewAlbums     ViewType = "albums"
	ViewGenres     ViewType = "genres"
	ViewYears      ViewType = "years"
	ViewNowPlaying ViewType = "nowPlaying"
	ViewPlaylist   ViewType = "playlist"
)

// SortField is the active column for the track listing.
type SortField string

const (
	SortTitle       SortField = "title"
	SortArtist      SortField = "artist"
	SortAlbum       SortField = "album"
	SortYear        SortField = "year"
	SortGenre       SortField = "genre"
	SortDuration    SortField = "duration"
	SortBitrate     SortField = "bitrate"
	SortTrackNumber SortField = "trackNumber"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Library is the media library core state. All methods are safe for
// concurrent use; mutations from watcher or scan goroutines serialize on
// the internal mutex so id uniqueness holds under concurrent completions.
type Library struct {
	mu        sync.Mutex
	tracks    []*model.Track
	byID      map[string]*model.Track
	playlists []*model.Playlist
	accounts  []*model.CloudAccount

	scanning      bool
	scanProgress  int
	currentFolder string

	view               ViewType
	selectedArtist     string
	selectedAlbum      string
	selectedGenre      string
	selectedYear       int // 0 means no year facet
	selectedPlaylistID string
	searchQuery        string
	sortField          SortField
	sortDirection      SortDirection

	nextSubID int
	subs      map[int]func()

	log *zap.Logger
}

// New returns an empty library with the default view state.
func New(log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{
		byID:          make(map[string]*model.Track),
		view:          ViewSongs,
		sortField:     SortTitle,
		sortDirection: SortAsc,
		subs:          make(map[int]func()),
		log:           log,
	}
}

// Subscribe registers a callback invoked after every mutation. The
// returned function unsubscribes it.
func (l *Library) Subscribe(fn func()) func() {
	l.mu.Lock()
	id := l.nextSubID
	l.nextSubID++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// notify calls subscribers outside the lock.
func (l *Library) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// AddTracks ingests a batch. Tracks without an id get one assigned;
// tracks whose id is already known are silently dropped (first-submitted
// wins). Returns the number actually added.
func (l *Library) AddTracks(tracks []*model.Track) int {
	l.mu.Lock()
	added := 0
	for _, t := range tracks {
		if t == nil {
			continue
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if _, exists := l.byID[t.ID]; exists {
			continue
		}
		l.byID[t.ID] = t
		l.tracks = append(l.tracks, t)
		added++
	}
	l.mu.Unlock()

	if added > 0 {
		l.log.Info("tracks ingested", zap.Int("added", added), zap.Int("submitted", len(tracks)))
		l.notify()
	}
	return added
}

// RemoveTrack removes a track from the library by id. Playlists keep
// their reference; stale playlist entries are acceptable, not a crash.
func (l *Library) RemoveTrack(id string) bool {
	l.mu.Lock()
	_, exists := l.byID[id]
	if exists {
		delete(l.byID, id)
		for i, t := range l.tracks {
			if t.ID == id {
				l.tracks = append(l.tracks[:i], l.tracks[i+1:]...)
				break
			}
		}
	}
	l.mu.Unlock()

	if exists {
		l.notify()
	}
	return exists
}

// ClearTracks empties the track set.
func (l *Library) ClearTracks() {
	l.mu.Lock()
	l.tracks = nil
	l.byID = make(map[string]*model.Track)
	l.mu.Unlock()
	l.notify()
}

// Tracks returns a copy of the flat track list in ingestion order.
func (l *Library) Tracks() []*model.Track {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*model.Track(nil), l.tracks...)
}

// TrackByID looks a track up by id.
func (l *Library) TrackByID(id string) (*model.Track, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byID[id]
	return t, ok
}

// --- Playlists ---

// CreatePlaylist adds an empty named playlist and returns it.
func (l *Library) CreatePlaylist(name string) *model.Playlist {
	now := time.Now()
	pl := &model.Playlist{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	l.mu.Lock()
	l.playlists = append(l.playlists, pl)
	l.mu.Unlock()

	l.notify()
	return pl
}

// DeletePlaylist removes a playlist by id.
func (l *Library) DeletePlaylist(id string) bool {
	l.mu.Lock()
	removed := false
	for i, pl := range l.playlists {
		if pl.ID == id {
			l.playlists = append(l.playlists[:i], l.playlists[i+1:]...)
			removed = true
			break
		}
	}
	l.mu.Unlock()

	if removed {
		l.notify()
	}
	return removed
}

// RenamePlaylist renames a playlist by id.
func (l *Library) RenamePlaylist(id, name string) bool {
	l.mu.Lock()
	renamed := false
	for _, pl := range l.playlists {
		if pl.ID == id {
			pl.Name = name
			pl.UpdatedAt = time.Now()
			renamed = true
			break
		}
	}
	l.mu.Unlock()

	if renamed {
		l.notify()
	}
	return renamed
}

// AddToPlaylist appends a track reference to a playlist, skipping tracks
// already present in it.
func (l *Library) AddToPlaylist(playlistID string, track *model.Track) bool {
	if track == nil {
		return false
	}

	l.mu.Lock()
	added := false
	if pl := l.playlistLocked(playlistID); pl != nil {
		present := false
		for _, t := range pl.Tracks {
			if t.ID == track.ID {
				present = true
				break
			}
		}
		if !present {
			pl.Tracks = append(pl.Tracks, track)
			pl.UpdatedAt = time.Now()
			added = true
		}
	}
	l.mu.Unlock()

	if added {
		l.notify()
	}
	return added
}

// RemoveFromPlaylist drops a track reference from a playlist.
func (l *Library) RemoveFromPlaylist(playlistID, trackID string) bool {
	l.mu.Lock()
	removed := false
	if pl := l.playlistLocked(playlistID); pl != nil {
		for i, t := range pl.Tracks {
			if t.ID == trackID {
				pl.Tracks = append(pl.Tracks[:i], pl.Tracks[i+1:]...)
				pl.UpdatedAt = time.Now()
				removed = true
				break
			}
		}
	}
	l.mu.Unlock()

	if removed {
		l.notify()
	}
	return removed
}

// Playlists returns a copy of the playlist list.
func (l *Library) Playlists() []*model.Playlist {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*model.Playlist(nil), l.playlists...)
}

// PlaylistByID looks a playlist up by id.
func (l *Library) PlaylistByID(id string) (*model.Playlist, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pl := l.playlistLocked(id)
	return pl, pl != nil
}

func (l *Library) playlistLocked(id string) *model.Playlist {
	for _, pl := range l.playlists {
		if pl.ID == id {
			return pl
		}
	}
	return nil
}

// --- Cloud accounts (opaque passthrough) ---

func (l *Library) AddCloudAccount(account *model.CloudAccount) {
	if account == nil {
		return
	}
	l.mu.Lock()
	l.accounts = append(l.accounts, account)
	l.mu.Unlock()
	l.notify()
}

func (l *Library) RemoveCloudAccount(id string) {
	l.mu.Lock()
	for i, a := range l.accounts {
		if a.ID == id {
			l.accounts = append(l.accounts[:i], l.accounts[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
	l.notify()
}

func (l *Library) CloudAccounts() []*model.CloudAccount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*model.CloudAccount(nil), l.accounts...)
}

// --- Scan progress ---

// SetScanning flags a batch scan as running. Scans cannot be cancelled;
// the progress counter is the only thing observable mid-batch.
func (l *Library) SetScanning(scanning bool) {
	l.mu.Lock()
	l.scanning = scanning
	if !scanning {
		l.currentFolder = ""
	}
	l.mu.Unlock()
	l.notify()
}

func (l *Library) Scanning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scanning
}

func (l *Library) SetScanProgress(done int) {
	l.mu.Lock()
	l.scanProgress = done
	l.mu.Unlock()
}

func (l *Library) ScanProgress() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scanProgress
}

func (l *Library) SetCurrentFolder(folder string) {
	l.mu.Lock()
	l.currentFolder = folder
	l.mu.Unlock()
}

func (l *Library) CurrentFolder() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentFolder
}

// --- View state ---

// SetView switches the active listing and clears all facet selections.
func (l *Library) SetView(view ViewType) {
	l.mu.Lock()
	l.view = view
	l.selectedArtist = ""
	l.selectedAlbum = ""
	l.selectedGenre = ""
	l.selectedYear = 0
	l.mu.Unlock()
	l.notify()
}

func (l *Library) View() ViewType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}

// SelectArtist sets the artist facet; empty clears it.
func (l *Library) SelectArtist(name string) {
	l.mu.Lock()
	l.selectedArtist = name
	l.mu.Unlock()
	l.notify()
}

func (l *Library) SelectAlbum(name string) {
	l.mu.Lock()
	l.selectedAlbum = name
	l.mu.Unlock()
	l.notify()
}

func (l *Library) SelectGenre(name string) {
	l.mu.Lock()
	l.selectedGenre = name
	l.mu.Unlock()
	l.notify()
}

// SelectYear sets the year facet; 0 clears it.
func (l *Library) SelectYear(year int) {
	l.mu.Lock()
	l.selectedYear = year
	l.mu.Unlock()
	l.notify()
}

// SelectPlaylist switches to the playlist view showing the given playlist.
func (l *Library) SelectPlaylist(id string) {
	l.mu.Lock()
	l.selectedPlaylistID = id
	l.view = ViewPlaylist
	l.mu.Unlock()
	l.notify()
}

func (l *Library) SetSearchQuery(query string) {
	l.mu.Lock()
	l.searchQuery = query
	l.mu.Unlock()
	l.notify()
}

func (l *Library) SearchQuery() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.searchQuery
}

func (l *Library) SetSortField(field SortField) {
	l.mu.Lock()
	l.sortField = field
	l.mu.Unlock()
	l.notify()
}

func (l *Library) SetSortDirection(dir SortDirection) {
	l.mu.Lock()
	l.sortDirection = dir
	l.mu.Unlock()
	l.notify()
}

// ToggleSort selects a sort column: the same field twice flips direction,
// a different field resets to ascending.
func (l *Library) ToggleSort(field SortField) {
	l.mu.Lock()
	if l.sortField == field && l.sortDirection == SortAsc {
		l.sortDirection = SortDesc
	} else {
		l.sortDirection = SortAsc
	}
	l.sortField = field
	l.mu.Unlock()
	l.notify()
}

func (l *Library) Sort() (SortField, SortDirection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortField, l.sortDirection
}
