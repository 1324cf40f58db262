package library

import (
	"sort"
	"strings"

	"github.com/danfragoso/deskamp/internal/model"
)

// ArtistInfo is one row of the artist listing. AlbumCount counts distinct
// album strings credited to this artist, not (album, artist) identities.
type ArtistInfo struct {
	Name       string
	TrackCount int
	AlbumCount int
}

// AlbumInfo is one row of the album listing. Album identity is the
// (album, artist) pair.
type AlbumInfo struct {
	Name       string
	Artist     string
	Year       int
	Artwork    string
	TrackCount int
	Tracks     []*model.Track
}

type GenreInfo struct {
	Name       string
	TrackCount int
}

type YearInfo struct {
	Year       int
	TrackCount int
}

// Artists groups tracks by exact artist string, sorted by name.
func (l *Library) Artists() []ArtistInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	type agg struct {
		trackCount int
		albums     map[string]struct{}
	}

	byArtist := make(map[string]*agg)
	for _, t := range l.tracks {
		a := byArtist[t.Artist]
		if a == nil {
			a = &agg{albums: make(map[string]struct{})}
			byArtist[t.Artist] = a
		}
		a.trackCount++
		a.albums[t.Album] = struct{}{}
	}

	infos := make([]ArtistInfo, 0, len(byArtist))
	for name, a := range byArtist {
		infos = append(infos, ArtistInfo{
			Name:       name,
			TrackCount: a.trackCount,
			AlbumCount: len(a.albums),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Albums groups tracks by the (album, artist) pair, sorted by album name.
// Artwork and year are back-filled from the first track in ingestion order
// that carries a value; later tracks never override them.
func (l *Library) Albums() []AlbumInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	byKey := make(map[string]*AlbumInfo)
	for _, t := range l.tracks {
		key := t.Album + "\x00" + t.Artist
		info := byKey[key]
		if info == nil {
			byKey[key] = &AlbumInfo{
				Name:       t.Album,
				Artist:     t.Artist,
				Year:       t.Year,
				Artwork:    t.Artwork,
				TrackCount: 1,
				Tracks:     []*model.Track{t},
			}
			continue
		}
		info.TrackCount++
		info.Tracks = append(info.Tracks, t)
		if info.Artwork == "" && t.Artwork != "" {
			info.Artwork = t.Artwork
		}
		if info.Year == 0 && t.Year != 0 {
			info.Year = t.Year
		}
	}

	infos := make([]AlbumInfo, 0, len(byKey))
	for _, info := range byKey {
		infos = append(infos, *info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Genres groups by genre string, missing genres bucketed as "Unknown",
// sorted by name.
func (l *Library) Genres() []GenreInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := make(map[string]int)
	for _, t := range l.tracks {
		genre := t.Genre
		if genre == "" {
			genre = "Unknown"
		}
		counts[genre]++
	}

	infos := make([]GenreInfo, 0, len(counts))
	for name, n := range counts {
		infos = append(infos, GenreInfo{Name: name, TrackCount: n})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Years groups by year, most recent first. Tracks without a year are
// excluded entirely, not bucketed.
func (l *Library) Years() []YearInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := make(map[int]int)
	for _, t := range l.tracks {
		if t.Year != 0 {
			counts[t.Year]++
		}
	}

	infos := make([]YearInfo, 0, len(counts))
	for year, n := range counts {
		infos = append(infos, YearInfo{Year: year, TrackCount: n})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Year > infos[j].Year })
	return infos
}

// FilteredTracks produces the current visible track sequence: free-text
// search, then facet filters, then the active sort. When a user playlist
// is the active view its track list bypasses search and facets entirely.
func (l *Library) FilteredTracks() []*model.Track {
	l.mu.Lock()
	defer l.mu.Unlock()

	var filtered []*model.Track

	if l.view == ViewPlaylist && l.selectedPlaylistID != "" {
		if pl := l.playlistLocked(l.selectedPlaylistID); pl != nil {
			filtered = append([]*model.Track(nil), pl.Tracks...)
		}
	} else {
		query := strings.ToLower(l.searchQuery)
		for _, t := range l.tracks {
			if query != "" && !matchesQuery(t, query) {
				continue
			}
			if l.selectedArtist != "" && t.Artist != l.selectedArtist {
				continue
			}
			if l.selectedAlbum != "" && t.Album != l.selectedAlbum {
				continue
			}
			if l.selectedGenre != "" && t.Genre != l.selectedGenre {
				continue
			}
			if l.selectedYear != 0 && t.Year != l.selectedYear {
				continue
			}
			filtered = append(filtered, t)
		}
	}

	l.sortTracksLocked(filtered)
	return filtered
}

// matchesQuery is a case-insensitive substring search across title,
// artist, album, and genre (OR semantics).
func matchesQuery(t *model.Track, query string) bool {
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Artist), query) ||
		strings.Contains(strings.ToLower(t.Album), query) ||
		strings.Contains(strings.ToLower(t.Genre), query)
}

// sortTracksLocked applies the active sort in place. The sort is stable;
// duplicate keys keep ingestion order, with no secondary tiebreak.
func (l *Library) sortTracksLocked(tracks []*model.Track) {
	asc := l.sortDirection != SortDesc
	field := l.sortField

	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]

		var cmp int
		switch field {
		case SortArtist:
			cmp = strings.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist))
		case SortAlbum:
			cmp = strings.Compare(strings.ToLower(a.Album), strings.ToLower(b.Album))
		case SortGenre:
			cmp = strings.Compare(strings.ToLower(a.Genre), strings.ToLower(b.Genre))
		case SortYear:
			cmp = compareFloat(float64(a.Year), float64(b.Year))
		case SortDuration:
			cmp = compareFloat(a.Duration, b.Duration)
		case SortBitrate:
			cmp = compareFloat(float64(a.Bitrate), float64(b.Bitrate))
		case SortTrackNumber:
			cmp = compareFloat(float64(a.TrackNumber), float64(b.TrackNumber))
		default:
			cmp = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}

		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
