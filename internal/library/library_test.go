package library

import (
	"testing"

	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/model"
)

func trk(id, title, artist, album string) *model.Track {
	return &model.Track{ID: id, Title: title, Artist: artist, Album: album}
}

func TestAddTracksDeduplicatesByID(t *testing.T) {
	lib := New(zap.NewNop())

	added := lib.AddTracks([]*model.Track{
		trk("1", "One", "A", "X"),
		trk("2", "Two", "A", "X"),
	})
	if added != 2 {
		t.Fatalf("AddTracks = %d, want 2", added)
	}

	// Re-adding id 1 keeps the original record.
	added = lib.AddTracks([]*model.Track{
		trk("1", "One Remastered", "A", "X"),
		trk("3", "Three", "A", "X"),
	})
	if added != 1 {
		t.Errorf("AddTracks = %d, want 1", added)
	}

	got, ok := lib.TrackByID("1")
	if !ok || got.Title != "One" {
		t.Errorf("TrackByID(1).Title = %q, want the first record to win", got.Title)
	}
	if len(lib.Tracks()) != 3 {
		t.Errorf("library has %d tracks, want 3", len(lib.Tracks()))
	}
}

func TestAddTracksAssignsMissingIDs(t *testing.T) {
	lib := New(zap.NewNop())
	track := trk("", "Untitled", "A", "X")
	lib.AddTracks([]*model.Track{track})
	if track.ID == "" {
		t.Error("track was stored without an id")
	}
	if _, ok := lib.TrackByID(track.ID); !ok {
		t.Error("generated id does not resolve")
	}
}

func TestRemoveTrack(t *testing.T) {
	lib := New(zap.NewNop())
	lib.AddTracks([]*model.Track{trk("1", "One", "A", "X")})

	if !lib.RemoveTrack("1") {
		t.Fatal("RemoveTrack(1) = false")
	}
	if lib.RemoveTrack("1") {
		t.Error("RemoveTrack on a missing id = true")
	}
	if len(lib.Tracks()) != 0 {
		t.Errorf("library still has %d tracks", len(lib.Tracks()))
	}
}

func TestPlaylistLifecycle(t *testing.T) {
	lib := New(zap.NewNop())
	a := trk("1", "One", "A", "X")
	b := trk("2", "Two", "A", "X")
	lib.AddTracks([]*model.Track{a, b})

	pl := lib.CreatePlaylist("Road Trip")
	if pl.ID == "" || pl.Name != "Road Trip" {
		t.Fatalf("CreatePlaylist = %+v", pl)
	}

	if !lib.AddToPlaylist(pl.ID, a) {
		t.Fatal("AddToPlaylist failed")
	}
	if lib.AddToPlaylist(pl.ID, a) {
		t.Error("duplicate track was accepted")
	}
	lib.AddToPlaylist(pl.ID, b)

	got, _ := lib.PlaylistByID(pl.ID)
	if len(got.Tracks) != 2 {
		t.Fatalf("playlist has %d tracks, want 2", len(got.Tracks))
	}

	if !lib.RemoveFromPlaylist(pl.ID, a.ID) {
		t.Fatal("RemoveFromPlaylist failed")
	}
	got, _ = lib.PlaylistByID(pl.ID)
	if len(got.Tracks) != 1 || got.Tracks[0].ID != "2" {
		t.Errorf("playlist tracks after removal = %+v", got.Tracks)
	}

	if !lib.RenamePlaylist(pl.ID, "Long Road Trip") {
		t.Fatal("RenamePlaylist failed")
	}
	got, _ = lib.PlaylistByID(pl.ID)
	if got.Name != "Long Road Trip" {
		t.Errorf("Name = %q after rename", got.Name)
	}

	if !lib.DeletePlaylist(pl.ID) {
		t.Fatal("DeletePlaylist failed")
	}
	if _, ok := lib.PlaylistByID(pl.ID); ok {
		t.Error("playlist still resolvable after delete")
	}
}

func TestRemoveTrackKeepsPlaylistEntries(t *testing.T) {
	// Removing a track from the library does not scrub playlists; the
	// stale reference stays until removed from the playlist itself.
	lib := New(zap.NewNop())
	a := trk("1", "One", "A", "X")
	lib.AddTracks([]*model.Track{a})
	pl := lib.CreatePlaylist("P")
	lib.AddToPlaylist(pl.ID, a)

	lib.RemoveTrack("1")

	got, _ := lib.PlaylistByID(pl.ID)
	if len(got.Tracks) != 1 {
		t.Errorf("playlist has %d tracks, want the stale entry kept", len(got.Tracks))
	}
}

func TestToggleSort(t *testing.T) {
	lib := New(zap.NewNop())

	lib.ToggleSort(SortArtist)
	if f, d := lib.Sort(); f != SortArtist || d != SortAsc {
		t.Errorf("after first toggle: %s %s, want artist asc", f, d)
	}

	lib.ToggleSort(SortArtist)
	if _, d := lib.Sort(); d != SortDesc {
		t.Errorf("same field again: direction %s, want desc", d)
	}

	lib.ToggleSort(SortYear)
	if f, d := lib.Sort(); f != SortYear || d != SortAsc {
		t.Errorf("new field: %s %s, want year asc", f, d)
	}
}

func TestSetViewClearsFacets(t *testing.T) {
	lib := New(zap.NewNop())
	lib.AddTracks([]*model.Track{trk("1", "One", "A", "X"), trk("2", "Two", "B", "Y")})
	lib.SelectArtist("A")

	lib.SetView(ViewSongs)

	if got := lib.FilteredTracks(); len(got) != 2 {
		t.Errorf("filtered tracks = %d after view reset, want 2", len(got))
	}
}

func TestSubscribeNotifiesAndUnsubscribes(t *testing.T) {
	lib := New(zap.NewNop())

	calls := 0
	unsubscribe := lib.Subscribe(func() { calls++ })

	lib.AddTracks([]*model.Track{trk("1", "One", "A", "X")})
	if calls != 1 {
		t.Fatalf("subscriber called %d times, want 1", calls)
	}

	unsubscribe()
	lib.AddTracks([]*model.Track{trk("2", "Two", "A", "X")})
	if calls != 1 {
		t.Errorf("subscriber called %d times after unsubscribe, want 1", calls)
	}
}
