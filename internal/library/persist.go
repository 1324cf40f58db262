package library

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/model"
	"github.com/danfragoso/deskamp/internal/store"
)

// StorageKey is the blob-store namespace for the library snapshot.
const StorageKey = "deskamp-library"

// Snapshot is the persisted shape of the library. Cloud tokens are always
// blanked before write.
type Snapshot struct {
	Tracks        []*model.Track        `json:"tracks"`
	Playlists     []*model.Playlist     `json:"playlists"`
	CloudAccounts []*model.CloudAccount `json:"cloudAccounts"`
	SortField     SortField             `json:"sortField,omitempty"`
	SortDirection SortDirection         `json:"sortDirection,omitempty"`
}

// Save writes the library snapshot to the blob store.
func (l *Library) Save(s store.Store) error {
	l.mu.Lock()
	snap := Snapshot{
		Tracks:    append([]*model.Track(nil), l.tracks...),
		Playlists: append([]*model.Playlist(nil), l.playlists...),
		CloudAccounts: lo.Map(l.accounts, func(a *model.CloudAccount, _ int) *model.CloudAccount {
			clean := *a
			clean.AccessToken = ""
			clean.RefreshToken = ""
			return &clean
		}),
		SortField:     l.sortField,
		SortDirection: l.sortDirection,
	}
	l.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal library: %w", err)
	}
	return s.Put(StorageKey, data)
}

// Load replaces the library contents with a previously saved snapshot.
// A missing snapshot is not an error; the library just stays empty.
func (l *Library) Load(s store.Store) error {
	data, err := s.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal library: %w", err)
	}

	l.mu.Lock()
	l.tracks = nil
	l.byID = make(map[string]*model.Track)
	for _, t := range snap.Tracks {
		if t == nil || t.ID == "" {
			continue
		}
		if _, exists := l.byID[t.ID]; exists {
			continue
		}
		l.byID[t.ID] = t
		l.tracks = append(l.tracks, t)
	}

	// Playlist tracks come back from JSON as copies; re-point them at the
	// library's track records by id so references stay shared.
	for _, pl := range snap.Playlists {
		for i, t := range pl.Tracks {
			if lt, ok := l.byID[t.ID]; ok {
				pl.Tracks[i] = lt
			}
		}
	}
	l.playlists = snap.Playlists
	l.accounts = snap.CloudAccounts
	if snap.SortField != "" {
		l.sortField = snap.SortField
	}
	if snap.SortDirection != "" {
		l.sortDirection = snap.SortDirection
	}
	trackCount := len(l.tracks)
	l.mu.Unlock()

	l.log.Info("library restored", zap.Int("tracks", trackCount), zap.Int("playlists", len(snap.Playlists)))
	l.notify()
	return nil
}
