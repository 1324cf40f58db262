package player

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danfragoso/deskamp/internal/store"
)

// StorageKey is the blob-store namespace for player settings.
const StorageKey = "deskamp-player"

// Settings is the queue-relevant state that survives restarts: volume and
// the playback modes. Queue contents are deliberately not persisted.
type Settings struct {
	Volume  float64    `json:"volume"`
	Repeat  RepeatMode `json:"repeatMode"`
	Shuffle bool       `json:"shuffleMode"`
}

// SaveSettings writes the player's persistent settings to the blob store.
func (p *Player) SaveSettings(s store.Store) error {
	p.mu.Lock()
	settings := Settings{
		Volume:  p.volume,
		Repeat:  p.repeat,
		Shuffle: p.shuffle,
	}
	p.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal player settings: %w", err)
	}
	return s.Put(StorageKey, data)
}

// LoadSettings restores persisted settings. A missing blob leaves the
// defaults in place.
func (p *Player) LoadSettings(s store.Store) error {
	data, err := s.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("unmarshal player settings: %w", err)
	}

	p.mu.Lock()
	if settings.Volume >= 0 && settings.Volume <= 1 {
		p.volume = settings.Volume
	}
	switch settings.Repeat {
	case RepeatOff, RepeatAll, RepeatOne:
		p.repeat = settings.Repeat
	}
	p.shuffle = settings.Shuffle
	p.transport.SetVolume(p.volume)
	p.mu.Unlock()

	p.notify()
	return nil
}
