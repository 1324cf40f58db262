package cmd

import (
	"fmt"

	"github.com/danfragoso/deskamp/internal/library"
	"github.com/danfragoso/deskamp/internal/logger"
	"github.com/danfragoso/deskamp/internal/store"
)

// openStore opens the blob store under the configured data directory.
func openStore() (*store.FileStore, error) {
	s, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir %s: %w", cfg.DataDir, err)
	}
	return s, nil
}

// openLibrary opens the store and loads the persisted library into it.
func openLibrary() (*library.Library, *store.FileStore, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	lib := library.New(logger.L())
	if err := lib.Load(s); err != nil {
		return nil, nil, fmt.Errorf("load library: %w", err)
	}
	return lib, s, nil
}

// formatDuration renders a duration in seconds as m:ss.
func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
