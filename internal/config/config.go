// Package config loads application configuration from a .env file or the
// environment, with working defaults for everything.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	MusicDir string // default library root for scans
	DataDir  string // blob store location (library, playlists, settings)
	LogPath  string
	LogLevel string

	// Artwork cache ceilings. FIFO eviction beyond these.
	EmbeddedArtCacheSize int
	FolderArtCacheSize   int

	WatchEnabled bool // watch MusicDir for new audio files
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or
// defaults. godotenv.Load will not override variables already set.
func Load() *Config {
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		MusicDir: getEnv("DESKAMP_MUSIC_DIR", filepath.Join(home, "Music")),
		DataDir:  getEnv("DESKAMP_DATA_DIR", filepath.Join(home, ".deskamp")),
		LogPath:  getEnv("DESKAMP_LOG_PATH", filepath.Join(home, ".deskamp", "deskamp.log")),
		LogLevel: getEnv("DESKAMP_LOG_LEVEL", "info"),

		EmbeddedArtCacheSize: getEnvInt("DESKAMP_EMBEDDED_ART_CACHE", 500),
		FolderArtCacheSize:   getEnvInt("DESKAMP_FOLDER_ART_CACHE", 200),

		WatchEnabled: getEnvBool("DESKAMP_WATCH", false),
	}
}
