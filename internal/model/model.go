package model

import "time"

// Track is a single audio file known to the library. The id is assigned at
// ingestion and stays stable for the track's lifetime; FilePath is the only
// field guaranteed non-empty. Tag fields are replaced wholesale on re-scan.
type Track struct {
	ID          string  `json:"id"`
	FilePath    string  `json:"filePath"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	Genre       string  `json:"genre,omitempty"`
	Year        int     `json:"year,omitempty"`
	TrackNumber int     `json:"trackNumber,omitempty"`
	DiscNumber  int     `json:"discNumber,omitempty"`
	Bitrate     int     `json:"bitrate,omitempty"`
	SampleRate  int     `json:"sampleRate,omitempty"`
	Format      string  `json:"format,omitempty"`
	Duration    float64 `json:"duration"`          // seconds, 0 until the transport reports it
	Artwork     string  `json:"artwork,omitempty"` // data: URI, resolved lazily
}

// Playlist owns references to library tracks, never copies. Removing a track
// from the library does not cascade here.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    []*Track  `json:"tracks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CloudAccount is opaque passthrough data for the cloud-sync layer. Tokens
// are blanked before the library is persisted.
type CloudAccount struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	RootFolders  []string  `json:"rootFolders"`
}

// FallbackArtist and friends are the values absent tags resolve to.
const (
	FallbackArtist = "Unknown Artist"
	FallbackAlbum  = "Unknown Album"
	FallbackFormat = "AUDIO"
)
