package player

// Transport is the external audio device the player drives but does not
// implement. Load receives the track's file path; converting it to a
// playable URI (file:// scheme) is the transport's job.
type Transport interface {
	Load(path string) error
	Play()
	Pause()
	Seek(seconds float64)
	SetVolume(volume float64)
}

// EventSink receives the transport's asynchronous notifications. Player
// implements it; transports call it from their own goroutines.
type EventSink interface {
	// PositionUpdated reports the current playback position in seconds.
	PositionUpdated(seconds float64)
	// MetadataLoaded reports the real track duration once known.
	MetadataLoaded(durationSeconds float64)
	// Ended fires when the current track plays to completion.
	Ended()
	// TransportError reports a playback failure. Playback stops; the
	// queue and position stay untouched so the user can retry.
	TransportError(err error)
}

// NullTransport discards everything. Useful where no audio output exists.
type NullTransport struct{}

func (NullTransport) Load(string) error { return nil }
func (NullTransport) Play()             {}
func (NullTransport) Pause()            {}
func (NullTransport) Seek(float64)      {}
func (NullTransport) SetVolume(float64) {}
