//go:build !((linux && cgo) || windows || darwin)

package transport

import (
	"errors"

	"github.com/danfragoso/deskamp/internal/player"
)

// AudioAvailable indicates whether audio playback is supported in this
// build.
const AudioAvailable = false

// Beep is a stub that satisfies player.Transport on platforms without
// audio support.
type Beep struct {
	player.NullTransport
}

// NewBeep always fails on builds without audio support.
func NewBeep(sink player.EventSink) (*Beep, error) {
	return nil, errors.New("audio playback is not supported in this build")
}

func (b *Beep) SetSink(sink player.EventSink) {}

func (b *Beep) Close() error { return nil }
