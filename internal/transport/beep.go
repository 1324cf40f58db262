//go:build (linux && cgo) || windows || darwin

// Package transport implements the audio transport on gopxl/beep.
package transport

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/danfragoso/deskamp/internal/player"
)

// AudioAvailable indicates whether audio playback is supported in this
// build.
const AudioAvailable = true

// positionInterval is how often the transport reports playback position.
const positionInterval = 500 * time.Millisecond

// Beep is a player.Transport backed by the beep speaker. Event callbacks
// into the sink always run on their own goroutines.
type Beep struct {
	mu   sync.Mutex
	sink player.EventSink

	initialized bool
	sampleRate  beep.SampleRate
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	gain        float64

	stopTick chan struct{}
}

// NewBeep creates the transport. The speaker itself is initialized
// lazily on the first Load.
func NewBeep(sink player.EventSink) (*Beep, error) {
	return &Beep{
		sink:       sink,
		sampleRate: beep.SampleRate(44100),
		gain:       player.DefaultVolume,
	}, nil
}

// SetSink attaches the event sink. Call before the first Load.
func (b *Beep) SetSink(sink player.EventSink) {
	b.mu.Lock()
	b.sink = sink
	b.mu.Unlock()
}

// Load decodes the file and queues it on the speaker, paused. file://
// URIs and plain paths are both accepted.
func (b *Beep) Load(path string) error {
	path = strings.TrimPrefix(path, "file://")

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decodeAudio(filepath.Ext(path), f)
	if err != nil {
		f.Close()
		return err
	}

	if !b.initialized {
		if err := speaker.Init(b.sampleRate, b.sampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return err
		}
		b.initialized = true
	}

	b.streamer = streamer
	b.format = format

	resampled := beep.Resample(4, format.SampleRate, b.sampleRate, streamer)
	b.ctrl = &beep.Ctrl{Streamer: resampled, Paused: true}
	b.volume = &effects.Volume{
		Streamer: b.ctrl,
		Base:     2,
		Volume:   gainToVolume(b.gain),
		Silent:   b.gain == 0,
	}

	sink := b.sink
	speaker.Play(beep.Seq(b.volume, beep.Callback(func() {
		// Run on a fresh goroutine: the sink will want to load the next
		// track, which takes the speaker lock again.
		if sink != nil {
			go sink.Ended()
		}
	})))

	if sink != nil {
		duration := format.SampleRate.D(streamer.Len()).Seconds()
		go sink.MetadataLoaded(duration)
	}

	b.startPositionTickerLocked()
	return nil
}

func (b *Beep) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = false
		speaker.Unlock()
	}
}

func (b *Beep) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = true
		speaker.Unlock()
	}
}

func (b *Beep) Seek(seconds float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	samples := b.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if err := b.streamer.Seek(samples); err != nil && b.sink != nil {
		sink := b.sink
		go sink.TransportError(fmt.Errorf("seek: %w", err))
	}
}

func (b *Beep) SetVolume(volume float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gain = volume
	if b.volume != nil {
		speaker.Lock()
		b.volume.Volume = gainToVolume(volume)
		b.volume.Silent = volume == 0
		speaker.Unlock()
	}
}

// Close releases the current stream and stops position reporting.
func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	return nil
}

// stopLocked tears down the current stream. Must hold b.mu.
func (b *Beep) stopLocked() {
	if b.stopTick != nil {
		close(b.stopTick)
		b.stopTick = nil
	}
	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = true
		speaker.Unlock()
	}
	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	b.ctrl = nil
	b.volume = nil
}

// startPositionTickerLocked begins periodic position reports for the
// current stream. Must hold b.mu.
func (b *Beep) startPositionTickerLocked() {
	stop := make(chan struct{})
	b.stopTick = stop

	go func() {
		ticker := time.NewTicker(positionInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.mu.Lock()
				if b.streamer == nil || b.ctrl == nil {
					b.mu.Unlock()
					continue
				}
				speaker.Lock()
				paused := b.ctrl.Paused
				pos := b.format.SampleRate.D(b.streamer.Position()).Seconds()
				speaker.Unlock()
				sink := b.sink
				b.mu.Unlock()

				if !paused && sink != nil {
					sink.PositionUpdated(pos)
				}
			case <-stop:
				return
			}
		}
	}()
}

// decodeAudio picks a decoder from the file extension.
func decodeAudio(ext string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav", ".aiff":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg", ".opus":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format: %s", ext)
	}
}

// gainToVolume maps a linear [0, 1] gain onto beep's logarithmic volume.
func gainToVolume(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return math.Log2(gain)
}

var _ player.Transport = (*Beep)(nil)
var _ io.Closer = (*Beep)(nil)
