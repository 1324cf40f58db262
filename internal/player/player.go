// Package player owns the play queue and its shuffle/repeat state
// machine. It is the only component that talks to the audio transport.
package player

import (
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/model"
)

// RepeatMode cycles off → all → one.
type RepeatMode string

const (
	RepeatOff RepeatMode = "off"
	RepeatAll RepeatMode = "all"
	RepeatOne RepeatMode = "one"
)

// DefaultVolume is the out-of-the-box volume level.
const DefaultVolume = 0.75

// prevRestartThreshold: more than this many seconds into a track,
// "previous" restarts it instead of moving back.
const prevRestartThreshold = 3.0

// Player holds the ordered play sequence, current position, and playback
// modes. All transitions are atomic under the internal mutex; transport
// events arriving on foreign goroutines serialize through it too.
//
// Transports are driven while the lock is held, so Transport methods must
// not call back into the EventSink synchronously.
type Player struct {
	mu        sync.Mutex
	transport Transport

	queue    []*model.Track
	original []*model.Track // pre-shuffle order, kept for shuffle-off restore
	index    int            // -1 when nothing is selected
	current  *model.Track

	playing     bool
	currentTime float64
	duration    float64

	volume float64
	muted  bool

	repeat  RepeatMode
	shuffle bool

	onChange func()
	log      *zap.Logger
}

// New builds a stopped player on the given transport.
func New(transport Transport, log *zap.Logger) *Player {
	if transport == nil {
		transport = NullTransport{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		transport: transport,
		index:     -1,
		volume:    DefaultVolume,
		repeat:    RepeatOff,
		log:       log,
	}
}

// OnChange registers a callback invoked after every state transition.
func (p *Player) OnChange(fn func()) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *Player) notify() {
	p.mu.Lock()
	fn := p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetQueue replaces the play queue. The given tracks become the original
// order; with shuffle active the live queue is a fresh shuffle of them.
// Playback starts iff startIndex selects a track.
func (p *Player) SetQueue(tracks []*model.Track, startIndex int) {
	p.mu.Lock()

	p.original = append([]*model.Track(nil), tracks...)
	if p.shuffle {
		p.queue = shuffled(p.original)
	} else {
		p.queue = append([]*model.Track(nil), tracks...)
	}

	p.index = startIndex
	p.current = nil
	if startIndex >= 0 && startIndex < len(p.queue) {
		p.current = p.queue[startIndex]
	}
	p.currentTime = 0
	p.playing = p.current != nil

	if p.current != nil {
		p.loadCurrentLocked()
	}
	p.mu.Unlock()
	p.notify()
}

// AddToQueue appends a track to both the live queue and the original
// order.
func (p *Player) AddToQueue(track *model.Track) {
	if track == nil {
		return
	}
	p.mu.Lock()
	p.queue = append(p.queue, track)
	p.original = append(p.original, track)
	p.mu.Unlock()
	p.notify()
}

// PlayNext inserts a track right after the current position in the live
// queue only.
func (p *Player) PlayNext(track *model.Track) {
	if track == nil {
		return
	}
	p.mu.Lock()
	at := p.index + 1
	if at > len(p.queue) {
		at = len(p.queue)
	}
	p.queue = append(p.queue[:at], append([]*model.Track{track}, p.queue[at:]...)...)
	p.mu.Unlock()
	p.notify()
}

// Next advances to the next track. With repeat-one the current track
// restarts instead; past the end, repeat-all wraps to the top and any
// other mode stops playback keeping the last track loaded. A no-op on an
// empty queue.
func (p *Player) Next() {
	p.mu.Lock()
	p.nextLocked()
	p.mu.Unlock()
	p.notify()
}

func (p *Player) nextLocked() {
	if len(p.queue) == 0 {
		return
	}

	if p.repeat == RepeatOne {
		p.currentTime = 0
		p.playing = true
		p.transport.Seek(0)
		p.transport.Play()
		return
	}

	next := p.index + 1
	if next >= len(p.queue) {
		if p.repeat == RepeatAll {
			next = 0
		} else {
			p.playing = false
			p.transport.Pause()
			return
		}
	}

	p.index = next
	p.current = p.queue[next]
	p.currentTime = 0
	p.playing = true
	p.loadCurrentLocked()
}

// Previous restarts the current track when more than 3 seconds in;
// otherwise it steps back, wrapping to the last index unconditionally.
// A no-op on an empty queue.
func (p *Player) Previous() {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}

	if p.currentTime > prevRestartThreshold {
		p.currentTime = 0
		p.transport.Seek(0)
		p.mu.Unlock()
		p.notify()
		return
	}

	prev := p.index - 1
	if prev < 0 {
		prev = len(p.queue) - 1
	}

	p.index = prev
	p.current = p.queue[prev]
	p.currentTime = 0
	p.playing = true
	p.loadCurrentLocked()
	p.mu.Unlock()
	p.notify()
}

// loadCurrentLocked hands the current track to the transport and starts
// it. A load failure stops playback but leaves the queue selectable.
func (p *Player) loadCurrentLocked() {
	if p.current == nil {
		return
	}
	p.log.Info("playing track",
		zap.String("artist", p.current.Artist), zap.String("title", p.current.Title))

	if err := p.transport.Load(p.current.FilePath); err != nil {
		p.log.Warn("transport load failed",
			zap.String("path", p.current.FilePath), zap.Error(err))
		p.playing = false
		return
	}
	if p.playing {
		p.transport.Play()
	}
}

// TogglePlayPause flips playback when a track is loaded.
func (p *Player) TogglePlayPause() {
	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return
	}
	p.playing = !p.playing
	if p.playing {
		p.transport.Play()
	} else {
		p.transport.Pause()
	}
	p.mu.Unlock()
	p.notify()
}

// Seek jumps to a position in the current track. A no-op with no track
// loaded.
func (p *Player) Seek(seconds float64) {
	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return
	}
	p.currentTime = seconds
	p.transport.Seek(seconds)
	p.mu.Unlock()
	p.notify()
}

// ToggleShuffle reshuffles the original order when turning shuffle on,
// pinning the currently playing track to index 0 so playback continues
// uninterrupted. Turning it off restores the original order and relocates
// the index to the playing track's original position.
func (p *Player) ToggleShuffle() {
	p.mu.Lock()
	if p.shuffle {
		p.shuffle = false
		p.queue = append([]*model.Track(nil), p.original...)
		p.index = 0
		if p.current != nil {
			for i, t := range p.original {
				if t.ID == p.current.ID {
					p.index = i
					break
				}
			}
		}
	} else {
		p.shuffle = true
		mixed := shuffled(p.original)
		if p.current != nil {
			withoutCurrent := mixed[:0]
			for _, t := range mixed {
				if t.ID != p.current.ID {
					withoutCurrent = append(withoutCurrent, t)
				}
			}
			mixed = append([]*model.Track{p.current}, withoutCurrent...)
		}
		p.queue = mixed
		p.index = 0
	}
	p.mu.Unlock()
	p.notify()
}

// CycleRepeat steps the repeat mode off → all → one → off.
func (p *Player) CycleRepeat() {
	p.mu.Lock()
	switch p.repeat {
	case RepeatOff:
		p.repeat = RepeatAll
	case RepeatAll:
		p.repeat = RepeatOne
	default:
		p.repeat = RepeatOff
	}
	p.mu.Unlock()
	p.notify()
}

// SetRepeat sets the repeat mode directly.
func (p *Player) SetRepeat(mode RepeatMode) {
	p.mu.Lock()
	p.repeat = mode
	p.mu.Unlock()
	p.notify()
}

// SetShuffle forces shuffle into the given state.
func (p *Player) SetShuffle(on bool) {
	p.mu.Lock()
	current := p.shuffle
	p.mu.Unlock()
	if current != on {
		p.ToggleShuffle()
	}
}

// SetVolume clamps to [0, 1] and unmutes.
func (p *Player) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.mu.Lock()
	p.volume = volume
	p.muted = false
	p.transport.SetVolume(volume)
	p.mu.Unlock()
	p.notify()
}

// ToggleMute mutes or unmutes without touching the stored volume, so
// unmuting restores the exact prior level.
func (p *Player) ToggleMute() {
	p.mu.Lock()
	p.muted = !p.muted
	if p.muted {
		p.transport.SetVolume(0)
	} else {
		p.transport.SetVolume(p.volume)
	}
	p.mu.Unlock()
	p.notify()
}

// Clear empties the queue and stops playback.
func (p *Player) Clear() {
	p.mu.Lock()
	p.queue = nil
	p.original = nil
	p.index = -1
	p.current = nil
	p.playing = false
	p.currentTime = 0
	p.duration = 0
	p.transport.Pause()
	p.mu.Unlock()
	p.notify()
}

// --- Transport events (EventSink) ---

// PositionUpdated records the transport's playback position.
func (p *Player) PositionUpdated(seconds float64) {
	p.mu.Lock()
	p.currentTime = seconds
	p.mu.Unlock()
	p.notify()
}

// MetadataLoaded records the real duration and back-fills the track
// record if it had none.
func (p *Player) MetadataLoaded(durationSeconds float64) {
	p.mu.Lock()
	p.duration = durationSeconds
	if p.current != nil && p.current.Duration == 0 {
		p.current.Duration = durationSeconds
	}
	p.mu.Unlock()
	p.notify()
}

// Ended drives the same transition as a manual skip.
func (p *Player) Ended() {
	p.Next()
}

// TransportError stops playback and nothing else; the queue and position
// stay untouched so another track can be selected.
func (p *Player) TransportError(err error) {
	p.log.Warn("transport error, stopping playback", zap.Error(err))
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	p.notify()
}

// --- Getters ---

func (p *Player) Current() *model.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

func (p *Player) Queue() []*model.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*model.Track(nil), p.queue...)
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentTime
}

func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *Player) Repeat() RepeatMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repeat
}

func (p *Player) Shuffle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shuffle
}

// shuffled returns a Fisher-Yates shuffled copy.
func shuffled(tracks []*model.Track) []*model.Track {
	out := append([]*model.Track(nil), tracks...)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
