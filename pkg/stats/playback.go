package stats

import "sync"

// PlaybackState is the state of the host's audio player.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePaused
	StatePlaying
)

func (s PlaybackState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// PlaybackObserver turns player state changes into plays: one play each time
// a track transitions into [StatePlaying].
//
// It is meant for long-lived hosts, like a media player, that get notified of every
// state change. A one-shot command that already knows a play happened can call
// [Counter.IncrementCount] directly.
type PlaybackObserver struct {
	counter Counter

	mu      sync.Mutex
	track   string
	playing bool
}

func NewPlaybackObserver(c Counter) *PlaybackObserver {
	return &PlaybackObserver{counter: c}
}

// StateChanged must be called by the host whenever the player changes state.
// Repeated playing notifications for the same track are ignored until it leaves
// the playing state; a playing notification for another track counts right away.
func (o *PlaybackObserver) StateChanged(track string, state PlaybackState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if state != StatePlaying {
		o.playing = false
		return
	}

	if o.playing && o.track == track {
		return
	}

	o.track = track
	o.playing = true
	o.counter.IncrementCount(track)
}
