package stats

import (
	"reflect"
	"testing"
)

type recorder struct {
	plays []string
}

func (r *recorder) IncrementCount(track string) {
	r.plays = append(r.plays, track)
}

type change struct {
	track string
	state PlaybackState
}

func TestPlaybackObserver(t *testing.T) {
	tests := []struct {
		name    string
		changes []change
		want    []string
	}{
		{
			name:    "no playing transitions",
			changes: []change{{"a", StatePaused}, {"a", StateStopped}},
			want:    nil,
		},
		{
			name:    "single transition",
			changes: []change{{"a", StateStopped}, {"a", StatePlaying}},
			want:    []string{"a"},
		},
		{
			name:    "repeated playing notifications count once",
			changes: []change{{"a", StatePlaying}, {"a", StatePlaying}, {"a", StatePlaying}},
			want:    []string{"a"},
		},
		{
			name:    "pause and resume counts again",
			changes: []change{{"a", StatePlaying}, {"a", StatePaused}, {"a", StatePlaying}},
			want:    []string{"a", "a"},
		},
		{
			name:    "switching track while playing",
			changes: []change{{"a", StatePlaying}, {"b", StatePlaying}, {"a", StatePlaying}},
			want:    []string{"a", "b", "a"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := &recorder{}
			observer := NewPlaybackObserver(r)
			for _, c := range test.changes {
				observer.StateChanged(c.track, c.state)
			}

			if !reflect.DeepEqual(r.plays, test.want) {
				t.Fatalf("mismatch\n got: %v\nwant: %v", r.plays, test.want)
			}
		})
	}
}

func TestPlaybackObserver_Tracker(t *testing.T) {
	tracker := newTestTracker(t)
	observer := NewPlaybackObserver(tracker)

	observer.StateChanged("/music/song.flac", StatePlaying)
	observer.StateChanged("/music/song.flac", StatePlaying)
	observer.StateChanged("/music/song.flac", StateStopped)
	observer.StateChanged("/music/song.flac", StatePlaying)

	if count := tracker.GetCount("/music/song.flac"); count != 2 {
		t.Fatalf("expected 2 plays, got %d", count)
	}
}

func TestPlaybackStateString(t *testing.T) {
	tests := map[PlaybackState]string{
		StateStopped:     "stopped",
		StatePaused:      "paused",
		StatePlaying:     "playing",
		PlaybackState(9): "unknown",
	}

	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
