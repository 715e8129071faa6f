package stats

import "testing"

func TestFormatEntry(t *testing.T) {
	got := FormatEntry(3, TrackStat{TrackID: "/music/a.mp3", PlayCount: 12})
	if want := "3: /music/a.mp3 (12)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
