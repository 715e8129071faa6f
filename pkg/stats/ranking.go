package stats

import "fmt"

var (
	_ Ranking = (*Tracker)(nil)
	_ Counter = (*Tracker)(nil)
)

// Ranking is what a ranking dialog needs from the tracker.
type Ranking interface {
	TopN(n int) []TrackStat
	ResetAll()
}

// Counter records plays.
type Counter interface {
	IncrementCount(track string)
}

// RankingDialog is implemented by hosts that display the most played tracks.
type RankingDialog interface {
	// Show renders the entries in order, each formatted as by [FormatEntry].
	Show(entries []TrackStat)

	// Reset asks the user for confirmation and, if given, resets all statistics,
	// notifies the user and dismisses the dialog.
	Reset()

	// PlayObserved is called by the host each time a track transitions into playing,
	// and must record exactly one play for it.
	PlayObserved(track string)
}

// FormatEntry renders a ranked entry as "rank: identifier (count)".
func FormatEntry(rank int, s TrackStat) string {
	return fmt.Sprintf("%d: %s (%d)", rank, s.TrackID, s.PlayCount)
}
