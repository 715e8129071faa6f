// Package console implements the ranking dialog of the play statistics on a terminal.
package console

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zapstore/playstats/pkg/stats"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var _ stats.RankingDialog = (*Dialog)(nil)

// Tracker is what the dialog needs from a [stats.Tracker].
type Tracker interface {
	stats.Ranking
	stats.Counter
}

// Dialog shows the most played tracks on out, and reads confirmations from in.
type Dialog struct {
	tracker Tracker
	in      *bufio.Reader
	out     io.Writer

	// Format is one of [FormatText], [FormatJSON] or [FormatYAML]. Default is text.
	Format string

	// Describe optionally returns a human readable name for a track, or "" if there is none.
	Describe func(track string) string

	// AssumeYes skips the reset confirmation.
	AssumeYes bool

	open bool
}

func NewDialog(t Tracker, in io.Reader, out io.Writer) *Dialog {
	return &Dialog{
		tracker: t,
		in:      bufio.NewReader(in),
		out:     out,
		Format:  FormatText,
	}
}

// Open reports whether the dialog is showing a ranking.
func (d *Dialog) Open() bool {
	return d.open
}

// ShowTop shows the n most played tracks.
func (d *Dialog) ShowTop(n int) {
	d.Show(d.tracker.TopN(n))
}

// Show renders the entries. With no entries in text format it only tells the user there
// is nothing to show, and the dialog stays closed.
func (d *Dialog) Show(entries []stats.TrackStat) {
	switch d.Format {
	case FormatJSON, FormatYAML:
		if err := d.encode(entries); err != nil {
			fmt.Fprintf(d.out, "failed to encode ranking: %v\n", err)
			return
		}

	default:
		if len(entries) == 0 {
			fmt.Fprintln(d.out, "No statistics data yet!")
			return
		}

		fmt.Fprintf(d.out, "Top %d most-played tracks\n", len(entries))
		for i, e := range entries {
			line := stats.FormatEntry(i+1, e)
			if desc := d.describe(e.TrackID); desc != "" {
				line += "  [" + desc + "]"
			}
			fmt.Fprintln(d.out, line)
		}
	}
	d.open = true
}

type entry struct {
	Rank        int    `json:"rank" yaml:"rank"`
	Track       string `json:"track" yaml:"track"`
	Plays       int    `json:"plays" yaml:"plays"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (d *Dialog) encode(top []stats.TrackStat) error {
	entries := make([]entry, len(top))
	for i, s := range top {
		entries[i] = entry{
			Rank:        i + 1,
			Track:       s.TrackID,
			Plays:       s.PlayCount,
			Description: d.describe(s.TrackID),
		}
	}

	if d.Format == FormatYAML {
		enc := yaml.NewEncoder(d.out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func (d *Dialog) describe(track string) string {
	if d.Describe == nil {
		return ""
	}
	return d.Describe(track)
}

// Reset asks for confirmation, resets all statistics and dismisses the dialog.
// Anything but an explicit yes leaves the statistics untouched.
func (d *Dialog) Reset() {
	if !d.AssumeYes && !d.confirm("Really reset all stats?") {
		fmt.Fprintln(d.out, "Reset cancelled.")
		return
	}

	d.tracker.ResetAll()
	fmt.Fprintln(d.out, "Stats reset!")
	d.open = false
}

func (d *Dialog) confirm(question string) bool {
	fmt.Fprintf(d.out, "%s [y/N] ", question)
	answer, err := d.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(d.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// PlayObserved records one play of the track.
func (d *Dialog) PlayObserved(track string) {
	d.tracker.IncrementCount(track)
}
