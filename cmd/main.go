// Command playstats records and ranks how many times media tracks have been played.
//
// Usage:
//
//	playstats play <track>...
//	playstats count <track>
//	playstats top [-n 10] [-format text|json|yaml] [-tags]
//	playstats reset [-yes]
//
// The database lives in PLAYSTATS_DIR (default: the user config directory).
// See [config.Load] for the other environment variables.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zapstore/playstats/pkg/config"
	"github.com/zapstore/playstats/pkg/console"
	"github.com/zapstore/playstats/pkg/media"
	"github.com/zapstore/playstats/pkg/stats"
)

const usage = `Usage: playstats <command> [flags] [args]

Commands:
  play <track>...   record one play of each track
  count <track>     print the play count of a track
  top               print the most played tracks
  reset             remove all statistics
  config            print the configuration
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	config, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	cmd, args := args[0], args[1:]
	if cmd == "config" {
		config.Print()
		return 0
	}

	tracker := stats.New(config.Stats, logger)
	defer tracker.Close()

	dialog := console.NewDialog(tracker, os.Stdin, os.Stdout)

	switch cmd {
	case "play":
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "play: at least one track is required")
			return 2
		}
		for _, arg := range args {
			track := canonical(arg)
			dialog.PlayObserved(track)
			fmt.Printf("%s (%d)\n", track, tracker.GetCount(track))
		}

	case "count":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "count: exactly one track is required")
			return 2
		}
		fmt.Println(tracker.GetCount(canonical(args[0])))

	case "top":
		flags := flag.NewFlagSet("top", flag.ContinueOnError)
		n := flags.Int("n", config.Stats.TopN, "number of tracks to show")
		format := flags.String("format", console.FormatText, "output format: text, json or yaml")
		tags := flags.Bool("tags", false, "show artist and title read from the audio tags")
		if err := flags.Parse(args); err != nil {
			return 2
		}

		dialog.Format = *format
		if *tags {
			dialog.Describe = func(track string) string {
				info, err := media.Describe(track)
				if err != nil {
					logger.Debug("no audio tags", "track", track, "err", err)
					return ""
				}
				return info.String()
			}
		}
		dialog.ShowTop(*n)

	case "reset":
		flags := flag.NewFlagSet("reset", flag.ContinueOnError)
		yes := flags.Bool("yes", false, "don't ask for confirmation")
		if err := flags.Parse(args); err != nil {
			return 2
		}

		dialog.AssumeYes = *yes
		dialog.Reset()

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}
	return 0
}

// canonical returns the absolute path of the track when it names an existing file,
// and the argument as it is otherwise.
func canonical(track string) string {
	if _, err := os.Stat(track); err != nil {
		return track
	}
	abs, err := filepath.Abs(track)
	if err != nil {
		return track
	}
	return abs
}
