// Package media reads audio tags of tracks, to give play statistics a human readable name.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Info is what the audio tags say about a track.
type Info struct {
	Title  string
	Artist string
	Album  string
}

// Describe reads the audio tags of the file at the given path.
// The title falls back to the file name without extension, and the album artist
// takes precedence over the track artist.
func Describe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read tags of %s: %w", path, err)
	}

	info := Info{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}

	if albumArtist := m.AlbumArtist(); albumArtist != "" {
		info.Artist = albumArtist
	}
	if info.Title == "" {
		info.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return info, nil
}

// String returns "Artist - Title", or just the title when the artist is unknown.
func (i Info) String() string {
	if i.Artist == "" {
		return i.Title
	}
	return i.Artist + " - " + i.Title
}
