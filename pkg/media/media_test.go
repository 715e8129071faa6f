package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Info
	}{
		{
			name: "title artist and album",
			file: "tagged.mp3",
			want: Info{Title: "Song", Artist: "Band", Album: "Album"},
		},
		{
			name: "album artist wins over track artist",
			file: "album_artist.mp3",
			want: Info{Title: "Duet", Artist: "Band", Album: "Album"},
		},
		{
			name: "title falls back to file name",
			file: "untitled.mp3",
			want: Info{Title: "untitled", Artist: "Band", Album: "Album"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Describe(filepath.Join("testdata", test.file))
			if err != nil {
				t.Fatalf("Describe: %v", err)
			}
			if got != test.want {
				t.Fatalf("mismatch\n got: %+v\nwant: %+v", got, test.want)
			}
		})
	}
}

func TestDescribe_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Describe(filepath.Join(dir, "missing.mp3")); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})

	t.Run("no tags", func(t *testing.T) {
		path := filepath.Join(dir, "noise.mp3")
		if err := os.WriteFile(path, []byte("definitely not an audio file"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Describe(path); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{info: Info{Title: "Song"}, want: "Song"},
		{info: Info{Title: "Song", Artist: "Band"}, want: "Band - Song"},
		{info: Info{Title: "Song", Artist: "Band", Album: "Album"}, want: "Band - Song"},
	}

	for _, test := range tests {
		if got := test.info.String(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}
