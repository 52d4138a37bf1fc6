package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	writeFile(t, coverPath)

	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q", got, coverPath)
	}
}

func TestFindAlbumArt_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"))

	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty", got)
	}
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "front.png"))
	writeFile(t, filepath.Join(dir, "Folder.JPG"))

	want := filepath.Join(dir, "Folder.JPG")
	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != want {
		t.Errorf("FindAlbumArt() = %q, want %q", got, want)
	}
}

func TestFindAlbumArt_MissingDir(t *testing.T) {
	if got := FindAlbumArt("/nonexistent/dir/track.mp3"); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty", got)
	}
}
