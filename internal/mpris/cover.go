package mpris

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// coverNames lists album art file names in priority order. Matching ignores
// case.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt returns the album art file next to trackPath, or "" if the
// directory has none.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	best, bestRank := "", len(coverNames)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		rank := slices.Index(coverNames, strings.ToLower(e.Name()))
		if rank >= 0 && rank < bestRank {
			best, bestRank = e.Name(), rank
		}
	}
	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}
