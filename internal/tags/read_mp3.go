package tags

import (
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readID3v2 reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readID3v2(path string) (*Metadata, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, _ := parseNumberPair(getID3TextFrame(id3tag, "TRCK"))

	// ID3v2.4 stores the recording date in TDRC, v2.3 in TYER
	year := parseYear(getID3TextFrame(id3tag, "TDRC"))
	if year == 0 {
		year = parseYear(id3tag.Year())
	}

	return &Metadata{
		Title:       strings.TrimSpace(id3tag.Title()),
		Artist:      strings.TrimSpace(id3tag.Artist()),
		Album:       strings.TrimSpace(id3tag.Album()),
		Genre:       strings.TrimSpace(id3tag.Genre()),
		Year:        year,
		TrackNumber: track,
	}, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
