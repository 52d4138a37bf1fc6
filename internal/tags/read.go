package tags

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// ErrNoMetadata is returned when neither tags nor audio properties could be read.
var ErrNoMetadata = errors.New("no readable metadata")

// ReadTags reads tag metadata from a music file.
// Duration is left zero; see ReadDuration.
func ReadTags(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readID3v2(path)
		case ExtFLAC:
			return readFLAC(path)
		case ExtM4A, ExtAAC, ExtOGG, ExtWAV:
			return readTaglib(path)
		}
		return nil, err
	}

	track, _ := m.Track()

	return &Metadata{
		Title:       strings.TrimSpace(m.Title()),
		Artist:      strings.TrimSpace(m.Artist()),
		Album:       strings.TrimSpace(m.Album()),
		Genre:       strings.TrimSpace(m.Genre()),
		Year:        max(m.Year(), 0),
		TrackNumber: max(track, 0),
	}, nil
}

// Read reads tags and duration. Either half may fail on its own: the result
// then carries whatever was found. Only when both fail is an error returned.
func Read(path string) (*Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	md, tagErr := ReadTags(path)
	if md == nil {
		md = &Metadata{}
	}

	duration, durErr := ReadDuration(path)
	if durErr == nil {
		md.Duration = duration
	}

	if durErr != nil && (tagErr != nil || !md.hasTags()) {
		return nil, errors.Join(ErrNoMetadata, tagErr, durErr)
	}
	return md, nil
}
