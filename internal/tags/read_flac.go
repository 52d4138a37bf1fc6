package tags

import (
	"errors"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

var errNoVorbisComment = errors.New("flac: no vorbis comment block")

// readFLAC reads Vorbis comments straight from the FLAC metadata blocks.
// Used when dhowden/tag rejects the file (e.g. an ID3v2 tag prepended to it).
func readFLAC(path string) (*Metadata, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return readTaglib(path)
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, err
		}
		get := func(field string) string {
			values, err := cmt.Get(field)
			if err != nil || len(values) == 0 {
				return ""
			}
			return values[0]
		}

		track, _ := parseNumberPair(get(flacvorbis.FIELD_TRACKNUMBER))
		year := parseYear(get(flacvorbis.FIELD_DATE))
		if year == 0 {
			year = parseYear(get("YEAR"))
		}

		return &Metadata{
			Title:       get(flacvorbis.FIELD_TITLE),
			Artist:      get(flacvorbis.FIELD_ARTIST),
			Album:       get(flacvorbis.FIELD_ALBUM),
			Genre:       get(flacvorbis.FIELD_GENRE),
			Year:        year,
			TrackNumber: track,
		}, nil
	}

	return nil, errNoVorbisComment
}
