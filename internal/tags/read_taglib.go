package tags

import (
	"go.senan.xyz/taglib"
)

// readTaglib reads tags through TagLib. It covers the containers dhowden/tag
// does not (WAV, raw AAC) and the files it fails on.
func readTaglib(path string) (*Metadata, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	track, _ := parseNumberPair(tags.get(taglib.TrackNumber))
	year := parseYear(tags.get(taglib.Date, "YEAR"))

	return &Metadata{
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		Year:        year,
		TrackNumber: track,
	}, nil
}
