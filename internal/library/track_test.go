package library

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackID_Stable(t *testing.T) {
	a := TrackID("/music/song.mp3")
	b := TrackID("/music/song.mp3")
	c := TrackID("/music/other.mp3")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
	assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceURL, []byte("file:///music/song.mp3")).String(), a)
}

func TestSortTracks(t *testing.T) {
	tracks := []Track{
		{Filename: "1.mp3", Title: "Gamma"},
		{Filename: "zzz.mp3"},
		{Filename: "2.mp3", Title: "alpha"},
		{Filename: "3.mp3", Title: "Beta"},
	}

	SortTracks(tracks)

	var got []string
	for _, tr := range tracks {
		got = append(got, tr.DisplayTitle())
	}
	assert.Equal(t, []string{"alpha", "Beta", "Gamma", "zzz.mp3"}, got)
}

func TestSortTracks_Stable(t *testing.T) {
	tracks := []Track{
		{Filename: "b.mp3", Title: "Same"},
		{Filename: "a.mp3", Title: "same"},
		{Filename: "c.mp3", Title: "SAME"},
	}

	SortTracks(tracks)

	assert.Equal(t, "b.mp3", tracks[0].Filename)
	assert.Equal(t, "a.mp3", tracks[1].Filename)
	assert.Equal(t, "c.mp3", tracks[2].Filename)
}

func TestTrackJSON(t *testing.T) {
	t.Run("absent fields are omitted", func(t *testing.T) {
		data, err := json.Marshal(Track{ID: "id", Filename: "a.mp3", Path: "/m/a.mp3", DurationSecs: 7})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"id","filename":"a.mp3","path":"/m/a.mp3","duration_secs":7}`, string(data))
	})

	t.Run("null reads as absent", func(t *testing.T) {
		var tr Track
		err := json.Unmarshal([]byte(`{"id":"id","filename":"a.mp3","path":"/m/a.mp3",
			"title":null,"artist":"X","year":null,"track_number":2,"duration_secs":1}`), &tr)
		require.NoError(t, err)
		assert.Empty(t, tr.Title)
		assert.Equal(t, "X", tr.Artist)
		assert.Zero(t, tr.Year)
		assert.Equal(t, 2, tr.TrackNumber)
	})
}

func TestIndexClone(t *testing.T) {
	idx := &Index{Tracks: []Track{{Title: "a"}}}
	cp := idx.Clone()
	cp.Tracks[0].Title = "b"
	assert.Equal(t, "a", idx.Tracks[0].Title)

	var nilIdx *Index
	assert.NotNil(t, nilIdx.Clone().Tracks)
	assert.Equal(t, 0, nilIdx.Len())
}
