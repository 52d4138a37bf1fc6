package tags

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adtsFrame returns an AAC-LC frame header for 44.1 kHz mono followed by payload.
func adtsFrame(payload []byte) []byte {
	n := adtsHeaderLen + len(payload)
	const sfi, ch = 4, 1
	h := []byte{
		0xFF, 0xF1,
		1<<6 | sfi<<2 | (ch>>2)&1,
		byte((ch&3)<<6 | (n>>11)&3),
		byte(n >> 3),
		byte((n&7)<<5 | 0x1F),
		0xFC,
	}
	return append(h, payload...)
}

func adtsStream(frames int) []byte {
	var buf bytes.Buffer
	for range frames {
		buf.Write(adtsFrame(make([]byte, 20)))
	}
	return buf.Bytes()
}

func TestSeekADTS(t *testing.T) {
	r := bytes.NewReader(adtsStream(2))
	ok, err := SeekADTS(r)
	require.NoError(t, err)
	assert.True(t, ok)
	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Zero(t, pos)
}

func TestSeekADTS_AfterID3v2(t *testing.T) {
	id3 := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5, 0, 0, 0, 0, 0}
	r := bytes.NewReader(append(id3, adtsStream(1)...))

	ok, err := SeekADTS(r)
	require.NoError(t, err)
	assert.True(t, ok)
	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(len(id3)), pos)
}

func TestSeekADTS_MP4Rewinds(t *testing.T) {
	r := bytes.NewReader([]byte("\x00\x00\x00\x18ftypM4A \x00\x00\x00\x00"))
	ok, err := SeekADTS(r)
	require.NoError(t, err)
	assert.False(t, ok)
	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Zero(t, pos)
}

func TestADTSFrames(t *testing.T) {
	data := append(adtsStream(10), []byte("TAG trailing junk")...)
	frames, rate, err := ADTSFrames(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(10), frames)
	assert.Equal(t, uint32(44100), rate)
}

func TestADTSFrames_NotADTS(t *testing.T) {
	_, _, err := ADTSFrames(bytes.NewReader([]byte("not audio at all")))
	assert.Error(t, err)
}

func TestReadDuration_ADTS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.aac")
	require.NoError(t, os.WriteFile(path, adtsStream(100), 0o644))

	d, err := ReadDuration(path)
	require.NoError(t, err)

	secs := float64(100*ADTSFrameSamples) / 44100
	want := time.Duration(secs * float64(time.Second))
	assert.InDelta(t, float64(want), float64(d), float64(time.Millisecond))
}
