package player

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a 16-bit stereo PCM file with the given number of frames.
func writeWAV(t *testing.T, path string, sampleRate, frames int) {
	t.Helper()
	dataSize := frames * 4

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestDecode_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 22050, 22050)

	f, err := os.Open(path)
	require.NoError(t, err)

	stream, format, err := Decode(f)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, beep.SampleRate(22050), format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	assert.Equal(t, 22050, stream.Len())

	samples := make([][2]float64, 512)
	n, ok := stream.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 512, n)
}

func TestDecode_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, _, err = Decode(f)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestDecode_CorruptFiles(t *testing.T) {
	for _, name := range []string{"bad.mp3", "bad.flac", "bad.wav", "bad.ogg", "bad.m4a", "bad.aac"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte("definitely not audio data"), 0o600))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			_, _, err = Decode(f)
			assert.Error(t, err)
		})
	}
}

// silentAACFrame is one AAC-LC raw data block of mono silence.
var silentAACFrame = []byte{0x00, 0xC8, 0x00, 0x80, 0x23, 0x80}

// writeADTS writes frames of 44.1 kHz mono silence as a raw .aac file.
func writeADTS(t *testing.T, path string, frames int) {
	t.Helper()
	var buf bytes.Buffer
	for range frames {
		n := 7 + len(silentAACFrame)
		buf.Write([]byte{
			0xFF, 0xF1,
			1<<6 | 4<<2,
			byte(1<<6 | (n>>11)&3),
			byte(n >> 3),
			byte((n&7)<<5 | 0x1F),
			0xFC,
		})
		buf.Write(silentAACFrame)
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestDecode_ADTS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.aac")
	writeADTS(t, path, 50)

	f, err := os.Open(path)
	require.NoError(t, err)

	stream, format, err := Decode(f)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, beep.SampleRate(44100), format.SampleRate)
	assert.Equal(t, 50*1024, stream.Len())

	samples := make([][2]float64, 1024)
	total := 0
	for {
		n, ok := stream.Stream(samples)
		for _, s := range samples[:n] {
			assert.InDelta(t, 0, s[0], 1e-3)
			assert.InDelta(t, 0, s[1], 1e-3)
		}
		total += n
		if !ok {
			break
		}
	}
	require.NoError(t, stream.Err())
	assert.Positive(t, total)
	assert.LessOrEqual(t, total, stream.Len())
	assert.Equal(t, total, stream.Position())

	require.NoError(t, stream.Seek(0))
	assert.Zero(t, stream.Position())
	n, ok := stream.Stream(samples)
	assert.True(t, ok)
	assert.Positive(t, n)
}
