package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
	"go.senan.xyz/taglib"
)

// ReadDuration determines the playing time of an audio file.
// Container headers are preferred over full decoding where the format allows it;
// TagLib's audio properties are the last resort.
func ReadDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supported[ext] {
		return 0, fmt.Errorf("unsupported format: %s", ext)
	}

	var (
		d   time.Duration
		err error
	)
	switch ext {
	case ExtMP3:
		d, err = readMP3Duration(path)
	case ExtFLAC:
		d, err = readFLACDuration(path)
	case ExtM4A:
		d, err = readM4ADuration(path)
	case ExtAAC:
		d, err = readAACDuration(path)
	case ExtWAV:
		d, err = readBeepDuration(path, func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(r)
		})
	case ExtOGG:
		d, err = readBeepDuration(path, vorbis.Decode)
	}
	if err == nil && d > 0 {
		return d, nil
	}
	if err == nil {
		err = errors.New("could not determine duration")
	}

	if props, perr := taglib.ReadProperties(path); perr == nil && props.Length > 0 {
		return props.Length, nil
	}
	return 0, err
}

// readMP3Duration counts samples without decoding the whole stream.
func readMP3Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}

	sampleCount := max(decoder.SampleCount(), 0)
	return time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second)), nil
}

// readFLACDuration extracts the duration from the FLAC STREAMINFO block.
func readFLACDuration(path string) (time.Duration, error) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		// Files with a prepended ID3 tag trip the metadata parser.
		return readFLACWithBeep(path)
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data

		// Sample rate: 20 bits starting at byte 10
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		// Total samples: 36 bits, low nibble of byte 13 then bytes 14-17
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 |
			int64(data[16])<<8 | int64(data[17])

		if sampleRate == 0 {
			return 0, errors.New("flac: invalid sample rate")
		}
		return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second)), nil
	}

	return readFLACWithBeep(path)
}

func readFLACWithBeep(path string) (time.Duration, error) {
	return readBeepDuration(path, func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		if rs, ok := r.(io.ReadSeeker); ok {
			if err := SkipID3v2(rs); err != nil {
				return nil, beep.Format{}, err
			}
		}
		return flac.Decode(r)
	})
}

// readM4ADuration reads the duration from the MP4 container header.
func readM4ADuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	container, err := m4a.Open(f)
	if err != nil {
		return 0, err
	}
	return container.Duration(), nil
}

type beepDecodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// readBeepDuration opens the stream with a beep decoder and converts its length.
func readBeepDuration(path string, decode beepDecodeFunc) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// SkipID3v2 positions r after an ID3v2 tag if one is present at the start,
// or rewinds to the start otherwise.
func SkipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
