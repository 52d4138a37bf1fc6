package tags

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/llehouerou/go-faad2"
)

// ADTSFrameSamples is the number of PCM samples per channel in one AAC-LC frame.
const ADTSFrameSamples = 1024

const adtsHeaderLen = 7

// SeekADTS reports whether r holds a raw ADTS stream, skipping a leading
// ID3v2 tag. On true r is positioned at the first frame header, otherwise it
// is rewound to the start.
func SeekADTS(r io.ReadSeeker) (bool, error) {
	if err := SkipID3v2(r); err != nil {
		return false, err
	}
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	header := make([]byte, adtsHeaderLen)
	_, rerr := io.ReadFull(r, header)
	_, _, _, perr := faad2.ParseADTSHeader(header)
	if rerr == nil && perr == nil {
		_, err = r.Seek(start, io.SeekStart)
		return true, err
	}
	_, err = r.Seek(0, io.SeekStart)
	return false, err
}

// ADTSFrames walks frame headers from the current position of r and returns
// the frame count and the sample rate of the first frame. It stops at the
// end of the stream or at the first bytes that are not a frame header.
func ADTSFrames(r io.ReadSeeker) (frames int64, sampleRate uint32, err error) {
	header := make([]byte, adtsHeaderLen)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			break
		}
		rate, _, length, err := faad2.ParseADTSHeader(header)
		if err != nil || length < adtsHeaderLen {
			break
		}
		if frames == 0 {
			sampleRate = rate
		}
		if _, err := r.Seek(int64(length)-adtsHeaderLen, io.SeekCurrent); err != nil {
			return frames, sampleRate, err
		}
		frames++
	}
	if frames == 0 || sampleRate == 0 {
		return 0, 0, faad2.ErrInvalidADTS
	}
	return frames, sampleRate, nil
}

// readAACDuration handles both raw ADTS and MP4-wrapped .aac files.
func readAACDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	adts, err := SeekADTS(f)
	if err != nil {
		return 0, err
	}
	if !adts {
		return readM4ADuration(path)
	}

	frames, rate, err := ADTSFrames(f)
	if err != nil {
		return 0, err
	}
	if rate == 0 {
		return 0, errors.New("adts: invalid sample rate")
	}
	samples := float64(frames * ADTSFrameSamples)
	return time.Duration(samples / float64(rate) * float64(time.Second)), nil
}
