package player

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-faad2"

	"github.com/llehouerou/tunes/internal/tags"
)

// adtsStream decodes a raw AAC (ADTS) file. ADTS has no index, so seeking
// reopens the stream and decodes forward.
type adtsStream struct {
	file     io.ReadSeekCloser
	reader   *faad2.ADTSReader
	start    int64 // offset of the first frame header
	channels int
	length   int
	pos      int
	buf      []int16
	err      error
}

// decodeADTS expects rc positioned at the first frame header.
func decodeADTS(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	start, err := rc.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, beep.Format{}, err
	}
	frames, rate, err := tags.ADTSFrames(rc)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("adts: %w", err)
	}

	s := &adtsStream{
		file:   rc,
		start:  start,
		length: int(frames) * tags.ADTSFrameSamples,
	}
	if err := s.open(); err != nil {
		return nil, beep.Format{}, fmt.Errorf("adts: %w", err)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	return s, format, nil
}

func (s *adtsStream) open() error {
	if _, err := s.file.Seek(s.start, io.SeekStart); err != nil {
		return err
	}
	reader, err := faad2.OpenADTS(context.Background(), s.file)
	if err != nil {
		return err
	}
	s.reader = reader
	s.channels = max(int(reader.Channels()), 1)
	s.pos = 0
	return nil
}

func (s *adtsStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil || s.reader == nil {
		return 0, false
	}
	need := len(samples) * s.channels
	if cap(s.buf) < need {
		s.buf = make([]int16, need)
	}
	read, err := s.reader.Read(context.Background(), s.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	n = copy(samples, int16Frames(s.buf[:read], s.channels))
	s.pos += n
	return n, n > 0
}

func (s *adtsStream) Err() error { return s.err }

func (s *adtsStream) Len() int { return s.length }

func (s *adtsStream) Position() int { return s.pos }

func (s *adtsStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	if s.reader != nil {
		s.reader.Close(context.Background())
		s.reader = nil
	}
	s.err = nil
	if err := s.open(); err != nil {
		s.err = err
		return err
	}

	discard := make([][2]float64, 4096)
	for s.pos < p {
		chunk := min(p-s.pos, len(discard))
		if n, ok := s.Stream(discard[:chunk]); !ok || n == 0 {
			break
		}
	}
	return s.err
}

func (s *adtsStream) Close() error {
	if s.reader != nil {
		s.reader.Close(context.Background())
	}
	return s.file.Close()
}
