package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the default ALAC frame length in samples.
const alacFrameSize = 4096

// codecFrames turns one container sample into stereo frames.
type codecFrames interface {
	decode(sample []byte) ([][2]float64, error)
	close()
}

type aacFrames struct {
	dec      *faad2.Decoder
	channels int
}

func newAACFrames(c *m4a.Reader) (*aacFrames, error) {
	ctx := context.Background()
	dec, err := faad2.NewDecoder(ctx)
	if err != nil {
		return nil, err
	}
	if err := dec.Init(ctx, c.CodecConfig()); err != nil {
		dec.Close(ctx)
		return nil, err
	}
	return &aacFrames{dec: dec, channels: int(c.Channels())}, nil
}

func (a *aacFrames) decode(sample []byte) ([][2]float64, error) {
	pcm, err := a.dec.Decode(context.Background(), sample)
	if err != nil {
		return nil, err
	}
	return int16Frames(pcm, a.channels), nil
}

func (a *aacFrames) close() { a.dec.Close(context.Background()) }

type alacFrames struct {
	dec      *alac.Alac
	channels int
	depth    int
}

func newALACFrames(c *m4a.Reader) (*alacFrames, error) {
	dec, err := alac.NewWithConfig(alac.Config{
		SampleRate:  int(c.SampleRate()),
		SampleSize:  int(c.SampleSize()),
		NumChannels: int(c.Channels()),
		FrameSize:   alacFrameSize,
	})
	if err != nil {
		return nil, err
	}
	return &alacFrames{dec: dec, channels: int(c.Channels()), depth: int(c.SampleSize())}, nil
}

func (a *alacFrames) decode(sample []byte) ([][2]float64, error) {
	raw := a.dec.Decode(sample)
	if a.depth == 24 {
		return le24Frames(raw, a.channels), nil
	}
	return le16Frames(raw, a.channels), nil
}

func (a *alacFrames) close() {}

// m4aStream streams an MP4 container one sample at a time.
type m4aStream struct {
	container *m4a.Reader
	frames    codecFrames
	closer    io.Closer
	rate      int
	length    int
	next      int
	err       error

	// decoded frames not yet handed to the speaker
	pending [][2]float64
}

// decodeM4A opens the MP4 container in rc and picks the AAC or ALAC codec
// from its sample description. Output is always stereo.
func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	c, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var frames codecFrames
	precision := 2
	switch c.Codec() {
	case m4a.CodecAAC:
		frames, err = newAACFrames(c)
	case m4a.CodecALAC:
		frames, err = newALACFrames(c)
		if c.SampleSize() == 24 {
			precision = 3
		}
	case m4a.CodecUnknown:
		err = errors.New("unsupported codec in M4A container")
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("m4a: %w", err)
	}

	rate := int(c.SampleRate())
	s := &m4aStream{
		container: c,
		frames:    frames,
		closer:    rc,
		rate:      rate,
		length:    int(c.Duration().Seconds() * float64(rate)),
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   precision,
	}
	return s, format, nil
}

func (s *m4aStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.container.SampleCount() {
			return n, n > 0
		}

		raw, err := s.container.ReadSample(s.next)
		if err == nil {
			s.pending, err = s.frames.decode(raw)
		}
		if err != nil {
			s.err = err
			return n, n > 0
		}
		s.next++
	}
	return n, true
}

func (s *m4aStream) Err() error { return s.err }

func (s *m4aStream) Len() int { return s.length }

func (s *m4aStream) Position() int {
	return int(s.container.SampleTime(s.next).Seconds() * float64(s.rate))
}

func (s *m4aStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	at := time.Duration(float64(p) / float64(s.rate) * float64(time.Second))
	s.next = s.container.SeekToTime(at)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	s.frames.close()
	return s.closer.Close()
}

// int16Frames converts interleaved 16-bit samples. Mono is duplicated.
func int16Frames(pcm []int16, channels int) [][2]float64 {
	channels = max(channels, 1)
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / (1 << 15)
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / (1 << 15)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// le16Frames converts interleaved little-endian 16-bit bytes.
func le16Frames(data []byte, channels int) [][2]float64 {
	channels = max(channels, 1)
	stride := 2 * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		o := i * stride
		l := float64(int16(uint16(data[o])|uint16(data[o+1])<<8)) / (1 << 15)
		r := l
		if channels > 1 {
			r = float64(int16(uint16(data[o+2])|uint16(data[o+3])<<8)) / (1 << 15)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// le24Frames converts interleaved little-endian 24-bit bytes.
func le24Frames(data []byte, channels int) [][2]float64 {
	channels = max(channels, 1)
	stride := 3 * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		o := i * stride
		l := float64(int24(data[o:o+3])) / (1 << 23)
		r := l
		if channels > 1 {
			r = float64(int24(data[o+3:o+6])) / (1 << 23)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func int24(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	return v << 8 >> 8
}
