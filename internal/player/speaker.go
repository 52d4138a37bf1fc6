package player

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const resampleQuality = 4

// Config describes the output device.
type Config struct {
	SampleRate int
	Buffer     time.Duration
}

// DefaultConfig is CD-quality output with a 100ms buffer.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Buffer: 100 * time.Millisecond}
}

// Speaker is the system audio device, driven by beep's speaker package.
// Only one Speaker may be open per process.
type Speaker struct {
	rate beep.SampleRate
}

// OpenSpeaker initializes the audio device.
func OpenSpeaker(cfg Config) (*Speaker, error) {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = def.Buffer
	}

	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(cfg.Buffer)); err != nil {
		return nil, err
	}
	return &Speaker{rate: rate}, nil
}

// SpeakerOpener returns an OpenFunc opening the speaker with cfg.
func SpeakerOpener(cfg Config) OpenFunc {
	return func() (Output, error) {
		s, err := OpenSpeaker(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// NewSink returns an empty sink playing at the device rate.
func (s *Speaker) NewSink() Sink {
	return &speakerSink{rate: s.rate}
}

// Close silences and releases the device.
func (s *Speaker) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// speakerSink wraps the stream in a beep.Ctrl for pausing. Fields read by
// the speaker goroutine are only touched under speaker.Lock.
type speakerSink struct {
	rate beep.SampleRate

	mu      sync.Mutex
	ctrl    *beep.Ctrl
	stream  beep.StreamSeekCloser
	format  beep.Format
	drained *atomic.Bool
}

func (s *speakerSink) Append(stream beep.StreamSeekCloser, format beep.Format) {
	s.Stop()

	var playing beep.Streamer = stream
	if format.SampleRate != s.rate {
		playing = beep.Resample(resampleQuality, format.SampleRate, s.rate, stream)
	}

	drained := &atomic.Bool{}
	ctrl := &beep.Ctrl{Streamer: playing}

	s.mu.Lock()
	s.ctrl = ctrl
	s.stream = stream
	s.format = format
	s.drained = drained
	s.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		drained.Store(true)
	})))
}

func (s *speakerSink) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *speakerSink) Pause()  { s.setPaused(true) }
func (s *speakerSink) Resume() { s.setPaused(false) }

func (s *speakerSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}

	// A nil streamer ends the sequence; the speaker drops it on its next pass.
	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()

	s.stream.Close()
	s.ctrl = nil
	s.stream = nil
}

func (s *speakerSink) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl == nil || s.drained.Load()
}

func (s *speakerSink) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.ctrl.Paused
}

func (s *speakerSink) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.format.SampleRate.D(s.stream.Position())
}
