package player

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
)

// ErrMockDevice is returned by a MockOutput configured to fail.
var ErrMockDevice = errors.New("mock audio device unavailable")

// MockOutput is an in-memory Output for tests.
type MockOutput struct {
	mu     sync.Mutex
	sinks  []*MockSink
	closed bool
}

// NewMock returns an empty mock output.
func NewMock() *MockOutput {
	return &MockOutput{}
}

// Opener returns an OpenFunc yielding m, or ErrMockDevice when fail is set.
func (m *MockOutput) Opener(fail bool) OpenFunc {
	return func() (Output, error) {
		if fail {
			return nil, ErrMockDevice
		}
		return m, nil
	}
}

func (m *MockOutput) NewSink() Sink {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &MockSink{}
	m.sinks = append(m.sinks, s)
	return s
}

func (m *MockOutput) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockOutput) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Sinks returns every sink created so far, oldest first.
func (m *MockOutput) Sinks() []*MockSink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockSink(nil), m.sinks...)
}

// LastSink returns the most recent sink, or nil.
func (m *MockOutput) LastSink() *MockSink {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sinks) == 0 {
		return nil
	}
	return m.sinks[len(m.sinks)-1]
}

// MockSink records what was done to it. Call Drain to simulate the end of
// the stream.
type MockSink struct {
	mu       sync.Mutex
	stream   beep.StreamSeekCloser
	paused   bool
	stopped  bool
	drained  bool
	position time.Duration
}

func (s *MockSink) Append(stream beep.StreamSeekCloser, _ beep.Format) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream = stream
	s.drained = false
}

func (s *MockSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

func (s *MockSink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

func (s *MockSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
	s.stopped = true
}

func (s *MockSink) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream == nil || s.drained || s.stopped
}

func (s *MockSink) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *MockSink) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Drain marks the stream as fully played.
func (s *MockSink) Drain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drained = true
}

// SetPosition sets the reported position.
func (s *MockSink) SetPosition(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = d
}

// Stopped reports whether Stop was called.
func (s *MockSink) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// HasStream reports whether a stream is attached.
func (s *MockSink) HasStream() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}
