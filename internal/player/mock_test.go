package player

import (
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentStream is an endless silent stream counting Close calls.
type silentStream struct {
	closed int
}

func (s *silentStream) Stream(samples [][2]float64) (int, bool) {
	clear(samples)
	return len(samples), true
}
func (s *silentStream) Err() error     { return nil }
func (s *silentStream) Len() int       { return 0 }
func (s *silentStream) Position() int  { return 0 }
func (s *silentStream) Seek(int) error { return nil }
func (s *silentStream) Close() error {
	s.closed++
	return nil
}

func TestMockSink_Lifecycle(t *testing.T) {
	out := NewMock()
	sink := out.NewSink()
	assert.True(t, sink.Empty(), "new sink is empty")

	stream := &silentStream{}
	sink.Append(stream, beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	assert.False(t, sink.Empty())
	assert.False(t, sink.Paused())

	sink.Pause()
	assert.True(t, sink.Paused())
	sink.Resume()
	assert.False(t, sink.Paused())

	out.LastSink().SetPosition(3 * time.Second)
	assert.Equal(t, 3*time.Second, sink.Position())

	out.LastSink().Drain()
	assert.True(t, sink.Empty())

	sink.Stop()
	assert.Equal(t, 1, stream.closed)
	assert.True(t, out.LastSink().Stopped())
}

func TestMockOutput_Opener(t *testing.T) {
	out := NewMock()

	got, err := out.Opener(false)()
	require.NoError(t, err)
	assert.Same(t, out, got)

	_, err = out.Opener(true)()
	assert.ErrorIs(t, err, ErrMockDevice)

	require.NoError(t, out.Close())
	assert.True(t, out.Closed())
}
