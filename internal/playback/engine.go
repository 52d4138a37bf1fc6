// Package playback runs the audio engine: one goroutine that owns the output
// device and the active sink, fed by an ordered command queue.
package playback

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/mailbox"
	"github.com/llehouerou/tunes/internal/player"
)

// ErrUnavailable is returned once the engine can no longer accept commands:
// after Close, or when the audio device could not be opened.
var ErrUnavailable = errors.New("playback engine unavailable")

type commandKind int

const (
	cmdPlay commandKind = iota
	cmdPause
	cmdResume
	cmdStop
	cmdState
)

type stateReply struct {
	snapshot Snapshot
	err      error
}

type command struct {
	kind commandKind

	// cmdPlay
	path     string
	title    string
	artist   string
	duration time.Duration

	// cmdState; buffered so the engine never waits on a caller.
	reply chan stateReply
}

// Engine serializes every playback operation onto one goroutine.
type Engine struct {
	inbox  *mailbox.Mailbox[command]
	open   player.OpenFunc
	decode player.DecodeFunc
	logger *log.Logger
	done   chan struct{}
}

// New starts the engine goroutine. The output is opened from that goroutine.
func New(open player.OpenFunc, decode player.DecodeFunc, logger *log.Logger) *Engine {
	if decode == nil {
		decode = player.Decode
	}
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{
		inbox:  mailbox.New[command](),
		open:   open,
		decode: decode,
		logger: logger,
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Engine) send(cmd command) error {
	if !e.inbox.Send(cmd) {
		return ErrUnavailable
	}
	return nil
}

// Play replaces whatever is playing with the file at path. The result of
// opening and decoding is not reported; query State to observe it.
func (e *Engine) Play(path, title, artist string, duration time.Duration) error {
	return e.send(command{kind: cmdPlay, path: path, title: title, artist: artist, duration: duration})
}

// Pause pauses the current track, if any.
func (e *Engine) Pause() error {
	return e.send(command{kind: cmdPause})
}

// Resume resumes the current track, if any.
func (e *Engine) Resume() error {
	return e.send(command{kind: cmdResume})
}

// Stop stops playback and forgets the current track.
func (e *Engine) Stop() error {
	return e.send(command{kind: cmdStop})
}

// State returns a snapshot taken after every previously sent command has
// been processed.
func (e *Engine) State(ctx context.Context) (Snapshot, error) {
	reply := make(chan stateReply, 1)
	if err := e.send(command{kind: cmdState, reply: reply}); err != nil {
		return Snapshot{}, err
	}

	select {
	case r := <-reply:
		return r.snapshot, r.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-e.done:
		select {
		case r := <-reply:
			return r.snapshot, r.err
		default:
			return Snapshot{}, ErrUnavailable
		}
	}
}

// Close stops accepting commands, lets queued ones finish, then releases the
// audio device.
func (e *Engine) Close() error {
	e.inbox.Close()
	<-e.done
	return nil
}

// Done is closed when the engine goroutine has exited.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) run() {
	// Audio backends may keep thread-local state.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(e.done)

	out, err := e.open()
	if err != nil {
		e.logger.Error(errmsg.Format(errmsg.OpPlaybackOpen, err))
		e.inbox.Close()
		for cmd := range e.inbox.Recv() {
			if cmd.reply != nil {
				cmd.reply <- stateReply{err: ErrUnavailable}
			}
		}
		return
	}

	st := &engineState{out: out, decode: e.decode, logger: e.logger}
	for cmd := range e.inbox.Recv() {
		st.handle(cmd)
	}

	st.stop()
	if err := out.Close(); err != nil {
		e.logger.Warn("closing audio output", "err", err)
	}
}

// engineState is only touched by the engine goroutine.
type engineState struct {
	out    player.Output
	decode player.DecodeFunc
	logger *log.Logger

	sink     player.Sink
	path     string
	title    string
	artist   string
	duration time.Duration
}

func (s *engineState) handle(cmd command) {
	switch cmd.kind {
	case cmdPlay:
		s.play(cmd.path, cmd.title, cmd.artist, cmd.duration)
	case cmdPause:
		if s.sink != nil {
			s.sink.Pause()
		}
	case cmdResume:
		if s.sink != nil {
			s.sink.Resume()
		}
	case cmdStop:
		s.stop()
	case cmdState:
		cmd.reply <- stateReply{snapshot: s.snapshot()}
	}
}

func (s *engineState) play(path, title, artist string, duration time.Duration) {
	s.stop()

	f, err := os.Open(path)
	if err != nil {
		s.logger.Error(errmsg.FormatWith(errmsg.OpFileOpen, path, err))
		return
	}

	stream, format, err := s.decode(f)
	if err != nil {
		f.Close()
		s.logger.Error(errmsg.FormatWith(errmsg.OpFileDecode, path, err))
		return
	}

	sink := s.out.NewSink()
	sink.Append(stream, format)

	s.sink = sink
	s.path = path
	s.title = title
	s.artist = artist
	s.duration = duration
	s.logger.Debug("playing", "path", path)
}

func (s *engineState) stop() {
	if s.sink != nil {
		s.sink.Stop()
		s.sink = nil
	}
	s.path, s.title, s.artist = "", "", ""
	s.duration = 0
}

// snapshot derives the status from the sink. A drained sink reads as
// stopped, but the track fields are kept until the next Play or Stop.
func (s *engineState) snapshot() Snapshot {
	if s.sink == nil || s.sink.Empty() {
		return Snapshot{Status: StatusStopped}
	}

	status := StatusPlaying
	if s.sink.Paused() {
		status = StatusPaused
	}
	return Snapshot{
		Status:             status,
		CurrentTrackPath:   s.path,
		CurrentTrackTitle:  s.title,
		CurrentTrackArtist: s.artist,
		PositionSecs:       s.sink.Position().Seconds(),
		DurationSecs:       uint64(max(s.duration, 0) / time.Second),
	}
}
