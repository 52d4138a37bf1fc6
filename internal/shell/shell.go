// Package shell is a line-oriented front end with one command per transport
// operation.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/playback"
	"github.com/llehouerou/tunes/internal/ui/render"
)

const stateTimeout = 2 * time.Second

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage")

// Service is the command surface the shell drives.
type Service interface {
	MusicDirectory() string
	ScanLibrary(ctx context.Context) (*library.Index, error)
	PlayTrack(path, title, artist string, durationSecs uint64) error
	Pause() error
	Resume() error
	Stop() error
	PlaybackState(ctx context.Context) (playback.Snapshot, error)
}

// LineReader yields input lines. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

type command struct {
	name  string
	args  string
	help  string
	run   func(s *Shell, ctx context.Context, args []string) error
	nargs int
}

var commands []command

// The table refers to (*Shell).help, which reads it, so it is filled in init.
func init() {
	commands = []command{
		{name: "dir", help: "print the music directory", run: (*Shell).dir},
		{name: "scan", help: "reconcile the library and list it", run: (*Shell).scan},
		{name: "list", help: "list the library from the last scan", run: (*Shell).list},
		{name: "play", args: "<n>", help: "play track n of the list", run: (*Shell).play, nargs: 1},
		{name: "pause", help: "pause playback", run: (*Shell).pause},
		{name: "resume", help: "resume playback", run: (*Shell).resume},
		{name: "stop", help: "stop playback", run: (*Shell).stop},
		{name: "state", help: "print the playback state", run: (*Shell).state},
		{name: "next", help: "play the next track of the list", run: (*Shell).next},
		{name: "prev", help: "play the previous track of the list", run: (*Shell).prev},
		{name: "help", help: "show this help", run: (*Shell).help},
		{name: "quit", help: "leave the shell"},
	}
}

// Shell executes commands against a Service.
type Shell struct {
	svc    Service
	out    io.Writer
	logger *log.Logger

	tracks     []library.Track
	lastPlayed int // index into tracks, -1 when none
}

// New creates a shell writing results to out.
func New(svc Service, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Default()
	}
	return &Shell{svc: svc, out: out, logger: logger, lastPlayed: -1}
}

// NewReadline returns a readline instance with command completion and
// history in historyFile ("" disables history).
func NewReadline(historyFile string) (*readline.Instance, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		items = append(items, readline.PcItem(c.name))
	}
	return readline.NewEx(&readline.Config{
		Prompt:          "tunes> ",
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
}

// Run reads and executes lines until quit, EOF or ctx is done. Command
// errors are printed and do not end the loop.
func (s *Shell) Run(ctx context.Context, in LineReader) error {
	defer in.Close()
	for ctx.Err() == nil {
		line, err := in.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		quit, err := s.Exec(ctx, line)
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "exit" || name == "quit" {
		return true, nil
	}

	i := slices.IndexFunc(commands, func(c command) bool { return c.name == name })
	if i < 0 {
		return false, fmt.Errorf("unknown command %q, try help", name)
	}
	c := commands[i]
	if len(args) != c.nargs {
		return false, fmt.Errorf("%w: %s %s", ErrUsage, c.name, c.args)
	}
	s.logger.Debug("shell command", "cmd", name, "args", args)
	return false, c.run(s, ctx, args)
}

func (s *Shell) dir(context.Context, []string) error {
	fmt.Fprintln(s.out, s.svc.MusicDirectory())
	return nil
}

func (s *Shell) scan(ctx context.Context, _ []string) error {
	if err := s.refresh(ctx); err != nil {
		return err
	}
	return s.list(ctx, nil)
}

func (s *Shell) refresh(ctx context.Context) error {
	idx, err := s.svc.ScanLibrary(ctx)
	if err != nil {
		return err
	}
	var playing string
	if s.lastPlayed >= 0 {
		playing = s.tracks[s.lastPlayed].Path
	}
	s.tracks = idx.Clone().Tracks
	s.lastPlayed = slices.IndexFunc(s.tracks, func(t library.Track) bool {
		return t.Path == playing
	})
	return nil
}

func (s *Shell) list(context.Context, []string) error {
	if len(s.tracks) == 0 {
		fmt.Fprintln(s.out, "no tracks")
		return nil
	}
	width := len(strconv.Itoa(len(s.tracks)))
	for i, t := range s.tracks {
		mark := " "
		if i == s.lastPlayed {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %*d  %s  %s  %s\n", mark, width, i+1,
			render.TruncateAndPad(t.DisplayTitle(), 40),
			render.TruncateAndPad(t.Artist, 24),
			render.Duration(time.Duration(t.DurationSecs)*time.Second))
	}
	return nil
}

func (s *Shell) play(ctx context.Context, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: play <n>", ErrUsage)
	}
	if s.tracks == nil {
		if err := s.refresh(ctx); err != nil {
			return err
		}
	}
	return s.playIndex(n - 1)
}

func (s *Shell) playIndex(i int) error {
	if i < 0 || i >= len(s.tracks) {
		return fmt.Errorf("no track %d (library has %d)", i+1, len(s.tracks))
	}
	t := s.tracks[i]
	if err := s.svc.PlayTrack(t.Path, t.DisplayTitle(), t.Artist, t.DurationSecs); err != nil {
		return errmsg.Wrap(errmsg.OpPlaybackStart, t.Path, err)
	}
	s.lastPlayed = i
	fmt.Fprintf(s.out, "playing %d: %s\n", i+1, t.DisplayTitle())
	return nil
}

func (s *Shell) next(context.Context, []string) error {
	return s.playIndex(s.lastPlayed + 1)
}

func (s *Shell) prev(context.Context, []string) error {
	if s.lastPlayed < 0 {
		return s.playIndex(-1)
	}
	return s.playIndex(s.lastPlayed - 1)
}

func (s *Shell) pause(context.Context, []string) error  { return s.svc.Pause() }
func (s *Shell) resume(context.Context, []string) error { return s.svc.Resume() }
func (s *Shell) stop(context.Context, []string) error   { return s.svc.Stop() }

func (s *Shell) state(ctx context.Context, _ []string) error {
	ctx, cancel := context.WithTimeout(ctx, stateTimeout)
	defer cancel()
	snap, err := s.svc.PlaybackState(ctx)
	if err != nil {
		return errmsg.Wrap(errmsg.OpPlaybackState, "", err)
	}
	fmt.Fprintln(s.out, FormatState(snap))
	return nil
}

// FormatState renders a snapshot on one line.
func FormatState(snap playback.Snapshot) string {
	if !snap.Status.IsActive() {
		return snap.Status.String()
	}
	var b strings.Builder
	b.WriteString(snap.Status.String())
	b.WriteString(": ")
	b.WriteString(snap.CurrentTrackTitle)
	if snap.CurrentTrackArtist != "" {
		b.WriteString(" - ")
		b.WriteString(snap.CurrentTrackArtist)
	}
	fmt.Fprintf(&b, " [%s / %s]", render.Duration(snap.Position()), render.Duration(snap.Duration()))
	return b.String()
}

func (s *Shell) help(context.Context, []string) error {
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %-12s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}
	return nil
}
