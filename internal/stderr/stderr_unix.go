//go:build !windows

// Package stderr captures what C audio backends (ALSA, faad2) write straight
// to file descriptor 2, which would otherwise corrupt the TUI, and forwards
// each line to a logger.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 until Stop.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
	once sync.Once
}

// Start redirects fd 2 into a pipe and logs each non-empty line at warn level.
// Call it before the audio device is opened.
func Start(logger *log.Logger) (*Capture, error) {
	if logger == nil {
		logger = log.Default()
	}
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go c.forward(logger)
	return c, nil
}

func (c *Capture) forward(logger *log.Logger) {
	defer close(c.done)
	sc := bufio.NewScanner(c.r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			logger.Warn("stderr", "line", line)
		}
	}
}

// WriteOriginal writes msg to the real stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores fd 2 and waits for captured output to be logged.
func (c *Capture) Stop() {
	c.once.Do(func() {
		_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = unix.Close(c.orig)
		// fd 2 no longer refers to the pipe, so this is the last writer.
		c.w.Close()
		<-c.done
		c.r.Close()
	})
}
