package tags

import (
	"fmt"
	"time"
)

// DefaultTimeout bounds a single file read when the caller does not set one.
const DefaultTimeout = 10 * time.Second

// Reader reads metadata with a per-file time bound, so one pathological file
// cannot stall a whole library scan.
type Reader struct {
	Timeout time.Duration
	read    func(path string) (*Metadata, error)
}

// NewReader returns a Reader backed by Read.
func NewReader(timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reader{Timeout: timeout, read: Read}
}

type readResult struct {
	md  *Metadata
	err error
}

// ReadMetadata reads path, giving up after the reader's timeout. The abandoned
// read finishes in the background and its result is dropped.
func (r *Reader) ReadMetadata(path string) (*Metadata, error) {
	read := r.read
	if read == nil {
		read = Read
	}

	done := make(chan readResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- readResult{err: fmt.Errorf("tag reader panicked: %v", p)}
			}
		}()
		md, err := read(path)
		done <- readResult{md: md, err: err}
	}()

	timer := time.NewTimer(r.Timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.md, res.err
	case <-timer.C:
		return nil, fmt.Errorf("reading %s: timed out after %s", path, r.Timeout)
	}
}
