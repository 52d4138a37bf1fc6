package library

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/logging"
	"github.com/llehouerou/tunes/internal/tags"
)

// fakeReader serves metadata from a map keyed by file name and counts reads.
type fakeReader struct {
	mu    sync.Mutex
	meta  map[string]*tags.Metadata
	fail  map[string]bool
	reads map[string]int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		meta:  make(map[string]*tags.Metadata),
		fail:  make(map[string]bool),
		reads: make(map[string]int),
	}
}

func (r *fakeReader) set(name string, md *tags.Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meta[name] = md
}

func (r *fakeReader) setFailing(name string, fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[name] = fail
}

func (r *fakeReader) readCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads[name]
}

func (r *fakeReader) ReadMetadata(path string) (*tags.Metadata, error) {
	name := filepath.Base(path)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads[name]++
	if r.fail[name] {
		return nil, errors.New("unreadable")
	}
	if md, ok := r.meta[name]; ok {
		cp := *md
		return &cp, nil
	}
	return &tags.Metadata{Duration: 3 * time.Second}, nil
}

// countingStore wraps a Store and counts saves.
type countingStore struct {
	Store
	mu    sync.Mutex
	saves int
}

func (s *countingStore) Save(idx *Index) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Store.Save(idx)
}

func (s *countingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

func quietLogger() *log.Logger {
	return logging.Discard()
}
