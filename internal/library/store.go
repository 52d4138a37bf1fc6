package library

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/llehouerou/tunes/internal/errmsg"
)

// Store persists the index as a single document.
type Store interface {
	Load() (*Index, error)
	Save(idx *Index) error
}

// JSONStore keeps the index as pretty-printed JSON in the music directory.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store writing dir/library.json.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{path: filepath.Join(dir, IndexFileName)}
}

// Path returns the index file location.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the index. A missing file is an empty index.
func (s *JSONStore) Load() (*Index, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Index{Tracks: []Track{}}, nil
	}
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryLoad, s.path, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryLoad, s.path, err)
	}
	if idx.Tracks == nil {
		idx.Tracks = []Track{}
	}
	return &idx, nil
}

// Save writes the index atomically: the document goes to a temporary file
// next to the index, which is then renamed over it.
func (s *JSONStore) Save(idx *Index) error {
	data, err := encodeIndex(idx)
	if err != nil {
		return errmsg.Wrap(errmsg.OpLibrarySave, s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errmsg.Wrap(errmsg.OpLibrarySave, s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errmsg.Wrap(errmsg.OpLibrarySave, s.path, err)
	}
	return nil
}

// encodeIndex renders the on-disk form: two-space indent, trailing newline.
func encodeIndex(idx *Index) ([]byte, error) {
	out := idx.Clone()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
