package tags

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"
)

func TestReader_ReturnsResult(t *testing.T) {
	r := &Reader{
		Timeout: time.Second,
		read: func(string) (*Metadata, error) {
			return &Metadata{Title: "Song"}, nil
		},
	}

	md, err := r.ReadMetadata("/music/song.mp3")
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if md.Title != "Song" {
		t.Errorf("Title = %q, want %q", md.Title, "Song")
	}
}

func TestReader_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	r := &Reader{
		Timeout: time.Second,
		read:    func(string) (*Metadata, error) { return nil, want },
	}

	if _, err := r.ReadMetadata("/music/song.mp3"); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestReader_TimesOut(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		r := &Reader{
			Timeout: 50 * time.Millisecond,
			read: func(string) (*Metadata, error) {
				<-release
				return &Metadata{}, nil
			},
		}

		_, err := r.ReadMetadata("/music/slow.mp3")
		if err == nil {
			t.Error("expected timeout error")
		}
		close(release)
		synctest.Wait()
	})
}

func TestReader_RecoversPanic(t *testing.T) {
	r := &Reader{
		Timeout: time.Second,
		read:    func(string) (*Metadata, error) { panic("bad file") },
	}

	if _, err := r.ReadMetadata("/music/bad.mp3"); err == nil {
		t.Error("expected error from panicking reader")
	}
}

func TestNewReader_DefaultTimeout(t *testing.T) {
	if r := NewReader(0); r.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", r.Timeout, DefaultTimeout)
	}
}
