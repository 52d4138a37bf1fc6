package render

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "hello world", "hello world"},
		{"control chars", "a\x00b\x1bc", "abc"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp", "a\u00a0b", "a b"},
		{"invalid utf8", "a\xffb", "ab"},
		{"unicode kept", "Sigur Rós – Hoppípolla", "Sigur Rós – Hoppípolla"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello w…"},
		{"", 10, ""},
		{"日本語のタイトル", 7, "日本語…"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, s := range []string{"", "short", "something much longer than the column", "日本語"} {
		if w := lipgloss.Width(TruncateAndPad(s, 12)); w != 12 {
			t.Errorf("TruncateAndPad(%q, 12) width = %d", s, w)
		}
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if lipgloss.Width(got) != 20 {
		t.Errorf("Row width = %d, want 20", lipgloss.Width(got))
	}
	if got := Row("left", "right", 3); got != "left right" {
		t.Errorf("narrow Row = %q", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{3*time.Minute + 5*time.Second + 900*time.Millisecond, "3:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Duration(tt.d); got != tt.want {
				t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
