package app

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/search"
)

// filterText is what a query is matched against for one track.
func filterText(t library.Track) string {
	return strings.Join([]string{t.DisplayTitle(), t.Artist, t.Album}, " ")
}

// indexLibrary replaces the full track list and rebuilds the matcher.
func (m *Model) indexLibrary(idx *library.Index) {
	m.all = nil
	if idx != nil {
		m.all = idx.Tracks
	}
	values := make([]string, len(m.all))
	for i, t := range m.all {
		values[i] = filterText(t)
	}
	m.matcher = search.NewMatcher(values)
	m.applyFilter()
}

// applyFilter recomputes the visible tracks from the query, keeping the
// cursor on the same file when it survives.
func (m *Model) applyFilter() {
	var selected string
	if p := m.cursor.Pos(); p < len(m.tracks) {
		selected = m.tracks[p].Path
	}

	if m.query == "" || m.matcher == nil {
		m.tracks = m.all
	} else {
		matches := m.matcher.Search(m.query)
		m.tracks = make([]library.Track, len(matches))
		for i, match := range matches {
			m.tracks[i] = m.all[match.Index]
		}
	}

	pos := m.indexOf(selected)
	if pos < 0 {
		pos = m.cursor.Pos()
	}
	m.cursor.Jump(pos, len(m.tracks), m.listHeight())
}

// handleFilterKey edits the query while the filter prompt is open. Every key
// except ctrl+c is consumed.
func (m *Model) handleFilterKey(k string) bool {
	switch k {
	case "ctrl+c":
		return false
	case "esc":
		m.filtering = false
		m.query = ""
	case "enter":
		m.filtering = false
	case "backspace":
		if m.query == "" {
			m.filtering = false
			break
		}
		_, size := utf8.DecodeLastRuneInString(m.query)
		m.query = m.query[:len(m.query)-size]
	default:
		r, size := utf8.DecodeRuneInString(k)
		if size != len(k) || !unicode.IsPrint(r) {
			return true
		}
		m.query += k
	}
	m.applyFilter()
	return true
}
