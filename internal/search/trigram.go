// Package search ranks strings against a typed query by trigram coverage.
package search

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minCoverage is the share of a query word's trigrams a candidate must contain.
const minCoverage = 0.4

// Match is a candidate that passed the query, with its rank.
type Match struct {
	Index int
	Score float64
}

// Matcher holds precomputed trigrams for a fixed list of candidates.
type Matcher struct {
	normalized []string
	trigrams   []map[string]struct{}
}

// NewMatcher indexes values. Match indices refer back into values.
func NewMatcher(values []string) *Matcher {
	m := &Matcher{
		normalized: make([]string, len(values)),
		trigrams:   make([]map[string]struct{}, len(values)),
	}
	for i, v := range values {
		text := Normalize(v)
		m.normalized[i] = text
		m.trigrams[i] = trigrams(text)
	}
	return m
}

// Len returns the number of indexed candidates.
func (m *Matcher) Len() int {
	return len(m.normalized)
}

// Search returns the candidates matching every word of query, best first.
// Ties keep list order. A blank query matches everything in order.
func (m *Matcher) Search(query string) []Match {
	words := strings.Fields(Normalize(query))
	if len(words) == 0 {
		all := make([]Match, len(m.normalized))
		for i := range all {
			all[i] = Match{Index: i}
		}
		return all
	}

	wordTris := make([]map[string]struct{}, len(words))
	for i, w := range words {
		wordTris[i] = trigrams(w)
	}

	var matches []Match
	for i := range m.normalized {
		if score := m.score(i, words, wordTris); score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return matches
}

// score is zero unless every word matches.
func (m *Matcher) score(idx int, words []string, wordTris []map[string]struct{}) float64 {
	text := m.normalized[idx]
	total := 0.0
	for i, word := range words {
		// Too short for trigrams to say anything useful.
		if len([]rune(word)) <= 2 {
			if !strings.Contains(text, word) {
				return 0
			}
			total++
			continue
		}

		sim := coverage(wordTris[i], m.trigrams[idx])
		if sim < minCoverage {
			return 0
		}
		if strings.Contains(text, word) {
			sim += 0.5
		}
		total += sim
	}
	return total / float64(len(words))
}

// Normalize lowercases s and strips combining marks, so "Café" matches "cafe".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// trigrams pads s with two spaces on each side so prefixes and suffixes
// produce their own trigrams.
func trigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}
	padded := []rune("  " + s + "  ")
	tris := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		tri := string(padded[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}
	return tris
}

// coverage is |query ∩ item| / |query|. Unlike Jaccard it does not punish a
// short query against a long title.
func coverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hit := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(query))
}
