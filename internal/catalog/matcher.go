// Package catalog resolves free-text catalog references, such as the
// category column of a product spreadsheet, to catalog entries.
package catalog

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MatchStatus represents the status of a match operation
type MatchStatus int

const (
	Matched MatchStatus = iota
	Ambiguous
	Unmatched
)

func (s MatchStatus) String() string {
	switch s {
	case Matched:
		return "Matched"
	case Ambiguous:
		return "Ambiguous"
	case Unmatched:
		return "Unmatched"
	default:
		return "Unknown"
	}
}

// Entry is a catalog row that free text can resolve to.
type Entry struct {
	ID       uuid.UUID
	Name     string
	Keywords string // CSV like "soda,cola,soft drinks"
}

// MatchResult contains the result of a matching operation
type MatchResult struct {
	Status     MatchStatus
	Entry      *Entry  // when Matched
	Candidates []Entry // when Ambiguous
}

// Matcher performs name and keyword matching over a fixed set of entries.
type Matcher struct {
	entries  []Entry
	names    []string   // normalized names
	nameToks [][]string // pre-tokenized names
	keywords [][]string // pre-tokenized keywords
}

const (
	nameWeight    = 2
	keywordWeight = 1
)

// New creates a new Matcher with pre-tokenized names and keywords
func New(entries []Entry) *Matcher {
	m := &Matcher{
		entries:  entries,
		names:    make([]string, len(entries)),
		nameToks: make([][]string, len(entries)),
		keywords: make([][]string, len(entries)),
	}

	for i, e := range entries {
		m.names[i] = normalize(e.Name)
		m.nameToks[i] = tokenize(m.names[i])

		if e.Keywords == "" {
			continue
		}
		for _, part := range strings.Split(e.Keywords, ",") {
			m.keywords[i] = append(m.keywords[i], tokenize(normalize(part))...)
		}
	}

	return m
}

// Match resolves text to an entry. A normalized exact name match always
// wins. Otherwise entries are scored by shared tokens, name tokens counting
// double, and the single best scorer is returned.
func (m *Matcher) Match(text string) MatchResult {
	normalized := normalize(text)
	if normalized == "" {
		return MatchResult{Status: Unmatched}
	}

	for i, name := range m.names {
		if name == normalized {
			return MatchResult{Status: Matched, Entry: &m.entries[i]}
		}
	}

	inputTokens := make(map[string]bool)
	for _, tok := range tokenize(normalized) {
		inputTokens[tok] = true
	}

	type scoredEntry struct {
		entry Entry
		score int
	}

	var scored []scoredEntry
	for i, e := range m.entries {
		score := 0
		seen := make(map[string]bool)
		for _, tok := range m.nameToks[i] {
			if inputTokens[tok] && !seen[tok] {
				score += nameWeight
				seen[tok] = true
			}
		}
		for _, tok := range m.keywords[i] {
			if inputTokens[tok] && !seen[tok] {
				score += keywordWeight
				seen[tok] = true
			}
		}
		if score > 0 {
			scored = append(scored, scoredEntry{entry: e, score: score})
		}
	}

	if len(scored) == 0 {
		return MatchResult{Status: Unmatched}
	}

	maxScore := 0
	for _, s := range scored {
		if s.score > maxScore {
			maxScore = s.score
		}
	}

	var top []Entry
	for _, s := range scored {
		if s.score == maxScore {
			top = append(top, s.entry)
		}
	}

	if len(top) == 1 {
		return MatchResult{Status: Matched, Entry: &top[0]}
	}
	return MatchResult{Status: Ambiguous, Candidates: top}
}

// normalize converts a string to lowercase and replaces non-alphanumeric chars with spaces
func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// tokenize splits a string on whitespace
func tokenize(s string) []string {
	return strings.Fields(s)
}
