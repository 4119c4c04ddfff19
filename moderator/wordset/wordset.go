package wordset

import (
	"encoding/json"
	"io"
	"os"
	"strings"
)

// WordSet is a fixed disallowed-term list. Matching is plain substring,
// case-sensitive, with no word-boundary requirement: a disallowed term inside
// a longer token still matches.
type WordSet struct {
	terms []string
}

func New(terms []string) *WordSet {
	return &WordSet{terms: terms}
}

// Default returns the built-in disallowed vocabulary.
func Default() *WordSet {
	return New(defaultTerms)
}

// MatchSubstring returns the first disallowed term that occurs anywhere in
// text, or "" when the text is clean.
func (s *WordSet) MatchSubstring(text string) string {
	if text == "" {
		return ""
	}
	for _, term := range s.terms {
		if strings.Contains(text, term) {
			return term
		}
	}
	return ""
}

func (s *WordSet) Size() int {
	return len(s.terms)
}

// LoadFromFileJSON reads term lists from a JSON file shaped as
// {"name": ["term", ...], ...} and appends the union of all named lists to
// the set.
func (s *WordSet) LoadFromFileJSON(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var lists map[string][]string
	if err := json.Unmarshal(raw, &lists); err != nil {
		return err
	}

	for _, l := range lists {
		s.terms = append(s.terms, l...)
	}
	return nil
}
