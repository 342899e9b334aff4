package topic

import "strings"

// KeywordSet is a set of tokens that iterates in insertion order.
type KeywordSet struct {
	order []string
	index map[string]struct{}
}

// NewKeywordSet returns a set holding words in the given order, duplicates collapsed.
func NewKeywordSet(words ...string) *KeywordSet {
	s := &KeywordSet{index: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts w and reports whether it was new.
func (s *KeywordSet) Add(w string) bool {
	if _, ok := s.index[w]; ok {
		return false
	}
	s.index[w] = struct{}{}
	s.order = append(s.order, w)
	return true
}

// Has reports whether w is in the set.
func (s *KeywordSet) Has(w string) bool {
	_, ok := s.index[w]
	return ok
}

// Len returns the number of keywords.
func (s *KeywordSet) Len() int { return len(s.order) }

// Words returns the keywords in insertion order. The slice must not be modified.
func (s *KeywordSet) Words() []string { return s.order }

// Union adds every keyword of other, keeping this set's order for existing entries.
func (s *KeywordSet) Union(other *KeywordSet) {
	for _, w := range other.order {
		s.Add(w)
	}
}

// Overlap counts keywords present in both sets.
func (s *KeywordSet) Overlap(other *KeywordSet) int {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	n := 0
	for _, w := range small.order {
		if large.Has(w) {
			n++
		}
	}
	return n
}

// Extractor turns free text into significant lowercase keywords.
type Extractor struct {
	stop   map[string]struct{}
	minLen int
}

// NewExtractor builds an extractor from cfg's stop-words and minimum token length.
func NewExtractor(cfg Config) *Extractor {
	stop := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{stop: stop, minLen: cfg.MinTokenLen}
}

// Extract lowercases text, splits it on runs of non-alphanumeric characters and
// keeps tokens of at least minLen characters that are not stop-words. Keywords
// are ordered by first occurrence.
func (e *Extractor) Extract(text string) *KeywordSet {
	set := NewKeywordSet()
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isAlnum(r)
	})
	for _, tok := range tokens {
		if len(tok) < e.minLen {
			continue
		}
		if _, ok := e.stop[tok]; ok {
			continue
		}
		set.Add(tok)
	}
	return set
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
