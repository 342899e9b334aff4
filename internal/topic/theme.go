package topic

import (
	"sort"
	"strings"
)

// Summarizer derives a channel theme from the keywords of its videos.
type Summarizer struct {
	extractor *Extractor
	size      int
}

// NewSummarizer builds a summarizer keeping cfg.ThemeSize keywords.
func NewSummarizer(cfg Config) *Summarizer {
	return &Summarizer{extractor: NewExtractor(cfg), size: cfg.ThemeSize}
}

// Summarize counts, for every keyword, how many texts contain it and joins the
// most frequent ones with ", ". Ties keep first-seen order. It returns nil when
// no text yields a keyword.
func (s *Summarizer) Summarize(texts []string) *string {
	freq := make(map[string]int)
	var seen []string
	for _, text := range texts {
		for _, w := range s.extractor.Extract(text).Words() {
			if freq[w] == 0 {
				seen = append(seen, w)
			}
			freq[w]++
		}
	}
	if len(seen) == 0 {
		return nil
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return freq[seen[i]] > freq[seen[j]]
	})
	if len(seen) > s.size {
		seen = seen[:s.size]
	}
	theme := strings.Join(seen, ", ")
	return &theme
}
