package topic

import (
	"strings"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

// Document is a unit of text to cluster. Key identifies it in the result
// and must be unique within one Assign call.
type Document struct {
	Key  int64
	Text string
}

// bucket accumulates the vocabulary and members of one candidate topic.
type bucket struct {
	label    string
	keywords *KeywordSet
	members  []int64
}

// Clusterer groups documents by greedy keyword overlap.
type Clusterer struct {
	extractor  *Extractor
	minOverlap int
	labelWords int
}

// NewClusterer builds a clusterer from cfg.
func NewClusterer(cfg Config) *Clusterer {
	return &Clusterer{
		extractor:  NewExtractor(cfg),
		minOverlap: cfg.MinOverlap,
		labelWords: cfg.LabelWords,
	}
}

// Assign returns the label of every document, keyed by Document.Key.
//
// Documents are visited once in the given order. Each joins the first bucket
// (in creation order) sharing at least minOverlap keywords with it, and its
// keywords are merged into that bucket; otherwise it opens a new bucket named
// after its first labelWords keywords. Documents without keywords and
// buckets that end with a single member are labelled model.NoMatch.
func (c *Clusterer) Assign(docs []Document) map[int64]string {
	labels := make(map[int64]string, len(docs))
	var buckets []*bucket

	for _, doc := range docs {
		kw := c.extractor.Extract(doc.Text)
		if kw.Len() == 0 {
			labels[doc.Key] = model.NoMatch
			continue
		}

		var target *bucket
		for _, b := range buckets {
			if b.keywords.Overlap(kw) >= c.minOverlap {
				target = b
				break
			}
		}
		if target != nil {
			target.members = append(target.members, doc.Key)
			target.keywords.Union(kw)
			continue
		}

		buckets = append(buckets, &bucket{
			label:    c.label(kw),
			keywords: NewKeywordSet(kw.Words()...),
			members:  []int64{doc.Key},
		})
	}

	for _, b := range buckets {
		label := b.label
		if len(b.members) < 2 {
			label = model.NoMatch
		}
		for _, key := range b.members {
			labels[key] = label
		}
	}
	return labels
}

func (c *Clusterer) label(kw *KeywordSet) string {
	words := kw.Words()
	if len(words) > c.labelWords {
		words = words[:c.labelWords]
	}
	if l := strings.Join(words, " "); l != "" {
		return l
	}
	return model.NoMatch
}
