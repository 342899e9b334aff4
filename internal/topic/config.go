package topic

// DefaultStopWords are dropped from every keyword set.
var DefaultStopWords = []string{
	"the", "a", "an", "and", "or", "to", "of", "for", "with", "in", "on", "at",
	"is", "are", "be", "this", "that", "it", "from", "by", "about",
	"video", "official", "new", "how", "why",
}

// Config holds the thresholds used by the extractor, clusterer and summarizer.
type Config struct {
	StopWords   []string
	MinTokenLen int // tokens shorter than this are discarded
	MinOverlap  int // shared keywords needed to join a bucket
	LabelWords  int // keywords used to name a new bucket
	ThemeSize   int // keywords kept in a channel theme
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		StopWords:   DefaultStopWords,
		MinTokenLen: 3,
		MinOverlap:  3,
		LabelWords:  3,
		ThemeSize:   5,
	}
}
