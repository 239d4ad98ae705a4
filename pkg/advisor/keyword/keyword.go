// Package keyword filters question tokens down to a search vocabulary.
// With POS tags available it keeps nouns and verbs; without tags it
// falls back to a length filter. Output order follows input order and
// duplicates are preserved.
package keyword

import "strings"

// DefaultStopwords returns the built-in stop-word set: articles,
// conjunctions, forms of "to be", and common prepositions.
func DefaultStopwords() []string {
	return []string{
		"the", "a", "an", "and", "or", "but", "is", "are", "was",
		"were", "be", "been", "being", "in", "on", "at", "to", "for",
		"with", "by", "about", "like", "through", "over", "before",
		"between", "after", "since", "without", "under", "within",
	}
}

// Extractor produces relevance-filtered keywords from tokens.
type Extractor struct {
	stops map[string]struct{}
}

// NewExtractor builds an extractor with the given stop words. A nil or
// empty list selects DefaultStopwords.
func NewExtractor(stopwords []string) *Extractor {
	if len(stopwords) == 0 {
		stopwords = DefaultStopwords()
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{stops: stops}
}

// Extract filters tokens into lowercase keywords. When tags is empty
// or not aligned 1:1 with tokens, it degrades to the no-tags branch:
// keep tokens longer than three characters that are not stop words.
// With aligned tags it keeps tokens tagged NN* (nouns) or VB* (verbs).
func (e *Extractor) Extract(tokens, tags []string) []string {
	var keywords []string

	if len(tags) == 0 || len(tags) != len(tokens) {
		for _, tok := range tokens {
			if len(tok) > 3 && !e.isStopword(tok) {
				keywords = append(keywords, strings.ToLower(tok))
			}
		}
		return keywords
	}

	for i, tok := range tokens {
		tag := tags[i]
		if (strings.HasPrefix(tag, "NN") || strings.HasPrefix(tag, "VB")) && !e.isStopword(tok) {
			keywords = append(keywords, strings.ToLower(tok))
		}
	}
	return keywords
}

func (e *Extractor) isStopword(word string) bool {
	_, ok := e.stops[strings.ToLower(word)]
	return ok
}
