package lexical

import (
	"strings"
	"unicode"
)

// Heuristic is the built-in rule-based provider. It implements all
// four capabilities without any trained model, so the pipeline has a
// working default even when no models are configured. It keeps no
// state between calls.
type Heuristic struct{}

var _ Segmenter = Heuristic{}
var _ Tokenizer = Heuristic{}
var _ Tagger = Heuristic{}
var _ PersonFinder = Heuristic{}

// Sentences splits on terminal punctuation followed by whitespace.
// Honorific abbreviations ("Dr.", "Prof.") do not end a sentence.
func (Heuristic) Sentences(text string) ([]string, error) {
	var sents []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if r == '.' && endsWithAbbreviation(current.String()) {
			continue
		}
		if s := strings.TrimSpace(current.String()); s != "" {
			sents = append(sents, s)
		}
		current.Reset()
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sents = append(sents, s)
	}
	return sents, nil
}

var abbreviations = []string{"dr.", "prof.", "mr.", "mrs.", "ms.", "st.", "no.", "vs."}

func endsWithAbbreviation(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, abbr := range abbreviations {
		if strings.HasSuffix(s, abbr) {
			// Must be a whole word, not e.g. "badr."
			prefix := strings.TrimSuffix(s, abbr)
			if prefix == "" || strings.HasSuffix(prefix, " ") {
				return true
			}
		}
	}
	return false
}

// Tokens splits a sentence into word and punctuation tokens. Trailing
// and leading punctuation become their own tokens; internal
// apostrophes and hyphens stay attached ("Anderson's", "part-time").
// A period after an honorific stays attached ("Dr.").
func (Heuristic) Tokens(sentence string) ([]string, error) {
	var tokens []string
	for _, field := range strings.Fields(sentence) {
		tokens = append(tokens, splitToken(field)...)
	}
	return tokens, nil
}

func splitToken(field string) []string {
	runes := []rune(field)

	// Leading punctuation
	start := 0
	for start < len(runes) && isTokenPunct(runes[start]) {
		start++
	}
	// Trailing punctuation
	end := len(runes)
	for end > start && isTokenPunct(runes[end-1]) {
		end--
	}

	// Keep the period attached to honorific abbreviations.
	if end < len(runes) && runes[end] == '.' && endsWithAbbreviation(string(runes[start:end+1])) {
		end++
	}

	var out []string
	for _, r := range runes[:start] {
		out = append(out, string(r))
	}
	if end > start {
		out = append(out, string(runes[start:end]))
	}
	for _, r := range runes[end:] {
		out = append(out, string(r))
	}
	return out
}

func isTokenPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '(', ')', '"', '[', ']':
		return true
	}
	return false
}

// Tags assigns Penn-style tags by suffix and closed-class lookup.
// Crude, but enough for the NN*/VB* filter in keyword extraction.
func (Heuristic) Tags(tokens []string) ([]string, error) {
	tags := make([]string, len(tokens))
	for i, tok := range tokens {
		tags[i] = guessTag(tok, i)
	}
	return tags, nil
}

var closedClass = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT",
	"these": "DT", "those": "DT",
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP",
	"we": "PRP", "they": "PRP", "me": "PRP", "my": "PRP$", "your": "PRP$",
	"in": "IN", "on": "IN", "at": "IN", "of": "IN", "for": "IN",
	"with": "IN", "by": "IN", "from": "IN", "to": "TO", "about": "IN",
	"and": "CC", "or": "CC", "but": "CC",
	"is": "VBZ", "are": "VBP", "was": "VBD", "were": "VBD", "be": "VB",
	"been": "VBN", "being": "VBG", "am": "VBP",
	"do": "VBP", "does": "VBZ", "did": "VBD", "have": "VBP", "has": "VBZ",
	"can": "MD", "could": "MD", "will": "MD", "would": "MD", "should": "MD",
	"what": "WP", "who": "WP", "when": "WRB", "where": "WRB",
	"why": "WRB", "how": "WRB", "which": "WDT",
	"not": "RB", "very": "RB",
}

func guessTag(tok string, pos int) string {
	lower := strings.ToLower(tok)
	if tag, ok := closedClass[lower]; ok {
		return tag
	}

	runes := []rune(tok)
	if len(runes) == 1 && isTokenPunct(runes[0]) {
		return tok
	}
	if isDigits(tok) {
		return "CD"
	}
	if pos > 0 && unicode.IsUpper(runes[0]) {
		return "NNP"
	}
	switch {
	case strings.HasSuffix(lower, "ing") && len(lower) > 4:
		return "VBG"
	case strings.HasSuffix(lower, "ed") && len(lower) > 3:
		return "VBD"
	case strings.HasSuffix(lower, "ly") && len(lower) > 3:
		return "RB"
	case strings.HasSuffix(lower, "s") && len(lower) > 3:
		return "NNS"
	}
	return "NN"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// PersonSpans finds runs of capitalized tokens following an honorific,
// and capitalized bigrams past the sentence start. Returned spans
// cover the name tokens only, not the honorific.
func (Heuristic) PersonSpans(tokens []string) ([]Span, error) {
	var spans []Span
	for i := 0; i < len(tokens); i++ {
		if isHonorific(tokens[i]) && i+1 < len(tokens) && isCapitalizedWord(tokens[i+1]) {
			end := i + 1
			for end < len(tokens) && isCapitalizedWord(tokens[end]) {
				end++
			}
			spans = append(spans, Span{Start: i + 1, End: end})
			i = end - 1
			continue
		}
		// Capitalized bigram mid-sentence, e.g. "John Smith".
		if i > 0 && i+1 < len(tokens) && isCapitalizedWord(tokens[i]) && isCapitalizedWord(tokens[i+1]) {
			end := i + 1
			for end < len(tokens) && isCapitalizedWord(tokens[end]) {
				end++
			}
			spans = append(spans, Span{Start: i, End: end})
			i = end - 1
		}
	}
	return spans, nil
}

func isHonorific(tok string) bool {
	switch strings.ToLower(strings.TrimSuffix(tok, ".")) {
	case "dr", "professor", "prof", "mr", "mrs", "ms":
		return true
	}
	return false
}

func isCapitalizedWord(tok string) bool {
	runes := []rune(strings.TrimSuffix(tok, "'s"))
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}
