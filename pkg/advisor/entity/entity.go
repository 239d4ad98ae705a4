// Package entity recognizes academic domain entities in question
// tokens using fixed pattern rules plus an optional person-finding
// capability. Recognition is additive: every rule runs, every match is
// kept in discovery order, and duplicates are not removed.
package entity

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/campuscore/advisor/pkg/advisor/lexical"
)

// Type classifies a recognized entity.
type Type string

// Entity types known to the recognizer.
const (
	Course        Type = "course"
	College       Type = "college"
	Teacher       Type = "teacher"
	Department    Type = "department"
	Student       Type = "student"
	Major         Type = "major"
	Minor         Type = "minor"
	Concentration Type = "concentration"
	Section       Type = "section"
)

// Span is one recognized entity occurrence. Start and End are byte
// offsets into the space-joined sentence the recognizer analyzed; a
// negative Start marks a span contributed by the person-finding
// capability, which reports token ranges instead.
type Span struct {
	Type  Type
	Text  string
	Start int
	End   int
}

// Bag maps entity types to their spans in discovery order.
type Bag map[Type][]Span

// Add appends a span under its type.
func (b Bag) Add(s Span) {
	b[s.Type] = append(b[s.Type], s)
}

// Has reports whether at least one span of the type was found.
func (b Bag) Has(t Type) bool {
	return len(b[t]) > 0
}

// First returns the text of the first span of the type, or "".
func (b Bag) First(t Type) string {
	if spans := b[t]; len(spans) > 0 {
		return spans[0].Text
	}
	return ""
}

// Texts returns the span texts of the type in discovery order.
func (b Bag) Texts(t Type) []string {
	spans := b[t]
	if len(spans) == 0 {
		return nil
	}
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text
	}
	return out
}

// PersonFinder is the optional name-finding capability. Implementations
// must not leak state between calls; the lexical pipeline enforces a
// reset after each invocation.
type PersonFinder interface {
	PersonSpans(tokens []string) []lexical.Span
}

// Recognizer finds domain entities in a token sequence.
type Recognizer struct {
	finder PersonFinder
}

// NewRecognizer builds a recognizer. finder may be nil, in which case
// only the pattern rules contribute teacher spans.
func NewRecognizer(finder PersonFinder) *Recognizer {
	return &Recognizer{finder: finder}
}

var (
	courseRe        = regexp.MustCompile(`(?i)\b[a-z]{2,4}[0-9]{3}\b`)
	teacherRe       = regexp.MustCompile(`(?i:\b(dr|professor|prof)\.?[ ])(\p{Lu}[\p{L}'-]*)`)
	departmentRe    = regexp.MustCompile(`department of ([a-z]+)`)
	collegeRe       = regexp.MustCompile(`college of ([a-z]+)`)
	concentrationRe = regexp.MustCompile(`concentration in ([a-z]+)`)
	sectionRe       = regexp.MustCompile(`(?i:\bsection[ ])(\p{Lu}[0-9]{3})\b`)
)

// Find runs both recognition passes over one sentence's tokens and
// merges their output into a fresh Bag.
func (r *Recognizer) Find(tokens []string) Bag {
	bag := Bag{}
	r.findPersons(tokens, bag)
	r.applyRules(tokens, bag)
	return bag
}

// findPersons records every capability-returned name span as a teacher.
func (r *Recognizer) findPersons(tokens []string, bag Bag) {
	if r.finder == nil {
		return
	}
	for _, span := range r.finder.PersonSpans(tokens) {
		if span.Start < 0 || span.End > len(tokens) || span.Start >= span.End {
			continue
		}
		parts := make([]string, 0, span.End-span.Start)
		for _, tok := range tokens[span.Start:span.End] {
			parts = append(parts, strings.TrimSuffix(tok, "'s"))
		}
		bag.Add(Span{Type: Teacher, Text: strings.Join(parts, " "), Start: -1, End: -1})
	}
}

// applyRules runs the fixed pattern heuristics. Each rule writes its
// own entity type, so rule order does not matter.
func (r *Recognizer) applyRules(tokens []string, bag Bag) {
	sentence := strings.Join(tokens, " ")
	lower := strings.ToLower(sentence)

	for _, m := range teacherRe.FindAllStringSubmatchIndex(sentence, -1) {
		text := strings.TrimSuffix(sentence[m[0]:m[1]], "'s")
		bag.Add(Span{Type: Teacher, Text: text, Start: m[0], End: m[1]})
	}

	for _, m := range courseRe.FindAllStringIndex(sentence, -1) {
		bag.Add(Span{Type: Course, Text: strings.ToLower(sentence[m[0]:m[1]]), Start: m[0], End: m[1]})
	}

	phraseRule(lower, departmentRe, Department, bag)
	phraseRule(lower, collegeRe, College, bag)
	phraseRule(lower, concentrationRe, Concentration, bag)

	for _, m := range sectionRe.FindAllStringSubmatchIndex(sentence, -1) {
		bag.Add(Span{Type: Section, Text: sentence[m[2]:m[3]], Start: m[2], End: m[3]})
	}

	if strings.Contains(lower, " major") || strings.Contains(lower, "majoring") {
		capitalRunRule(tokens, "major", Major, bag)
	}
	if strings.Contains(lower, " minor") || strings.Contains(lower, "minoring") {
		capitalRunRule(tokens, "minor", Minor, bag)
	}

	if id := studentID(tokens); id != "" {
		bag.Add(Span{Type: Student, Text: id, Start: -1, End: -1})
	}
}

func phraseRule(lower string, re *regexp.Regexp, t Type, bag Bag) {
	for _, m := range re.FindAllStringSubmatchIndex(lower, -1) {
		bag.Add(Span{Type: t, Text: lower[m[2]:m[3]], Start: m[2], End: m[3]})
	}
}

// capitalRunRule extracts the subject of a major/minor mention from the
// original-case token sequence: a run of capitalized tokens immediately
// before the trigger word ("Computer Science major"), and independently
// a run immediately after an "in" that follows the trigger ("majoring
// in Computer Science"). Both forms may fire.
func capitalRunRule(tokens []string, trigger string, t Type, bag Bag) {
	for i, tok := range tokens {
		if !strings.HasPrefix(strings.ToLower(tok), trigger) {
			continue
		}

		// Backward: capitalized run directly before the trigger.
		start := i
		for start > 0 && isCapitalized(tokens[start-1]) {
			start--
		}
		if start < i {
			bag.Add(Span{Type: t, Text: strings.Join(tokens[start:i], " "), Start: -1, End: -1})
		}

		// Forward: "majoring in Computer Science".
		if i+1 < len(tokens) && strings.ToLower(tokens[i+1]) == "in" {
			end := i + 2
			for end < len(tokens) && isCapitalized(tokens[end]) {
				end++
			}
			if end > i+2 {
				bag.Add(Span{Type: t, Text: strings.Join(tokens[i+2:end], " "), Start: -1, End: -1})
			}
		}
	}
}

func isCapitalized(tok string) bool {
	runes := []rune(tok)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// studentID looks for an ID number near a "student" or "id" cue, then
// for any short bare number.
func studentID(tokens []string) string {
	for i := 0; i < len(tokens)-1; i++ {
		lower := strings.ToLower(tokens[i])
		if (lower == "student" || lower == "id") && isNumber(tokens[i+1]) {
			return tokens[i+1]
		}
	}
	for _, tok := range tokens {
		if isNumber(tok) && len(tok) <= 3 {
			return tok
		}
	}
	return ""
}

func isNumber(s string) bool {
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
