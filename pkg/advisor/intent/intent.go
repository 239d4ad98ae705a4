// Package intent assigns one coarse intent label per question using an
// ordered priority list of substring and prefix tests. The list is a
// deliberate priority ranking, not a disjoint partition: the first
// satisfied rule wins, so a text containing both "?" and "schedule" is
// a question.
package intent

import "strings"

// Intent is the single coarse category assigned to a question.
type Intent string

// Intents in priority order.
const (
	Question    Intent = "question"
	Search      Intent = "search"
	Schedule    Intent = "schedule"
	Enrollment  Intent = "enrollment"
	Information Intent = "information"
	Unknown     Intent = "unknown"
)

var questionStarters = []string{"who", "what", "when", "where", "why", "how"}

var searchCues = []string{"find", "search", "look for", "locate", "where is", "where are"}

var scheduleCues = []string{"schedule", "timetable", "when", "time", "semester", "class time"}

var enrollmentCues = []string{"enroll", "register", "sign up", "take class", "join", "prerequisites"}

var informationCues = []string{"information", "details", "describe", "explain", "about"}

// Classify returns the intent of the text. It is total, deterministic,
// and pure.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "?") || startsWithAny(lower, questionStarters) ||
		strings.Contains(lower, "tell me") || strings.Contains(lower, "show me") {
		return Question
	}
	if containsAny(lower, searchCues) {
		return Search
	}
	if containsAny(lower, scheduleCues) {
		return Schedule
	}
	if containsAny(lower, enrollmentCues) {
		return Enrollment
	}
	if containsAny(lower, informationCues) {
		return Information
	}
	return Unknown
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}
