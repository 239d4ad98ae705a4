// Package session holds the per-conversation context: the optional
// student the advisor is talking to and a transcript of exchanges.
package session

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Student is the externally supplied session context. The core reads
// it only to personalize framing text.
type Student struct {
	Name  string
	ID    int
	Major string
	GPA   float64
}

// Greeting returns a one-line personalized greeting.
func (s Student) Greeting() string {
	if s.Name == "" {
		return "Hello! Ask me about courses, teachers, majors, and schedules."
	}
	return fmt.Sprintf("Hello %s! Ask me about courses, teachers, majors, and schedules.", s.Name)
}

// Exchange is one question/answer turn.
type Exchange struct {
	ID       string
	Question string
	Answer   string
	At       time.Time
}

// Transcript records exchanges in order. It is not safe for concurrent
// use; question processing is single-threaded per session.
type Transcript struct {
	entropy   *ulid.MonotonicEntropy
	exchanges []Exchange
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Append records one exchange and returns it with its assigned ID.
func (t *Transcript) Append(question, answer string) Exchange {
	ex := Exchange{
		ID:       ulid.MustNew(ulid.Now(), t.entropy).String(),
		Question: question,
		Answer:   answer,
		At:       time.Now(),
	}
	t.exchanges = append(t.exchanges, ex)
	return ex
}

// Last returns the most recent exchange and whether one exists.
func (t *Transcript) Last() (Exchange, bool) {
	if len(t.exchanges) == 0 {
		return Exchange{}, false
	}
	return t.exchanges[len(t.exchanges)-1], true
}

// All returns the exchanges in order.
func (t *Transcript) All() []Exchange {
	out := make([]Exchange, len(t.exchanges))
	copy(out, t.exchanges)
	return out
}

// Len returns the number of recorded exchanges.
func (t *Transcript) Len() int {
	return len(t.exchanges)
}
