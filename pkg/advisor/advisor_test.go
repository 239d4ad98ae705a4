package advisor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/advisor/pkg/advisor/entity"
	"github.com/campuscore/advisor/pkg/advisor/intent"
	"github.com/campuscore/advisor/pkg/advisor/session"
	"github.com/campuscore/advisor/pkg/advisor/store/sqlite"
)

func newTestAdvisor(t *testing.T, opts Options) *Advisor {
	t.Helper()
	ctx := context.Background()
	s, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	stmts := []struct {
		sql  string
		args []any
	}{
		{"INSERT INTO department (id, name) VALUES (?, ?)", []any{1, "Computer Science"}},
		{"INSERT INTO course (id, title, description, credits, prerequisites, department_id) VALUES (?, ?, ?, ?, ?, ?)",
			[]any{"CS375", "Database Systems", "SQL and transactions.", 3, "CS200", 1}},
		{"INSERT INTO teacher (id, firstname, lastname, title, email, adjunct, department_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			[]any{1, "Susan", "Anderson", "Professor", "sanderson@campus.edu", 0, 1}},
		{"INSERT INTO section (crn, course_id, section_id, instructor_id, days, start_time, end_time, room, max_seats, enrolled, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			[]any{10001, "CS375", "A101", 1, "MWF", "09:00", "09:50", "SCI 204", 30, 22, "open"}},
		{"INSERT INTO student (id, firstname, lastname) VALUES (?, ?, ?)", []any{80, "Pat", "Quinn"}},
		{"INSERT INTO student_section (student_id, crn, grade) VALUES (?, ?, ?)", []any{80, 10001, nil}},
		{"INSERT INTO knowledge (topic, question, answer) VALUES (?, ?, ?)",
			[]any{"registration", "How do I register?", "Through the student portal."}},
	}
	for _, st := range stmts {
		require.NoError(t, s.Exec(ctx, st.sql, st.args...))
	}

	opts.Store = s
	return New(opts)
}

func TestAskEmptyQuestion(t *testing.T) {
	a := newTestAdvisor(t, Options{})

	for _, text := range []string{"", "   ", "\t\n"} {
		answer, err := a.Ask(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, EmptyQuestionPrompt, answer)
	}
	assert.Equal(t, 0, a.Transcript().Len(), "empty input is not recorded")
}

func TestAskCancelledContext(t *testing.T) {
	a := newTestAdvisor(t, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Ask(ctx, "What are the prerequisites for CS375?")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze(t *testing.T) {
	a := newTestAdvisor(t, Options{})

	d := a.Analyze("What are the prerequisites for CS375?")
	assert.Equal(t, "What are the prerequisites for CS375?", d.Text)
	assert.Equal(t, intent.Question, d.Intent)
	assert.Equal(t, []string{"cs375"}, d.Entities.Texts(entity.Course))
	assert.Contains(t, d.Keywords, "prerequisites")
	assert.Contains(t, d.Keywords, "cs375")
}

func TestAskEndToEnd(t *testing.T) {
	a := newTestAdvisor(t, Options{})

	answer, err := a.Ask(context.Background(), "What are the prerequisites for CS375?")
	require.NoError(t, err)
	assert.Equal(t, "Prerequisites for CS375: CS200", answer)

	last, ok := a.Transcript().Last()
	require.True(t, ok)
	assert.Equal(t, "What are the prerequisites for CS375?", last.Question)
	assert.Equal(t, "Prerequisites for CS375: CS200", last.Answer)
}

type stubPhraser struct {
	out string
	err error
}

func (p stubPhraser) Phrase(ctx context.Context, question, results string) (string, error) {
	return p.out, p.err
}

func TestAskPhrasesAnswer(t *testing.T) {
	a := newTestAdvisor(t, Options{Phraser: stubPhraser{out: "You'll need CS200 first."}})

	answer, err := a.Ask(context.Background(), "What are the prerequisites for CS375?")
	require.NoError(t, err)
	assert.Equal(t, "You'll need CS200 first.", answer)
}

func TestAskKeepsFormattedAnswerWhenPhrasingFails(t *testing.T) {
	a := newTestAdvisor(t, Options{Phraser: stubPhraser{err: errors.New("model offline")}})

	answer, err := a.Ask(context.Background(), "What are the prerequisites for CS375?")
	require.NoError(t, err)
	assert.Equal(t, "Prerequisites for CS375: CS200", answer)
}

type stubFallback struct {
	out string
	err error

	asked string
}

func (f *stubFallback) Answer(ctx context.Context, question string) (string, error) {
	f.asked = question
	return f.out, f.err
}

func TestAskFallsBackToKnowledgeBase(t *testing.T) {
	fb := &stubFallback{out: "The library is open until midnight."}
	a := newTestAdvisor(t, Options{Fallback: fb})

	answer, err := a.Ask(context.Background(), "zzzz qqqq")
	require.NoError(t, err)
	assert.Equal(t, "The library is open until midnight.", answer)
	assert.Equal(t, "zzzz qqqq", fb.asked)
}

func TestAskFallbackFailureKeepsNoInformation(t *testing.T) {
	fb := &stubFallback{err: errors.New("no embeddings")}
	a := newTestAdvisor(t, Options{Fallback: fb})

	answer, err := a.Ask(context.Background(), "zzzz qqqq")
	require.NoError(t, err)
	assert.Contains(t, answer, "I don't have information about that.")
}

func TestAskPersonalQuestionUsesSessionStudent(t *testing.T) {
	a := newTestAdvisor(t, Options{Student: session.Student{Name: "Pat", ID: 80}})

	answer, err := a.Ask(context.Background(), "What classes am I taking?")
	require.NoError(t, err)
	assert.Equal(t, "You're registered for:\n- CS375: Database Systems (3 credits) MWF in SCI 204", answer)
}

func TestAskPersonalQuestionAnonymousSession(t *testing.T) {
	a := newTestAdvisor(t, Options{})

	answer, err := a.Ask(context.Background(), "What classes am I taking?")
	require.NoError(t, err)
	assert.NotContains(t, answer, "registered for",
		"without a session student the question falls through to the keyword search")
}

func TestStudentContext(t *testing.T) {
	a := newTestAdvisor(t, Options{Student: session.Student{Name: "Pat", ID: 80}})

	assert.Equal(t, "Pat", a.Student().Name)
	assert.Equal(t,
		"Hello Pat! Ask me about courses, teachers, majors, and schedules.",
		a.Student().Greeting())
}
