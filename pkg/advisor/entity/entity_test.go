package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/advisor/pkg/advisor/lexical"
)

func tokenize(t *testing.T, text string) []string {
	t.Helper()
	tokens, err := lexical.Heuristic{}.Tokens(text)
	require.NoError(t, err)
	return tokens
}

func TestCourseCode(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "I'm taking CS375 this semester"))
	assert.Equal(t, []string{"cs375"}, bag.Texts(Course))
}

func TestMultipleCourseCodes(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "I need to register for CS101 and MATH200 next term"))
	require.Len(t, bag[Course], 2)
	assert.ElementsMatch(t, []string{"cs101", "math200"}, bag.Texts(Course))
}

func TestPossessiveTeacher(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "Dr. Anderson's class is very challenging"))
	require.True(t, bag.Has(Teacher))

	found := false
	for _, span := range bag[Teacher] {
		if strings.EqualFold(span.Text, "Dr. Anderson") {
			found = true
		}
	}
	assert.True(t, found, "expected teacher 'Dr. Anderson', got %v", bag.Texts(Teacher))
}

func TestAdditiveExtraction(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "Does Professor Anderson teach CS375 this semester"))
	assert.True(t, bag.Has(Teacher), "teacher key populated")
	assert.True(t, bag.Has(Course), "course key populated")
	assert.Len(t, bag[Teacher], 1)
	assert.Len(t, bag[Course], 1)
}

func TestPhraseRules(t *testing.T) {
	r := NewRecognizer(nil)

	tests := []struct {
		text string
		typ  Type
		want string
	}{
		{"the department of computing offers many courses", Department, "computing"},
		{"the college of business has three buildings", College, "business"},
		{"the concentration in systems looks interesting", Concentration, "systems"},
	}
	for _, tt := range tests {
		bag := r.Find(tokenize(t, tt.text))
		assert.Equal(t, []string{tt.want}, bag.Texts(tt.typ), "text %q", tt.text)
	}
}

func TestSectionRule(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "is there room in section A101"))
	assert.Equal(t, []string{"A101"}, bag.Texts(Section))
}

func TestMajorBackwardScan(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "requirements for the Computer Science major"))
	assert.Equal(t, []string{"Computer Science"}, bag.Texts(Major))
}

func TestMajorForwardScan(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "she is majoring in Computer Science"))
	assert.Equal(t, []string{"Computer Science"}, bag.Texts(Major))
}

func TestMinorRule(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "he is minoring in Mathematics"))
	assert.Equal(t, []string{"Mathematics"}, bag.Texts(Minor))
	assert.False(t, bag.Has(Major))
}

func TestStudentID(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "what classes is student 80 taking"))
	assert.Equal(t, "80", bag.First(Student))
}

func TestDuplicatesKept(t *testing.T) {
	r := NewRecognizer(nil)

	bag := r.Find(tokenize(t, "compare CS375 with CS375"))
	assert.Equal(t, []string{"cs375", "cs375"}, bag.Texts(Course))
}

type fixedFinder struct {
	spans []lexical.Span
}

func (f fixedFinder) PersonSpans(tokens []string) []lexical.Span {
	return f.spans
}

func TestPersonPassRecordsTeachers(t *testing.T) {
	tokens := tokenize(t, "when does John Smith teach")
	r := NewRecognizer(fixedFinder{spans: []lexical.Span{{Start: 2, End: 4}}})

	bag := r.Find(tokens)
	assert.Contains(t, bag.Texts(Teacher), "John Smith")
}

func TestPersonPassStripsPossessive(t *testing.T) {
	tokens := tokenize(t, "I like Smith's lectures")
	r := NewRecognizer(fixedFinder{spans: []lexical.Span{{Start: 2, End: 3}}})

	bag := r.Find(tokens)
	assert.Contains(t, bag.Texts(Teacher), "Smith")
}
