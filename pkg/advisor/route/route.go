// Package route turns an analyzed question into one parameterized
// lookup and a formatted answer. Dispatch is by intent, then by which
// entities were recognized; questions that match no specific branch
// fall through to the generic keyword search.
package route

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campuscore/advisor/pkg/advisor/entity"
	"github.com/campuscore/advisor/pkg/advisor/intent"
	"github.com/campuscore/advisor/pkg/advisor/store"
)

// Descriptor is the immutable analysis result handed to the router.
// Student is the session student's ID, "" when anonymous; an explicit
// student entity in the question takes precedence over it.
type Descriptor struct {
	Text     string
	Intent   intent.Intent
	Entities entity.Bag
	Keywords []string
	Student  string
}

// studentID returns the student the question is about: an ID mentioned
// in the question, else the session student.
func (d Descriptor) studentID() string {
	if id := d.Entities.First(entity.Student); id != "" {
		return id
	}
	return d.Student
}

// Router dispatches descriptors to per-intent handlers.
type Router struct {
	store store.Store
	log   *zap.Logger
}

// NewRouter builds a router over the given store. log may be nil.
func NewRouter(s store.Store, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{store: s, log: log}
}

// Respond routes the descriptor to a handler and returns response
// prose. Lookup failures are logged and surface as the handler's
// "not found" sentence, never as an error.
func (r *Router) Respond(ctx context.Context, d Descriptor) string {
	switch d.Intent {
	case intent.Question, intent.Information:
		return r.handleQuestion(ctx, d)
	case intent.Search:
		return r.handleSearch(ctx, d)
	case intent.Enrollment:
		return r.handleEnrollment(ctx, d)
	case intent.Schedule:
		return r.handleSchedule(ctx, d)
	default:
		return r.handleGeneral(ctx, d)
	}
}

func (r *Router) handleQuestion(ctx context.Context, d Descriptor) string {
	lower := strings.ToLower(d.Text)
	studentID := d.studentID()

	if d.Entities.Has(entity.Course) {
		courseID := d.Entities.First(entity.Course)
		display := strings.ToUpper(courseID)

		switch {
		case strings.Contains(lower, "prerequisite") || strings.Contains(lower, "require"):
			rows := r.lookup(ctx, d,
				"SELECT prerequisites FROM course WHERE id = UPPER(?)", courseID)
			return FormatPrerequisites(display, rows)

		case strings.Contains(lower, "professor") || strings.Contains(lower, "teacher") ||
			strings.Contains(lower, "instructor"):
			// "my professor for CS375" scopes to the student's own section
			if studentID != "" && hasWord(lower, "my") {
				rows, err := r.store.ProfessorForCourse(ctx, studentID, courseID)
				return FormatProfessor(display, r.resolve(d, rows, err))
			}
			rows := r.lookup(ctx, d, `
				SELECT t.firstname || ' ' || t.lastname AS instructor
				FROM section s
				JOIN teacher t ON s.instructor_id = t.id
				WHERE s.course_id = UPPER(?)`, courseID)
			return FormatInstructors(display, rows)

		default:
			rows := r.lookup(ctx, d,
				"SELECT id, title, description, credits FROM course WHERE id = UPPER(?)", courseID)
			return FormatCourseInfo(rows)
		}
	}

	if d.Entities.Has(entity.Teacher) {
		name := stripHonorific(d.Entities.First(entity.Teacher))
		rows := r.lookup(ctx, d, `
			SELECT t.firstname || ' ' || t.lastname AS name,
			       t.title, d.name AS department, t.email
			FROM teacher t
			LEFT JOIN department d ON t.department_id = d.id
			WHERE t.firstname || ' ' || t.lastname LIKE ?`, "%"+name+"%")
		return FormatTeacherInfo(rows)
	}

	if d.Entities.Has(entity.Major) && strings.Contains(lower, "concentration") {
		majorID := d.Entities.First(entity.Major)
		rows, err := r.store.MajorConcentrations(ctx, majorID)
		return FormatConcentrations(strings.ToUpper(majorID), r.resolve(d, rows, err))
	}

	if d.Entities.Has(entity.Department) &&
		(strings.Contains(lower, "teach") || strings.Contains(lower, "professor") ||
			strings.Contains(lower, "faculty")) {
		department := d.Entities.First(entity.Department)
		rows, err := r.store.TeachersInDepartment(ctx, department)
		return FormatFaculty(department, r.resolve(d, rows, err))
	}

	if answer := r.handleStudent(ctx, d, lower, studentID); answer != "" {
		return answer
	}

	return r.handleGeneral(ctx, d)
}

// handleStudent answers questions about the student's own record. It
// fires only for questions that name a student or use first-person
// phrasing, and returns "" when no student branch applies.
func (r *Router) handleStudent(ctx context.Context, d Descriptor, lower, studentID string) string {
	if studentID == "" {
		return ""
	}
	personal := d.Entities.Has(entity.Student) ||
		hasWord(lower, "my") || hasWord(lower, "i")
	if !personal {
		return ""
	}

	switch {
	case strings.Contains(lower, "class") || strings.Contains(lower, "taking"):
		rows, err := r.store.StudentClasses(ctx, studentID)
		return FormatStudentClasses(r.resolve(d, rows, err))

	case strings.Contains(lower, "hour") || strings.Contains(lower, "remaining") ||
		strings.Contains(lower, "graduate"):
		rows, err := r.store.HoursRemaining(ctx, studentID)
		return FormatHoursRemaining(r.resolve(d, rows, err))

	case strings.Contains(lower, "major") && strings.Contains(lower, "department"):
		rows, err := r.store.MajorDepartment(ctx, studentID)
		return FormatMajorDepartment(r.resolve(d, rows, err))

	case strings.Contains(lower, "major"):
		rows, err := r.store.StudentMajors(ctx, studentID)
		return FormatStudentMajors(r.resolve(d, rows, err))
	}
	return ""
}

func (r *Router) handleSearch(ctx context.Context, d Descriptor) string {
	var rows []store.Row

	switch {
	case d.Entities.Has(entity.Course):
		rows = r.lookup(ctx, d,
			"SELECT id, title, description, credits FROM course WHERE id = UPPER(?)",
			d.Entities.First(entity.Course))
	case d.Entities.Has(entity.Major):
		rows = r.lookup(ctx, d,
			"SELECT id, title, hrs, gpa FROM major WHERE title LIKE ?",
			"%"+d.Entities.First(entity.Major)+"%")
	default:
		rows = r.searchKeywords(ctx, d)
	}

	return FormatSearchResults(rows)
}

func (r *Router) handleEnrollment(ctx context.Context, d Descriptor) string {
	if !d.Entities.Has(entity.Course) {
		return "To enroll in courses, you need to access the student portal and select " +
			"'Course Registration'. Registration for the upcoming semester usually opens " +
			"4 weeks before the semester starts."
	}

	courseID := d.Entities.First(entity.Course)
	rows := r.lookup(ctx, d, `
		SELECT section_id, status AS enrollment_status,
		       max_seats - enrolled AS available_seats
		FROM section
		WHERE course_id = UPPER(?)`, courseID)
	return FormatEnrollment(strings.ToUpper(courseID), rows)
}

func (r *Router) handleSchedule(ctx context.Context, d Descriptor) string {
	if !d.Entities.Has(entity.Course) {
		return "The academic calendar and course schedules can be accessed through the " +
			"student portal. If you're looking for a specific course schedule, please " +
			"mention the course ID."
	}

	courseID := d.Entities.First(entity.Course)
	rows := r.lookup(ctx, d, `
		SELECT section_id, days, start_time, end_time, room
		FROM section
		WHERE course_id = UPPER(?)`, courseID)
	return FormatSchedule(strings.ToUpper(courseID), rows)
}

func (r *Router) handleGeneral(ctx context.Context, d Descriptor) string {
	return FormatGeneral(r.searchKeywords(ctx, d))
}

// lookup executes one parameterized query. Failures are logged and
// reported as "no rows" so the user sees a not-found message instead
// of an error.
func (r *Router) lookup(ctx context.Context, d Descriptor, query string, args ...any) []store.Row {
	rows, err := r.store.Execute(ctx, query, args...)
	return r.resolve(d, rows, err)
}

// resolve applies the lookup-failure policy to a typed query result:
// log the error, hand the formatter no rows.
func (r *Router) resolve(d Descriptor, rows []store.Row, err error) []store.Row {
	if err != nil {
		r.log.Error("lookup failed", zap.Error(err), zap.String("intent", string(d.Intent)))
		return nil
	}
	return rows
}

func (r *Router) searchKeywords(ctx context.Context, d Descriptor) []store.Row {
	rows, err := r.store.SearchKeywords(ctx, d.Keywords, 10)
	if err != nil {
		r.log.Error("keyword search failed", zap.Error(err), zap.Strings("keywords", d.Keywords))
		return nil
	}
	return rows
}

// hasWord reports whether lower contains word bounded by spaces or the
// text edges, so "my" does not match inside "economy".
func hasWord(lower, word string) bool {
	return strings.Contains(" "+lower+" ", " "+word+" ")
}

// stripHonorific removes a leading "Dr."/"Prof."/"Professor" so the
// name binds usefully against firstname/lastname columns.
func stripHonorific(name string) string {
	fields := strings.Fields(name)
	if len(fields) > 1 {
		switch strings.ToLower(strings.TrimSuffix(fields[0], ".")) {
		case "dr", "prof", "professor":
			return strings.Join(fields[1:], " ")
		}
	}
	return name
}
