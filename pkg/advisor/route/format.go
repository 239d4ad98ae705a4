package route

import (
	"fmt"
	"strings"

	"github.com/campuscore/advisor/pkg/advisor/store"
)

// NoInformationMessage is the generic handler's empty-result answer.
// The facade uses it to detect that the keyword fallback found nothing.
const NoInformationMessage = "I don't have information about that. Could you ask something else?"

// FormatCourseInfo renders general course information from the first
// row.
func FormatCourseInfo(rows []store.Row) string {
	if len(rows) == 0 {
		return "I couldn't find information about that course."
	}

	course := rows[0]
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s - %s", course.Text("id"), course.Text("title"))
	if course.Has("description") {
		fmt.Fprintf(&b, "\nDescription: %s", course.Text("description"))
	}
	if course.Has("credits") {
		fmt.Fprintf(&b, "\nCredits: %s", course.Text("credits"))
	}
	return b.String()
}

// FormatPrerequisites renders a course's prerequisite list.
func FormatPrerequisites(courseID string, rows []store.Row) string {
	if len(rows) == 0 || !rows[0].Has("prerequisites") || rows[0].Text("prerequisites") == "" {
		return fmt.Sprintf("Course %s doesn't have any prerequisites.", courseID)
	}
	return fmt.Sprintf("Prerequisites for %s: %s", courseID, rows[0].Text("prerequisites"))
}

// FormatInstructors renders the distinct instructors teaching a
// course, in first-seen order.
func FormatInstructors(courseID string, rows []store.Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("I couldn't find instructor information for %s.", courseID)
	}

	seen := make(map[string]struct{}, len(rows))
	var instructors []string
	for _, row := range rows {
		name := row.Text("instructor")
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		instructors = append(instructors, name)
	}
	return fmt.Sprintf("Course %s is taught by: %s", courseID, strings.Join(instructors, ", "))
}

// FormatTeacherInfo renders the first matching faculty member.
func FormatTeacherInfo(rows []store.Row) string {
	if len(rows) == 0 {
		return "I couldn't find information about that instructor."
	}

	teacher := rows[0]
	var b strings.Builder
	b.WriteString(teacher.Text("name"))
	if teacher.Has("title") {
		fmt.Fprintf(&b, "\nTitle: %s", teacher.Text("title"))
	}
	if teacher.Has("department") {
		fmt.Fprintf(&b, "\nDepartment: %s", teacher.Text("department"))
	}
	if teacher.Has("email") {
		fmt.Fprintf(&b, "\nEmail: %s", teacher.Text("email"))
	}
	return b.String()
}

// FormatProfessor renders the instructor of the student's own section
// of a course.
func FormatProfessor(courseID string, rows []store.Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("I couldn't find your professor for %s.", courseID)
	}
	prof := rows[0]
	return fmt.Sprintf("Your professor for %s is %s %s (%s).",
		courseID, prof.Text("firstname"), prof.Text("lastname"), prof.Text("department"))
}

// FormatStudentClasses renders the student's registered classes.
func FormatStudentClasses(rows []store.Row) string {
	if len(rows) == 0 {
		return "You don't appear to be registered for any classes."
	}

	var b strings.Builder
	b.WriteString("You're registered for:")
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- %s: %s (%s credits) %s in %s",
			row.Text("id"), row.Text("title"), row.Text("credits"),
			row.Text("days"), row.Text("room"))
	}
	return b.String()
}

// FormatStudentMajors renders the student's declared majors.
func FormatStudentMajors(rows []store.Row) string {
	if len(rows) == 0 {
		return "You don't have a declared major on record."
	}

	var b strings.Builder
	b.WriteString("You're majoring in:")
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- %s (%s department)", row.Text("title"), row.Text("department"))
	}
	return b.String()
}

// FormatHoursRemaining renders credit-hour progress, one line per
// declared major.
func FormatHoursRemaining(rows []store.Row) string {
	if len(rows) == 0 {
		return "I couldn't calculate your remaining hours."
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "You've completed %s of %s required hours; %s to go.",
			row.Text("completed"), row.Text("total_required"), row.Text("remaining"))
	}
	return b.String()
}

// FormatMajorDepartment renders the department and college behind the
// student's majors.
func FormatMajorDepartment(rows []store.Row) string {
	if len(rows) == 0 {
		return "I couldn't find department information for your major."
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Your major is offered by the %s department in the %s.",
			row.Text("name"), row.Text("college"))
	}
	return b.String()
}

// FormatConcentrations renders the concentrations a major offers.
func FormatConcentrations(majorID string, rows []store.Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("I couldn't find concentrations for %s.", majorID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Concentrations for %s:", majorID)
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- %s: %s", row.Text("title"), row.Text("reqtext"))
	}
	return b.String()
}

// FormatFaculty renders the teachers of a department.
func FormatFaculty(department string, rows []store.Row) string {
	if len(rows) == 0 {
		return "I couldn't find teachers in that department."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Teachers in the %s department:", department)
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- %s %s", row.Text("firstname"), row.Text("lastname"))
		if row.Text("is_adjunct") == "Yes" {
			b.WriteString(" (adjunct)")
		}
	}
	return b.String()
}

// FormatEnrollment renders per-section enrollment status.
func FormatEnrollment(courseID string, rows []store.Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("I couldn't find enrollment information for %s.", courseID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Enrollment information for %s:", courseID)
	for i, section := range rows {
		fmt.Fprintf(&b, "\nSection %d: ", i+1)
		if strings.EqualFold(section.Text("enrollment_status"), "open") {
			fmt.Fprintf(&b, "Open with %s seats available", section.Text("available_seats"))
		} else {
			b.WriteString("Closed/Full")
		}
	}
	return b.String()
}

// FormatSchedule renders per-section meeting times.
func FormatSchedule(courseID string, rows []store.Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("I couldn't find schedule information for %s.", courseID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for %s:", courseID)
	for _, section := range rows {
		fmt.Fprintf(&b, "\nSection %s: %s %s-%s in %s",
			section.Text("section_id"), section.Text("days"),
			section.Text("start_time"), section.Text("end_time"),
			section.Text("room"))
	}
	return b.String()
}

// FormatSearchResults renders search hits one per line, preferring an
// id/title summary and falling back to the first column.
func FormatSearchResults(rows []store.Row) string {
	if len(rows) == 0 {
		return "No matching records found."
	}

	var b strings.Builder
	b.WriteString("Search results:")
	for _, row := range rows {
		b.WriteString("\n- ")
		switch {
		case row.Has("title") && row.Has("id"):
			fmt.Fprintf(&b, "%s: %s", row.Text("id"), row.Text("title"))
		case row.Has("title"):
			b.WriteString(row.Text("title"))
		default:
			b.WriteString(firstValue(row))
		}
	}
	return b.String()
}

// FormatGeneral renders keyword-search results: a direct answer column
// when present, otherwise a bullet list of first values.
func FormatGeneral(rows []store.Row) string {
	if len(rows) == 0 {
		return NoInformationMessage
	}

	if rows[0].Has("answer") {
		return rows[0].Text("answer")
	}
	if rows[0].Has("content") {
		return rows[0].Text("content")
	}

	var b strings.Builder
	b.WriteString("Here's what I found:")
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- %s", firstValue(row))
	}
	return b.String()
}

// FormatRows is the generic fallback renderer: one bullet per row,
// "column: value" pairs comma-separated in column order, no trailing
// separator.
func FormatRows(rows []store.Row) string {
	if len(rows) == 0 {
		return "No results found."
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		for j, col := range row.Columns {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", col, row.Text(col))
		}
	}
	return b.String()
}

// firstValue returns the value of the row's first column.
func firstValue(row store.Row) string {
	if len(row.Columns) == 0 {
		return ""
	}
	return row.Text(row.Columns[0])
}
