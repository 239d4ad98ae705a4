// Command bootstrap creates the advisor database schema and seeds it
// with a small sample campus so the CLI works out of the box.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/campuscore/advisor/pkg/advisor/store/sqlite"
)

func main() {
	dbPath := flag.String("db", "", "Database path (required)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	db, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	fmt.Println("Database ready:", *dbPath)
}

type statement struct {
	sql  string
	args []any
}

func seed(ctx context.Context, db *sqlite.Store) error {
	stmts := []statement{
		{sql: "INSERT OR IGNORE INTO college (id, name) VALUES (?, ?)", args: []any{1, "College of Science and Engineering"}},
		{sql: "INSERT OR IGNORE INTO college (id, name) VALUES (?, ?)", args: []any{2, "College of Business"}},

		{sql: "INSERT OR IGNORE INTO department (id, name, college_id) VALUES (?, ?, ?)", args: []any{1, "Computer Science", 1}},
		{sql: "INSERT OR IGNORE INTO department (id, name, college_id) VALUES (?, ?, ?)", args: []any{2, "Mathematics", 1}},
		{sql: "INSERT OR IGNORE INTO department (id, name, college_id) VALUES (?, ?, ?)", args: []any{3, "Accounting", 2}},

		{sql: "INSERT OR IGNORE INTO course (id, title, description, credits, prerequisites, department_id) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"CS101", "Introduction to Programming", "Variables, control flow, and functions.", 3, nil, 1}},
		{sql: "INSERT OR IGNORE INTO course (id, title, description, credits, prerequisites, department_id) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"CS200", "Data Structures", "Lists, trees, hash tables, and graphs.", 3, "CS101", 1}},
		{sql: "INSERT OR IGNORE INTO course (id, title, description, credits, prerequisites, department_id) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"CS375", "Database Systems", "Relational modeling, SQL, and transactions.", 3, "CS200", 1}},
		{sql: "INSERT OR IGNORE INTO course (id, title, description, credits, prerequisites, department_id) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"MATH200", "Discrete Mathematics", "Logic, sets, and combinatorics.", 4, nil, 2}},
		{sql: "INSERT OR IGNORE INTO course (id, title, description, credits, prerequisites, department_id) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"ACCT210", "Financial Accounting", "The accounting cycle and financial statements.", 3, nil, 3}},

		{sql: "INSERT OR IGNORE INTO teacher (id, firstname, lastname, title, email, adjunct, department_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			args: []any{1, "Susan", "Anderson", "Professor", "sanderson@campus.edu", 0, 1}},
		{sql: "INSERT OR IGNORE INTO teacher (id, firstname, lastname, title, email, adjunct, department_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			args: []any{2, "Miguel", "Ortega", "Associate Professor", "mortega@campus.edu", 0, 2}},
		{sql: "INSERT OR IGNORE INTO teacher (id, firstname, lastname, title, email, adjunct, department_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			args: []any{3, "Dana", "Wu", "Lecturer", "dwu@campus.edu", 1, 1}},

		{sql: "INSERT OR IGNORE INTO section (crn, course_id, section_id, instructor_id, term, days, start_time, end_time, room, max_seats, enrolled, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			args: []any{10001, "CS375", "A101", 1, "Fall 2026", "MWF", "09:00", "09:50", "SCI 204", 30, 22, "open"}},
		{sql: "INSERT OR IGNORE INTO section (crn, course_id, section_id, instructor_id, term, days, start_time, end_time, room, max_seats, enrolled, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			args: []any{10002, "CS375", "B201", 3, "Fall 2026", "TR", "13:00", "14:15", "SCI 110", 30, 30, "closed"}},
		{sql: "INSERT OR IGNORE INTO section (crn, course_id, section_id, instructor_id, term, days, start_time, end_time, room, max_seats, enrolled, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			args: []any{10003, "CS101", "A101", 3, "Fall 2026", "MWF", "11:00", "11:50", "SCI 101", 60, 41, "open"}},
		{sql: "INSERT OR IGNORE INTO section (crn, course_id, section_id, instructor_id, term, days, start_time, end_time, room, max_seats, enrolled, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			args: []any{10004, "MATH200", "A101", 2, "Fall 2026", "TR", "10:00", "11:15", "MATH 12", 40, 18, "open"}},

		{sql: "INSERT OR IGNORE INTO student (id, firstname, lastname) VALUES (?, ?, ?)", args: []any{80, "Student", "McStudentface"}},

		{sql: "INSERT OR IGNORE INTO major (id, title, department_id, reqtext, hrs, gpa) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"CS", "Computer Science", 1, "Complete the CS core and one concentration.", 120, 2.5}},
		{sql: "INSERT OR IGNORE INTO major (id, title, department_id, reqtext, hrs, gpa) VALUES (?, ?, ?, ?, ?, ?)",
			args: []any{"ACCT", "Accounting", 3, "Complete the accounting core.", 120, 2.75}},

		{sql: "INSERT OR IGNORE INTO concentration (id, major_id, title, reqtext) VALUES (?, ?, ?, ?)",
			args: []any{1, "CS", "Data Science", "CS375 plus two statistics electives."}},
		{sql: "INSERT OR IGNORE INTO concentration (id, major_id, title, reqtext) VALUES (?, ?, ?, ?)",
			args: []any{2, "CS", "Systems", "Operating systems and networking electives."}},

		{sql: "INSERT OR IGNORE INTO student_major (student_id, major_id) VALUES (?, ?)", args: []any{80, "ACCT"}},
		{sql: "INSERT OR IGNORE INTO student_section (student_id, crn, grade) VALUES (?, ?, ?)", args: []any{80, 10001, nil}},
		{sql: "INSERT OR IGNORE INTO student_section (student_id, crn, grade) VALUES (?, ?, ?)", args: []any{80, 10004, nil}},

		{sql: "INSERT OR IGNORE INTO knowledge (topic, question, answer) VALUES (?, ?, ?)",
			args: []any{"registration", "How do I register for classes?", "Registration opens four weeks before each semester through the student portal."}},
		{sql: "INSERT OR IGNORE INTO knowledge (topic, question, answer) VALUES (?, ?, ?)",
			args: []any{"advising", "How do I contact an advisor?", "Advising appointments can be booked through the student portal under 'Advising'."}},
		{sql: "INSERT OR IGNORE INTO knowledge (topic, question, answer) VALUES (?, ?, ?)",
			args: []any{"graduation", "How many credits do I need to graduate?", "Most majors require 120 credit hours; check your major's requirement sheet."}},
	}

	for _, st := range stmts {
		if err := db.Exec(ctx, st.sql, st.args...); err != nil {
			return fmt.Errorf("exec %q: %w", st.sql, err)
		}
	}
	return nil
}
