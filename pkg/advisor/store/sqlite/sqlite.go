// Package sqlite implements the academic records store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/campuscore/advisor/pkg/advisor/store"
)

// Store implements store.Store and store.VectorStore over a SQLite
// database.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)
var _ store.VectorStore = (*Store)(nil)

// Open opens (creating if necessary) a SQLite database with WAL mode
// enabled and the academic schema initialized.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for better concurrency with the CLI tools
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS college (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS department (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	college_id INTEGER REFERENCES college(id)
);

CREATE TABLE IF NOT EXISTS course (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	credits INTEGER,
	prerequisites TEXT,
	department_id INTEGER REFERENCES department(id)
);

CREATE TABLE IF NOT EXISTS teacher (
	id INTEGER PRIMARY KEY,
	firstname TEXT NOT NULL,
	lastname TEXT NOT NULL,
	title TEXT,
	email TEXT,
	adjunct INTEGER DEFAULT 0,
	department_id INTEGER REFERENCES department(id)
);

CREATE TABLE IF NOT EXISTS section (
	crn INTEGER PRIMARY KEY,
	course_id TEXT NOT NULL REFERENCES course(id),
	section_id TEXT NOT NULL,
	instructor_id INTEGER REFERENCES teacher(id),
	term TEXT,
	days TEXT,
	start_time TEXT,
	end_time TEXT,
	room TEXT,
	max_seats INTEGER DEFAULT 0,
	enrolled INTEGER DEFAULT 0,
	status TEXT DEFAULT 'open'
);

CREATE TABLE IF NOT EXISTS student (
	id INTEGER PRIMARY KEY,
	firstname TEXT NOT NULL,
	lastname TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS major (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	department_id INTEGER REFERENCES department(id),
	reqtext TEXT,
	hrs INTEGER,
	gpa REAL
);

CREATE TABLE IF NOT EXISTS concentration (
	id INTEGER PRIMARY KEY,
	major_id TEXT REFERENCES major(id),
	title TEXT NOT NULL,
	reqtext TEXT
);

CREATE TABLE IF NOT EXISTS student_major (
	student_id INTEGER NOT NULL REFERENCES student(id),
	major_id TEXT NOT NULL REFERENCES major(id),
	UNIQUE(student_id, major_id)
);

CREATE TABLE IF NOT EXISTS student_section (
	student_id INTEGER NOT NULL REFERENCES student(id),
	crn INTEGER NOT NULL REFERENCES section(crn),
	grade TEXT,
	UNIQUE(student_id, crn)
);

CREATE TABLE IF NOT EXISTS knowledge (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	topic TEXT,
	question TEXT,
	answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS knowledge_vector (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	embedding BLOB NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Exec runs a statement that returns no rows (seeding, imports).
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// Execute runs a parameterized query and materializes the result rows
// with their column order preserved.
func (s *Store) Execute(ctx context.Context, query string, args ...any) ([]store.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []store.Row
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		values := make(map[string]any, len(cols))
		for i, col := range cols {
			values[col] = normalize(raw[i])
		}
		out = append(out, store.Row{Columns: cols, Values: values})
	}
	return out, rows.Err()
}

// normalize maps driver types onto the scalar set callers expect.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// SearchKeywords searches knowledge rows matching any keyword in
// topic, question, or answer. Keywords are deduplicated before
// binding; an empty keyword list yields an empty result.
func (s *Store) SearchKeywords(ctx context.Context, keywords []string, limit int) ([]store.Row, error) {
	seen := make(map[string]struct{}, len(keywords))
	var terms []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		terms = append(terms, kw)
	}
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	var clauses []string
	var args []any
	for _, term := range terms {
		clauses = append(clauses, "(topic LIKE ? OR question LIKE ? OR answer LIKE ?)")
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern, pattern)
	}
	args = append(args, limit)

	query := "SELECT topic, question, answer FROM knowledge WHERE " +
		strings.Join(clauses, " OR ") + " LIMIT ?"
	return s.Execute(ctx, query, args...)
}

// StudentClasses returns the classes a student is taking.
func (s *Store) StudentClasses(ctx context.Context, studentID string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT c.id, c.title, c.credits, s.room, s.days
		FROM student_section ss
		JOIN section s ON ss.crn = s.crn
		JOIN course c ON s.course_id = c.id
		WHERE ss.student_id = ?`, studentID)
}

// StudentMajors returns the majors a student is enrolled in.
func (s *Store) StudentMajors(ctx context.Context, studentID string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT m.id, m.title, m.hrs, m.gpa, d.name AS department
		FROM student_major sm
		JOIN major m ON sm.major_id = m.id
		JOIN department d ON m.department_id = d.id
		WHERE sm.student_id = ?`, studentID)
}

// MajorConcentrations returns the concentrations offered for a major.
func (s *Store) MajorConcentrations(ctx context.Context, majorID string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT id, title, reqtext
		FROM concentration
		WHERE major_id = UPPER(?)`, majorID)
}

// HoursRemaining estimates credit hours left toward each of the
// student's majors.
func (s *Store) HoursRemaining(ctx context.Context, studentID string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT m.hrs AS total_required, SUM(c.credits) AS completed,
		       m.hrs - SUM(c.credits) AS remaining
		FROM student_major sm
		JOIN major m ON sm.major_id = m.id
		JOIN student_section ss ON ss.student_id = sm.student_id
		JOIN section s ON ss.crn = s.crn
		JOIN course c ON s.course_id = c.id
		WHERE sm.student_id = ?
		GROUP BY m.id`, studentID)
}

// ProfessorForCourse returns the instructor of the section of courseID
// the student is registered in.
func (s *Store) ProfessorForCourse(ctx context.Context, studentID, courseID string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT t.firstname, t.lastname, d.name AS department
		FROM teacher t
		JOIN section s ON t.id = s.instructor_id
		JOIN department d ON t.department_id = d.id
		WHERE s.course_id = UPPER(?) AND s.crn IN
		      (SELECT crn FROM student_section WHERE student_id = ?)`,
		courseID, studentID)
}

// MajorDepartment returns department and college info for the
// student's majors.
func (s *Store) MajorDepartment(ctx context.Context, studentID string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT d.id, d.name, c.name AS college
		FROM student_major sm
		JOIN major m ON sm.major_id = m.id
		JOIN department d ON m.department_id = d.id
		JOIN college c ON d.college_id = c.id
		WHERE sm.student_id = ?`, studentID)
}

// TeachersInDepartment lists teachers of a department matched by name.
func (s *Store) TeachersInDepartment(ctx context.Context, department string) ([]store.Row, error) {
	return s.Execute(ctx, `
		SELECT t.firstname, t.lastname,
		       CASE WHEN t.adjunct = 1 THEN 'Yes' ELSE 'No' END AS is_adjunct
		FROM teacher t
		JOIN department d ON t.department_id = d.id
		WHERE d.name LIKE ?`, "%"+department+"%")
}

// UpsertVector stores one embedded knowledge chunk.
func (s *Store) UpsertVector(ctx context.Context, doc store.VectorDoc) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO knowledge_vector (id, content, embedding) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, embedding = excluded.embedding`,
		doc.ID, doc.Content, encodeEmbedding(doc.Embedding))
	return err
}

// AllVectors loads every embedded knowledge chunk.
func (s *Store) AllVectors(ctx context.Context) ([]store.VectorDoc, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, content, embedding FROM knowledge_vector")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []store.VectorDoc
	for rows.Next() {
		var doc store.VectorDoc
		var blob []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &blob); err != nil {
			return nil, err
		}
		doc.Embedding = decodeEmbedding(blob)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// encodeEmbedding packs float32s little-endian into a BLOB.
func encodeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeEmbedding(blob []byte) []float32 {
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vec
}
