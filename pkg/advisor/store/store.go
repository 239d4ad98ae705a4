// Package store defines the lookup contract between the question
// router and the academic records database. Every query binds
// user-derived values positionally; user text never selects table or
// column identifiers.
package store

import (
	"context"
	"fmt"
)

// Row is one result row: column names in the order the underlying
// result exposed them, plus a loosely typed value per column (string,
// int64, float64, or nil).
type Row struct {
	Columns []string
	Values  map[string]any
}

// Has reports whether the row carries a non-nil value for the column.
func (r Row) Has(col string) bool {
	v, ok := r.Values[col]
	return ok && v != nil
}

// Value returns the raw value for the column, or nil.
func (r Row) Value(col string) any {
	return r.Values[col]
}

// Text renders the column value as a string, "" for absent or nil.
func (r Row) Text(col string) string {
	v, ok := r.Values[col]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Store executes parameterized lookups against the records database.
// An empty row slice is a valid "no data" result; errors mean the
// lookup itself failed.
type Store interface {
	// Execute runs a parameterized query. Placeholders are positional
	// and args are bound in order, never concatenated.
	Execute(ctx context.Context, query string, args ...any) ([]Row, error)

	// SearchKeywords searches the knowledge table for rows matching any
	// of the keywords.
	SearchKeywords(ctx context.Context, keywords []string, limit int) ([]Row, error)

	// Student-centric queries.
	StudentClasses(ctx context.Context, studentID string) ([]Row, error)
	StudentMajors(ctx context.Context, studentID string) ([]Row, error)
	HoursRemaining(ctx context.Context, studentID string) ([]Row, error)
	MajorDepartment(ctx context.Context, studentID string) ([]Row, error)
	ProfessorForCourse(ctx context.Context, studentID, courseID string) ([]Row, error)

	// Catalog queries.
	MajorConcentrations(ctx context.Context, majorID string) ([]Row, error)
	TeachersInDepartment(ctx context.Context, department string) ([]Row, error)

	Close() error
}

// VectorDoc is one embedded knowledge chunk.
type VectorDoc struct {
	ID        string
	Content   string
	Embedding []float32
}

// VectorStore persists knowledge-base embeddings.
type VectorStore interface {
	UpsertVector(ctx context.Context, doc VectorDoc) error
	AllVectors(ctx context.Context) ([]VectorDoc, error)
}
