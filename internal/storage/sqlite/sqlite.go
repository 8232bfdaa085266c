// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The roster is kept in a single table. Each row carries its position in
// the roster, so reading back ORDER BY position reproduces insertion
// order. Save rewrites the whole table inside one transaction, which
// keeps the same "replace everything" contract as the JSON file backend.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the database-backed storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the roster table if it
// does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   position — 0-based index of the record in the roster
	//   name     — student name, the lookup key (not unique)
	//   age      — age in years
	//   course   — course name
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS roster (
			position INTEGER PRIMARY KEY,
			name     TEXT    NOT NULL,
			age      INTEGER NOT NULL,
			course   TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Load returns every row ordered by position.
func (s *SQLite) Load() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT name, age, course FROM roster ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("Load: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("Load: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.Name,
			&student.Age,
			&student.Course,
		); err != nil {
			// A column that cannot be scanned into the record type means
			// the table was written by something other than this program.
			return nil, fmt.Errorf("Load: scan row: %w: %v", storage.ErrCorrupt, err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Load: rows iteration: %w", err)
	}

	if err := storage.Validate(students); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	return students, nil
}

// Save replaces the table contents with students, in order.
func (s *SQLite) Save(students []types.Student) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM roster"); err != nil {
		return fmt.Errorf("Save: clear: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO roster (position, name, age, course) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	for i, student := range students {
		if _, err := stmt.Exec(i, student.Name, student.Age, student.Course); err != nil {
			return fmt.Errorf("Save: insert %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
