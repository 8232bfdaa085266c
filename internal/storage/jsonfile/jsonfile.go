// Package jsonfile provides the default storage.Storage implementation:
// the whole roster kept as one indented JSON array in a single file.
//
//	[
//	    {
//	        "name": "Alice",
//	        "age": 25,
//	        "course": "Math"
//	    }
//	]
//
// The file is read in full on Load and rewritten in full on Save. A
// missing file is an empty roster.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

const indent = "    "

// record is the on-disk shape of a student. Pointer fields tell a key
// that is absent (or null) apart from a zero value, so a record missing
// any of its three fields is rejected instead of loading as "" or 0.
type record struct {
	Name   *string `json:"name"   validate:"required"`
	Age    *int    `json:"age"    validate:"required"`
	Course *string `json:"course" validate:"required"`
}

var validate = validator.New()

// decode turns the file contents into students, or an ErrCorrupt error.
func decode(data []byte) ([]types.Student, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}

	students := make([]types.Student, 0, len(records))
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", storage.ErrCorrupt, i+1, err)
		}
		students = append(students, types.Student{
			Name:   *r.Name,
			Age:    *r.Age,
			Course: *r.Course,
		})
	}

	// Values are checked against the same rules as every backend.
	if err := storage.Validate(students); err != nil {
		return nil, err
	}

	return students, nil
}

// JSONFile is a storage.Storage backed by a JSON document on disk.
type JSONFile struct {
	path string
}

// New returns a JSONFile that persists to path. The file is not touched
// until the first Load or Save.
func New(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the persistence file location.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads and decodes the persistence file.
func (f *JSONFile) Load() ([]types.Student, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.Student{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile.Load: open: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("jsonfile.Load: read: %w", err)
	}

	// Anything that is not a JSON array of complete student objects is
	// corrupt, including an empty file and trailing garbage after the
	// array.
	students, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("jsonfile.Load: %w", err)
	}

	return students, nil
}

// Save replaces the persistence file with students.
//
// The data is written to a temporary file in the same directory and then
// renamed over the target, so a failed write leaves the previous file in
// place rather than a truncated one.
func (f *JSONFile) Save(students []types.Student) error {
	if students == nil {
		students = []types.Student{}
	}

	data, err := json.MarshalIndent(students, "", indent)
	if err != nil {
		return fmt.Errorf("jsonfile.Save: encode: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile.Save: create temp: %w", err)
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile.Save: close: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("jsonfile.Save: chmod: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("jsonfile.Save: rename: %w", err)
	}

	return nil
}

// Close is a no-op; no handle is held between calls.
func (f *JSONFile) Close() error {
	return nil
}
