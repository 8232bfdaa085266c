// Package storage defines the Storage interface — the contract any
// persistence backend must satisfy to hold the roster.
//
// The roster is always read and written as a whole: Load returns every
// record in insertion order and Save replaces everything that was stored
// before. There are no partial or incremental writes.
//
// Backends are strict. They report every failure as an error and leave
// the fail-open policy (treat a bad file as an empty roster) to the
// roster package.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// ErrCorrupt is wrapped by Load when stored data exists but cannot be
// parsed, or parses into records that break the Student rules.
var ErrCorrupt = errors.New("storage: data is corrupted")

// Storage is the persistence contract.
type Storage interface {
	// Load returns the full roster in insertion order. Missing storage
	// is an empty roster and a nil error.
	Load() ([]types.Student, error)

	// Save overwrites the stored roster with students.
	Save(students []types.Student) error

	// Close releases any handle held by the backend.
	Close() error
}
