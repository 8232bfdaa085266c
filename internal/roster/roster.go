// Package roster implements the Roster Store: load, validate, mutate and
// persist the ordered list of student records.
//
// Every operation works on a roster slice the caller passes in and, for
// mutations, returns the updated slice. The store holds no cache; the
// storage backend is the only durable source of truth.
//
// Failure policy:
//   - Load never fails. Corrupt or unreadable storage is logged and
//     treated as an empty roster so the menu can always proceed.
//   - Save failures are logged and returned wrapped in ErrSave. Callers
//     do not retry.
//   - Bad user input is returned as ErrMissingFields or ErrInvalidAge
//     with nothing mutated or persisted.
//   - A name that matches nothing is a false "found" result, not an error.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

var (
	// ErrMissingFields is returned by Add when name, age or course is empty.
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidAge is returned by Add when the age text is not made of
	// decimal digits only.
	ErrInvalidAge = errors.New("age must be a number")

	// ErrSave wraps any failure to persist the roster.
	ErrSave = errors.New("roster could not be saved")
)

// AddInput is the raw text a user typed for a new record.
type AddInput struct {
	Name   string `validate:"required"`
	Age    string `validate:"required,digits"`
	Course string `validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// The built-in "numeric" tag accepts signs and decimals; ages are
	// plain digit strings.
	err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	if err != nil {
		panic(fmt.Sprintf("roster: register digits validation: %v", err))
	}
	return v
}

// Store applies roster operations and persists mutations through a
// storage.Storage.
type Store struct {
	storage storage.Storage
	log     *slog.Logger
}

// New returns a Store over st. A nil logger falls back to slog.Default().
func New(st storage.Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{storage: st, log: log}
}

// Load returns the persisted roster, or an empty roster when storage is
// missing, corrupt or unreadable.
func (s *Store) Load() []types.Student {
	students, err := s.storage.Load()
	if err == nil {
		return students
	}

	if errors.Is(err, storage.ErrCorrupt) {
		s.log.Error("roster data corrupted, starting fresh",
			slog.String("error", err.Error()))
	} else {
		s.log.Error("unexpected error while loading roster",
			slog.String("error", err.Error()))
	}

	return []types.Student{}
}

// Save overwrites storage with students.
func (s *Store) Save(students []types.Student) error {
	if err := s.storage.Save(students); err != nil {
		s.log.Error("error saving roster", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// Add validates the raw input, appends the new record to the end of the
// roster and persists the result.
//
// On invalid input the original roster is returned untouched and nothing
// is written. On a save failure the appended roster is returned together
// with an ErrSave error; it exists only in memory.
func (s *Store) Add(students []types.Student, name, ageText, course string) ([]types.Student, error) {
	in := AddInput{Name: name, Age: ageText, Course: course}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return students, err
		}
		s.log.Debug("rejected new student", slog.String("reason", response.ValidationError(verrs).Message))
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return students, fmt.Errorf("%w: %w", ErrMissingFields, verrs)
			}
		}
		return students, fmt.Errorf("%w: %w", ErrInvalidAge, verrs)
	}

	// Digits only, so the only possible failure is overflow.
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return students, fmt.Errorf("%w: %w", ErrInvalidAge, err)
	}

	student := types.Student{Name: name, Age: age, Course: course}

	// Clip forces append to copy, so the caller's slice is never
	// written through.
	updated := append(slices.Clip(students), student)

	if err := s.Save(updated); err != nil {
		return updated, err
	}

	s.log.Info("student added", slog.String("name", name))
	return updated, nil
}

// Remove deletes every record whose name case-insensitively equals query
// and persists the result. found reports whether anything was removed;
// when it is false the original roster is returned and nothing is
// written.
func (s *Store) Remove(students []types.Student, query string) (updated []types.Student, found bool, err error) {
	kept := make([]types.Student, 0, len(students))
	for _, st := range students {
		if !strings.EqualFold(st.Name, query) {
			kept = append(kept, st)
		}
	}

	if len(kept) == len(students) {
		return students, false, nil
	}

	if err := s.Save(kept); err != nil {
		return kept, true, err
	}

	s.log.Info("student removed",
		slog.String("name", query),
		slog.Int("removed", len(students)-len(kept)))
	return kept, true, nil
}

// View returns one report line per record, numbered from 1, in roster
// order. An empty roster yields no lines.
func View(students []types.Student) []string {
	lines := make([]string, 0, len(students))
	for i, st := range students {
		lines = append(lines, response.StudentLine(i+1, st))
	}
	return lines
}

// Search returns the first record whose name case-insensitively equals
// query.
func Search(students []types.Student, query string) (types.Student, bool) {
	for _, st := range students {
		if strings.EqualFold(st.Name, query) {
			return st, true
		}
	}
	return types.Student{}, false
}

// Summary is the aggregate view of a roster.
type Summary struct {
	// Courses holds each distinct course once, sorted.
	Courses []string
	// Names holds every name in roster order, duplicates included.
	Names []string
}

// Summarize builds the Summary of a non-empty roster. ok is false for an
// empty roster.
func Summarize(students []types.Student) (sum Summary, ok bool) {
	if len(students) == 0 {
		return Summary{}, false
	}

	seen := make(map[string]struct{}, len(students))
	sum.Names = make([]string, 0, len(students))

	for _, st := range students {
		if _, dup := seen[st.Course]; !dup {
			seen[st.Course] = struct{}{}
			sum.Courses = append(sum.Courses, st.Course)
		}
		sum.Names = append(sum.Names, st.Name)
	}

	sort.Strings(sum.Courses)
	return sum, true
}
