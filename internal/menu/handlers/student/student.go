// Package student contains the menu handlers for the student roster.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The menu expects every entry to be a menu.Handler. That signature has
// no room for extra parameters like the roster store, so each entry is
// built by a factory that:
//
//  1. Accepts dependencies (the store)
//  2. Returns a function with the exact signature the menu needs
//
// Add(store) below is called ONCE at startup; the returned handler runs
// every time the user picks "1":
//
//	m.Handle("1", "Add Student", student.Add(store))
package student

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-roster/internal/menu"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// Mutator is the part of the roster store that changes persisted data.
// *roster.Store satisfies it.
type Mutator interface {
	Add(students []types.Student, name, ageText, course string) ([]types.Student, error)
	Remove(students []types.Student, query string) ([]types.Student, bool, error)
}

// User-facing messages.
const (
	MsgAllFieldsRequired = "All fields are required!"
	MsgAgeNotNumber      = "Age must be a number."
	MsgAdded             = "Student added successfully."
	MsgNoStudents        = "No students found."
	MsgListHeader        = "--- Student List ---"
	MsgNotFound          = "Student not found."
	MsgRemoved           = "Student removed successfully!"
	MsgNoSuchStudent     = "No such student found."
	MsgNoData            = "No data available."
	MsgSaveFailed        = "Error saving file"
)

// ─────────────────────────────────────────────────────────────────────────────
// Add asks for name, age and course and appends a new record.
//
// Empty answers and non-digit ages are rejected with a message; the
// roster is then neither changed nor saved.
// ─────────────────────────────────────────────────────────────────────────────
func Add(store Mutator) menu.Handler {
	return func(ctx context.Context, c *menu.Console, students []types.Student) ([]types.Student, error) {
		name, err := c.Ask(ctx, "Enter student name: ")
		if err != nil {
			return students, err
		}
		age, err := c.Ask(ctx, "Enter student age: ")
		if err != nil {
			return students, err
		}
		course, err := c.Ask(ctx, "Enter student course: ")
		if err != nil {
			return students, err
		}

		updated, err := store.Add(students, name, age, course)
		switch {
		case errors.Is(err, roster.ErrMissingFields):
			response.Write(c.Out(), response.Failure(MsgAllFieldsRequired))
			return students, nil
		case errors.Is(err, roster.ErrInvalidAge):
			response.Write(c.Out(), response.Failure(MsgAgeNotNumber))
			return students, nil
		case errors.Is(err, roster.ErrSave):
			response.Write(c.Out(), response.GeneralError(MsgSaveFailed, err))
			return updated, nil
		case err != nil:
			return students, err
		}

		response.Write(c.Out(), response.OK(MsgAdded))
		return updated, nil
	}
}

// View lists every record, numbered from 1.
func View() menu.Handler {
	return func(ctx context.Context, c *menu.Console, students []types.Student) ([]types.Student, error) {
		lines := roster.View(students)
		if len(lines) == 0 {
			response.Write(c.Out(), response.OK(MsgNoStudents))
			return students, nil
		}

		response.WriteLines(c.Out(), "", MsgListHeader)
		response.WriteLines(c.Out(), lines...)
		return students, nil
	}
}

// Search reports the first record whose name matches, ignoring case.
func Search() menu.Handler {
	return func(ctx context.Context, c *menu.Console, students []types.Student) ([]types.Student, error) {
		query, err := c.Ask(ctx, "Enter name to search: ")
		if err != nil {
			return students, err
		}

		s, ok := roster.Search(students, query)
		if !ok {
			response.Write(c.Out(), response.Failure(MsgNotFound))
			return students, nil
		}

		response.Write(c.Out(), response.OK(response.Found(s)))
		return students, nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Remove deletes every record whose name matches, ignoring case.
//
// Unlike Search, which stops at the first match, Remove drops all of
// them. Nothing is saved when no record matches.
// ─────────────────────────────────────────────────────────────────────────────
func Remove(store Mutator) menu.Handler {
	return func(ctx context.Context, c *menu.Console, students []types.Student) ([]types.Student, error) {
		query, err := c.Ask(ctx, "Enter name to remove: ")
		if err != nil {
			return students, err
		}

		updated, found, err := store.Remove(students, query)
		switch {
		case errors.Is(err, roster.ErrSave):
			response.Write(c.Out(), response.GeneralError(MsgSaveFailed, err))
			return updated, nil
		case err != nil:
			return students, err
		case !found:
			response.Write(c.Out(), response.Failure(MsgNoSuchStudent))
			return students, nil
		}

		response.Write(c.Out(), response.OK(MsgRemoved))
		return updated, nil
	}
}

// Summary prints the distinct courses and every name in roster order.
func Summary() menu.Handler {
	return func(ctx context.Context, c *menu.Console, students []types.Student) ([]types.Student, error) {
		sum, ok := roster.Summarize(students)
		if !ok {
			response.Write(c.Out(), response.OK(MsgNoData))
			return students, nil
		}

		response.WriteLines(c.Out(),
			response.Courses(sum.Courses),
			response.Names(sum.Names),
		)
		return students, nil
	}
}
