// Package response provides helpers for writing consistent console
// messages from the menu handlers.
//
// Every handler reports back to the user as plain text lines. Rather
// than formatting the same record or error shapes in each handler, we
// centralise them here so the menu always looks the same.
package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is one message for the user.
//
// Status tells tests and callers whether the message reports a success
// or a problem; only Message is printed.
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status  string
	Message string
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OK is a success message.
func OK(msg string) Response {
	return Response{Status: StatusOK, Message: msg}
}

// Failure is a user-facing rejection such as invalid input or a missing
// record.
func Failure(msg string) Response {
	return Response{Status: StatusError, Message: msg}
}

// ─────────────────────────────────────────────────────────────────────────────
// GeneralError wraps an unexpected error with a short context prefix.
//
//	response.Write(w, response.GeneralError("Error saving file", err))
//	// Error saving file: open students.json: permission denied
//
// ─────────────────────────────────────────────────────────────────────────────
func GeneralError(context string, err error) Response {
	return Response{
		Status:  StatusError,
		Message: fmt.Sprintf("%s: %s", context, err.Error()),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into a
// single human-readable Response, one sentence per failing field joined
// with ", ".
//
//	field Name is required, field Age must contain only digits
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "digits":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must contain only digits", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status:  StatusError,
		Message: strings.Join(errMessages, ", "),
	}
}

// Write prints r as one line.
func Write(w io.Writer, r Response) error {
	_, err := fmt.Fprintln(w, r.Message)
	return err
}

// WriteLines prints each line in order.
func WriteLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// StudentLine formats one roster entry prefixed with its ordinal n,
// e.g. "1. Alice | Age: 25 | Course: Math".
func StudentLine(n int, s types.Student) string {
	return fmt.Sprintf("%d. %s", n, details(s))
}

// Found formats a search hit:
//
//	Found: Alice | Age: 25 | Course: Math
func Found(s types.Student) string {
	return "Found: " + details(s)
}

func details(s types.Student) string {
	return fmt.Sprintf("%s | Age: %d | Course: %s", s.Name, s.Age, s.Course)
}

// Courses formats the distinct course set.
func Courses(courses []string) string {
	return "Unique Courses: {" + strings.Join(courses, ", ") + "}"
}

// Names formats the ordered name list.
func Names(names []string) string {
	return "All Names: (" + strings.Join(names, ", ") + ")"
}
