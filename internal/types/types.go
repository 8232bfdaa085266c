// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: the
// storage backends, the roster store and the menu handlers can all import
// types without depending on each other.
package types

// Student is one record in the roster.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — the field names written to the persistence file.
//     The file format is exactly {"name", "age", "course"}; there is no
//     identifier, the name is the lookup key.
//
//  2. validate:"..." — rules checked by go-playground/validator when a
//     roster is read back from storage. A record that breaks any rule
//     means the whole file is treated as corrupt.
type Student struct {
	Name   string `json:"name"   validate:"required"`
	Age    int    `json:"age"    validate:"gte=0"`
	Course string `json:"course" validate:"required"`
}
