package storage

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/types"
)

var validate = validator.New()

// Validate checks every loaded record against the Student rules. The
// first bad record makes the whole roster corrupt; there is no per-field
// repair.
func Validate(students []types.Student) error {
	for i, s := range students {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrCorrupt, i+1, err)
		}
	}
	return nil
}
