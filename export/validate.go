package export

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"eduplatform/platform"
)

var validate = validator.New()

// userRow is the validated projection of a user for export purposes.
type userRow struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
}

// Validate checks the export precondition: every user in the snapshot
// must carry a non-empty name and a well-formed email. Writers call it
// before producing any output and abort on failure, leaving both the
// registry and the filesystem untouched.
func Validate(snap *platform.Snapshot) error {
	for _, u := range snap.Users {
		row := userRow{FullName: u.FullName, Email: u.Email}
		if err := validate.Struct(row); err != nil {
			return fmt.Errorf("%w: user %d: %v", platform.ErrValidationFailed, u.ID, err)
		}
	}
	return nil
}
