package auth

import (
	"strings"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	Login    string
	Email    string
	Password string
}

// validate checks the registration fields. minPasswordLen comes from
// configuration.
func (in *RegisterInput) validate(minPasswordLen int) error {
	var errs []domain.FieldError

	if in.Login == "" {
		errs = append(errs, domain.FieldError{Field: "login", Message: "must not be empty"})
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid address"})
	}
	if len(in.Password) < minPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too short"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
