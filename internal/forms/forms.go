// Package forms validates submitted credential forms before anything is sent
// to the identity backend. Validation is pure: no I/O, no logging.
package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"memberportal/internal/domain"
)

// validate is shared by every form. Validator instances are safe for
// concurrent use and cache struct metadata.
var validate = validator.New()

// Login is the credential pair submitted by the login form.
type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// Validate trims surrounding whitespace from the email in place, then checks
// the address grammar and the minimum password length. Any violation is
// reported as the generic domain.ErrInvalidForm; which rule failed is not
// exposed.
func (f *Login) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	if err := validate.Struct(f); err != nil {
		return domain.ErrInvalidForm
	}
	return nil
}

// Registration extends the login credentials with the account holder's names.
type Registration struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=6"`
}

// Validate trims names and email in place and applies the registration rules:
// names non-empty after trimming, plus the login email/password rules. The
// password is taken exactly as typed.
func (f *Registration) Validate() error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	if err := validate.Struct(f); err != nil {
		return domain.ErrInvalidForm
	}
	return nil
}
