package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/go-playground/validator/v10"
)

// RegisterForm is what the register prompt collects before anything is
// sent to the server.
type RegisterForm struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

var formFields = map[string]struct{ name, message string }{
	"FirstName":       {"firstName", "First name is required"},
	"LastName":        {"lastName", "Last name is required"},
	"Email":           {"email", "Please enter a valid email address"},
	"Password":        {"password", "Password must be at least 6 characters"},
	"ConfirmPassword": {"confirmPassword", "Passwords don't match"},
}

var formValidator = validator.New()

// Validate trims the text fields and reports every rule the form breaks.
func (f *RegisterForm) Validate() error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))

	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &common.ValidationError{}
	for _, fe := range verrs {
		m := formFields[fe.StructField()]
		if !out.Has(m.name) {
			out.Add(m.name, m.message)
		}
	}
	return out.Err()
}
