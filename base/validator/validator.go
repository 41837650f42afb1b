package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxIdentityLen = 128

// IsValidIdentity reports whether a principal identity is well formed.
// Identities are opaque registry-issued strings; the only local rules are
// that they are non-empty, bounded and carry no whitespace.
func IsValidIdentity(identity string) bool {
	if len(identity) == 0 || len(identity) > maxIdentityLen {
		return false
	}
	return !strings.ContainsAny(identity, " \t\n\r")
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
