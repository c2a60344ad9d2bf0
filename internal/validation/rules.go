// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/contacts/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PhoneDigits validates that a phone number carries a minimum number of
// digit characters. Formatting characters (spaces, dashes, parentheses,
// plus signs) are allowed and ignored by the count.
type PhoneDigits struct {
	Min int
}

// Validate checks if the value contains at least Min digit characters.
func (p PhoneDigits) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_phone_digits", "phone must be a string")
	}

	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}

	if count < p.Min {
		return validation.NewError(
			"validation_phone_digits",
			fmt.Sprintf("phone must contain at least %d digits", p.Min),
		)
	}

	return nil
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
