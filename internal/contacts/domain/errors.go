// Package domain defines core domain models and errors for contacts.
package domain

import (
	"github.com/allisson/contacts/internal/errors"
)

// Contact-specific error definitions.
var (
	// ErrContactNotFound indicates no contact exists with the requested ID.
	ErrContactNotFound = errors.Wrap(errors.ErrNotFound, "contact not found")

	// ErrDuplicateContact indicates another contact already uses the same
	// name within the same category. Uniqueness is compound: the same name
	// may appear in different categories.
	ErrDuplicateContact = errors.Wrap(errors.ErrConflict, "a contact with this name already exists in the category")
)
