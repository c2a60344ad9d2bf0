// Package domain defines the core domain models for the contact collection.
// Contacts live in a single in-memory collection owned by the repository and
// are persisted as one encrypted record set, so the model carries everything
// needed to rebuild that collection from storage.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/contacts/internal/validation"
)

// Category classifies a contact. The set of storable categories is closed.
type Category string

const (
	// CategoryOffice marks a work contact.
	CategoryOffice Category = "office"
	// CategoryPersonal marks a private contact.
	CategoryPersonal Category = "personal"
	// CategoryAll is the filter wildcard matching every category.
	// It is never stored on a contact.
	CategoryAll Category = "all"
)

// Categories returns the storable categories, excluding the filter wildcard.
func Categories() []Category {
	return []Category{CategoryOffice, CategoryPersonal}
}

// IsValid reports whether c is a storable category.
func (c Category) IsValid() bool {
	return c == CategoryOffice || c == CategoryPersonal
}

// Contact represents one entry of the contact collection.
type Contact struct {
	// ID is the unique identifier, assigned once at creation.
	ID uuid.UUID `json:"id"`
	// Name is the display name. Name and Category together must be unique
	// across the collection.
	Name string `json:"name"`
	// Phone holds digits plus optional formatting characters.
	Phone string `json:"phone"`
	// Address is optional free text.
	Address string `json:"address,omitempty"`
	// Category is one of the storable categories.
	Category Category `json:"category"`
	// CreatedAt is the UTC creation timestamp, immutable across updates.
	CreatedAt time.Time `json:"created_at"`
}

// Complete reports whether the contact carries every required field.
// Stored entries failing this check are dropped when the collection loads.
func (c Contact) Complete() bool {
	return c.ID != uuid.Nil && c.Name != "" && c.Phone != "" && c.Category.IsValid()
}

// ContactInput carries the caller-supplied fields of an add or update.
type ContactInput struct {
	Name     string
	Phone    string
	Address  string
	Category Category
}

// Normalize trims surrounding whitespace from the free-text fields.
func (i *ContactInput) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Phone = strings.TrimSpace(i.Phone)
	i.Address = strings.TrimSpace(i.Address)
}

// Validate checks the input against the contact field rules.
func (i *ContactInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name,
			validation.Required.Error("must not be blank"),
			appvalidation.NotBlank,
			validation.RuneLength(1, 100),
		),
		validation.Field(&i.Phone,
			validation.Required.Error("must not be blank"),
			appvalidation.PhoneDigits{Min: 7},
		),
		validation.Field(&i.Address,
			validation.RuneLength(0, 255),
		),
		validation.Field(&i.Category,
			validation.Required,
			validation.In(CategoryOffice, CategoryPersonal).
				Error("must be a valid category"),
		),
	)

	return appvalidation.WrapValidationError(err)
}
