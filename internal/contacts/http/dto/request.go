// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
)

// ContactRequest contains the contact fields for create and update operations.
type ContactRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
	Category string `json:"category" binding:"required"`
}

// Validate checks the request shape. Field-level rules such as phone digit
// counts are enforced by the repository, which serves non-HTTP callers too.
func (r *ContactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Category,
			validation.Required,
			validation.In(
				string(contactsDomain.CategoryOffice),
				string(contactsDomain.CategoryPersonal),
			).Error("must be a valid category"),
		),
	)
}

// ToInput converts the request to a domain mutation input.
func (r *ContactRequest) ToInput() *contactsDomain.ContactInput {
	return &contactsDomain.ContactInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Address:  r.Address,
		Category: contactsDomain.Category(r.Category),
	}
}
