package dto

import (
	"time"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
)

// ContactResponse represents a contact in API responses.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// MapContactToResponse converts a domain contact to an API response.
func MapContactToResponse(contact *contactsDomain.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID.String(),
		Name:      contact.Name,
		Phone:     contact.Phone,
		Address:   contact.Address,
		Category:  string(contact.Category),
		CreatedAt: contact.CreatedAt,
	}
}
