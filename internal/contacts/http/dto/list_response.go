package dto

import (
	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
)

// ListContactsResponse represents a contact list in API responses.
type ListContactsResponse struct {
	Data []ContactResponse `json:"data"`
}

// MapContactsToListResponse converts domain contacts to a list response.
func MapContactsToListResponse(contacts []contactsDomain.Contact) ListContactsResponse {
	data := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		data = append(data, MapContactToResponse(&contacts[i]))
	}

	return ListContactsResponse{Data: data}
}
