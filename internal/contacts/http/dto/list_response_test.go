package dto_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	"github.com/allisson/contacts/internal/contacts/http/dto"
)

func TestMapContactsToListResponse(t *testing.T) {
	now := time.Now().UTC()
	contacts := []contactsDomain.Contact{
		{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "张三",
			Phone:     "13800138000",
			Address:   "中关村大街5号",
			Category:  contactsDomain.CategoryOffice,
			CreatedAt: now,
		},
		{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "李四",
			Phone:     "13900139000",
			Category:  contactsDomain.CategoryPersonal,
			CreatedAt: now,
		},
	}

	response := dto.MapContactsToListResponse(contacts)

	assert.Len(t, response.Data, 2)
	assert.Equal(t, contacts[0].ID.String(), response.Data[0].ID)
	assert.Equal(t, contacts[0].Name, response.Data[0].Name)
	assert.Equal(t, contacts[0].Phone, response.Data[0].Phone)
	assert.Equal(t, contacts[0].Address, response.Data[0].Address)
	assert.Equal(t, "office", response.Data[0].Category)
	assert.Equal(t, now, response.Data[0].CreatedAt)

	assert.Equal(t, contacts[1].ID.String(), response.Data[1].ID)
	assert.Equal(t, contacts[1].Name, response.Data[1].Name)
	assert.Equal(t, "personal", response.Data[1].Category)
	assert.Empty(t, response.Data[1].Address)
}

func TestMapContactsToListResponse_Empty(t *testing.T) {
	response := dto.MapContactsToListResponse(nil)

	assert.NotNil(t, response.Data)
	assert.Len(t, response.Data, 0)
}
