// Package mocks provides mock implementations for testing repository consumers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	"github.com/allisson/contacts/internal/contacts/repository"
)

// MockContactRepository is a mock implementation of ContactRepository for testing.
type MockContactRepository struct {
	mock.Mock
}

// Load mocks the Load method of ContactRepository.
func (m *MockContactRepository) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Add mocks the Add method of ContactRepository.
func (m *MockContactRepository) Add(
	ctx context.Context,
	input *contactsDomain.ContactInput,
) (*contactsDomain.Contact, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contactsDomain.Contact), args.Error(1)
}

// Update mocks the Update method of ContactRepository.
func (m *MockContactRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	input *contactsDomain.ContactInput,
) (*contactsDomain.Contact, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contactsDomain.Contact), args.Error(1)
}

// Delete mocks the Delete method of ContactRepository.
func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Filter mocks the Filter method of ContactRepository.
func (m *MockContactRepository) Filter(
	ctx context.Context,
	category contactsDomain.Category,
	keyword string,
) []contactsDomain.Contact {
	args := m.Called(ctx, category, keyword)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]contactsDomain.Contact)
}

// List mocks the List method of ContactRepository.
func (m *MockContactRepository) List(ctx context.Context) []contactsDomain.Contact {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]contactsDomain.Contact)
}

// Count mocks the Count method of ContactRepository.
func (m *MockContactRepository) Count(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// Subscribe mocks the Subscribe method of ContactRepository.
func (m *MockContactRepository) Subscribe(listener repository.ChangeListener) {
	m.Called(listener)
}
