package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	"github.com/allisson/contacts/internal/contacts/repository"
	"github.com/allisson/contacts/internal/contacts/repository/mocks"
	"github.com/allisson/contacts/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectRecorded(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "contacts", operation, status).Return().Once()
	m.On("RecordDuration", mock.Anything, "contacts", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func officeInput() *contactsDomain.ContactInput {
	return &contactsDomain.ContactInput{
		Name:     "张三",
		Phone:    "13800138000",
		Address:  "北京市海淀区科技园路1号",
		Category: contactsDomain.CategoryOffice,
	}
}

func TestNewContactRepositoryWithMetrics(t *testing.T) {
	decorator := repository.NewContactRepositoryWithMetrics(&mocks.MockContactRepository{}, &mockBusinessMetrics{})
	assert.NotNil(t, decorator)
	assert.Implements(t, (*repository.ContactRepository)(nil), decorator)
}

func TestMetricsDecorator_Add(t *testing.T) {
	ctx := context.Background()
	input := officeInput()

	t.Run("success records success metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		expected := &contactsDomain.Contact{ID: uuid.Must(uuid.NewV7()), Name: input.Name}
		mockRepo.On("Add", ctx, input).Return(expected, nil).Once()
		expectRecorded(mockMetrics, "contact_add", "success")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		contact, err := decorator.Add(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, expected, contact)
		mockRepo.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("error records error metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		mockRepo.On("Add", ctx, input).Return(nil, contactsDomain.ErrDuplicateContact).Once()
		expectRecorded(mockMetrics, "contact_add", "error")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		_, err := decorator.Add(ctx, input)

		assert.ErrorIs(t, err, contactsDomain.ErrDuplicateContact)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	input := officeInput()

	t.Run("success records success metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		expected := &contactsDomain.Contact{ID: id, Name: input.Name}
		mockRepo.On("Update", ctx, id, input).Return(expected, nil).Once()
		expectRecorded(mockMetrics, "contact_update", "success")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		contact, err := decorator.Update(ctx, id, input)

		require.NoError(t, err)
		assert.Equal(t, expected, contact)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("error records error metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		mockRepo.On("Update", ctx, id, input).Return(nil, contactsDomain.ErrContactNotFound).Once()
		expectRecorded(mockMetrics, "contact_update", "error")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		_, err := decorator.Update(ctx, id, input)

		assert.ErrorIs(t, err, contactsDomain.ErrContactNotFound)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	t.Run("success records success metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		mockRepo.On("Delete", ctx, id).Return(nil).Once()
		expectRecorded(mockMetrics, "contact_delete", "success")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		require.NoError(t, decorator.Delete(ctx, id))
		mockMetrics.AssertExpectations(t)
	})

	t.Run("error records error metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		mockRepo.On("Delete", ctx, id).Return(contactsDomain.ErrContactNotFound).Once()
		expectRecorded(mockMetrics, "contact_delete", "error")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		err := decorator.Delete(ctx, id)

		assert.ErrorIs(t, err, contactsDomain.ErrContactNotFound)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("success records success metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		mockRepo.On("Load", ctx).Return(nil).Once()
		expectRecorded(mockMetrics, "collection_load", "success")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		require.NoError(t, decorator.Load(ctx))
		mockMetrics.AssertExpectations(t)
	})

	t.Run("error records error metrics", func(t *testing.T) {
		mockRepo := &mocks.MockContactRepository{}
		mockMetrics := &mockBusinessMetrics{}

		mockRepo.On("Load", ctx).Return(assert.AnError).Once()
		expectRecorded(mockMetrics, "collection_load", "error")

		decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
		assert.Error(t, decorator.Load(ctx))
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Filter(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockContactRepository{}
	mockMetrics := &mockBusinessMetrics{}

	expected := []contactsDomain.Contact{{Name: "张三"}}
	mockRepo.On("Filter", ctx, contactsDomain.CategoryAll, "zs").Return(expected).Once()
	expectRecorded(mockMetrics, "contact_filter", "success")

	decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)
	contacts := decorator.Filter(ctx, contactsDomain.CategoryAll, "zs")

	assert.Equal(t, expected, contacts)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_PassThrough(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockContactRepository{}
	mockMetrics := &mockBusinessMetrics{}

	expected := []contactsDomain.Contact{{Name: "张三"}}
	mockRepo.On("List", ctx).Return(expected).Once()
	mockRepo.On("Count", ctx).Return(1).Once()
	mockRepo.On("Subscribe", mock.AnythingOfType("repository.ChangeListener")).Return().Once()

	decorator := repository.NewContactRepositoryWithMetrics(mockRepo, mockMetrics)

	assert.Equal(t, expected, decorator.List(ctx))
	assert.Equal(t, 1, decorator.Count(ctx))
	decorator.Subscribe(func(ctx context.Context) {})

	mockRepo.AssertExpectations(t)
	// No metrics recorded for pass-through methods.
	mockMetrics.AssertExpectations(t)
}
