package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	"github.com/allisson/contacts/internal/metrics"
)

// contactRepositoryWithMetrics decorates ContactRepository with metrics instrumentation.
type contactRepositoryWithMetrics struct {
	next    ContactRepository
	metrics metrics.BusinessMetrics
}

// NewContactRepositoryWithMetrics wraps a ContactRepository with metrics recording.
func NewContactRepositoryWithMetrics(repo ContactRepository, m metrics.BusinessMetrics) ContactRepository {
	return &contactRepositoryWithMetrics{
		next:    repo,
		metrics: m,
	}
}

// Load records metrics for collection load operations.
func (c *contactRepositoryWithMetrics) Load(ctx context.Context) error {
	start := time.Now()
	err := c.next.Load(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "contacts", "collection_load", status)
	c.metrics.RecordDuration(ctx, "contacts", "collection_load", time.Since(start), status)

	return err
}

// Add records metrics for contact creation operations.
func (c *contactRepositoryWithMetrics) Add(
	ctx context.Context,
	input *contactsDomain.ContactInput,
) (*contactsDomain.Contact, error) {
	start := time.Now()
	contact, err := c.next.Add(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "contacts", "contact_add", status)
	c.metrics.RecordDuration(ctx, "contacts", "contact_add", time.Since(start), status)

	return contact, err
}

// Update records metrics for contact update operations.
func (c *contactRepositoryWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input *contactsDomain.ContactInput,
) (*contactsDomain.Contact, error) {
	start := time.Now()
	contact, err := c.next.Update(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "contacts", "contact_update", status)
	c.metrics.RecordDuration(ctx, "contacts", "contact_update", time.Since(start), status)

	return contact, err
}

// Delete records metrics for contact removal operations.
func (c *contactRepositoryWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "contacts", "contact_delete", status)
	c.metrics.RecordDuration(ctx, "contacts", "contact_delete", time.Since(start), status)

	return err
}

// Filter records metrics for search operations.
func (c *contactRepositoryWithMetrics) Filter(
	ctx context.Context,
	category contactsDomain.Category,
	keyword string,
) []contactsDomain.Contact {
	start := time.Now()
	contacts := c.next.Filter(ctx, category, keyword)

	c.metrics.RecordOperation(ctx, "contacts", "contact_filter", "success")
	c.metrics.RecordDuration(ctx, "contacts", "contact_filter", time.Since(start), "success")

	return contacts
}

// List passes through without instrumentation.
func (c *contactRepositoryWithMetrics) List(ctx context.Context) []contactsDomain.Contact {
	return c.next.List(ctx)
}

// Count passes through without instrumentation.
func (c *contactRepositoryWithMetrics) Count(ctx context.Context) int {
	return c.next.Count(ctx)
}

// Subscribe passes through without instrumentation.
func (c *contactRepositoryWithMetrics) Subscribe(listener ChangeListener) {
	c.next.Subscribe(listener)
}
