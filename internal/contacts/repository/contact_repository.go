package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	cryptoDomain "github.com/allisson/contacts/internal/crypto/domain"
	apperrors "github.com/allisson/contacts/internal/errors"
)

// CollectionKey is the store key holding the encrypted contact collection.
const CollectionKey = "contacts"

// contactRepository implements the ContactRepository interface.
//
// The mutex is held across the whole mutation protocol, including the
// persist call, so mutations are strictly serialized. Listeners are
// notified outside the lock and may call read operations freely.
type contactRepository struct {
	store    SecureStore
	initials func(string) string
	logger   *slog.Logger

	mu        sync.RWMutex
	contacts  []contactsDomain.Contact
	listeners []ChangeListener
}

// NewContactRepository creates a new repository over the given store.
//
// The initials function supplies the phonetic transliteration used by
// Filter; pass nil to disable phonetic matching.
func NewContactRepository(
	store SecureStore,
	initials func(string) string,
	logger *slog.Logger,
) ContactRepository {
	return &contactRepository{
		store:    store,
		initials: initials,
		logger:   logger,
	}
}

// Load replaces the in-memory collection with the stored one.
//
// Decoding is entry by entry: a malformed entry is logged and skipped
// without discarding its neighbors. A record set that cannot be decoded at
// all resets the collection to empty and removes the stored value, so the
// next load does not trip over the same corruption.
func (c *contactRepository) Load(ctx context.Context) error {
	var entries []json.RawMessage
	found, err := c.store.Load(ctx, CollectionKey, &entries)
	switch {
	case err == nil:
	case apperrors.Is(err, cryptoDomain.ErrCorruptData):
		c.logger.Warn("contact collection is unreadable, resetting to empty", "error", err)
		c.replace(nil)
		if delErr := c.store.Delete(ctx, CollectionKey); delErr != nil {
			c.logger.Warn("unreadable contact collection could not be removed", "error", delErr)
		}
		return nil
	default:
		return apperrors.Wrap(err, "load contact collection")
	}

	if !found {
		c.replace(nil)
		return nil
	}

	contacts := make([]contactsDomain.Contact, 0, len(entries))
	for _, entry := range entries {
		var contact contactsDomain.Contact
		if err := json.Unmarshal(entry, &contact); err != nil {
			c.logger.Warn("skipping undecodable contact entry", "error", err)
			continue
		}
		if !contact.Complete() {
			c.logger.Warn("skipping incomplete contact entry", "contact_id", contact.ID)
			continue
		}
		contacts = append(contacts, contact)
	}

	c.replace(contacts)
	return nil
}

// Add validates input, enforces the uniqueness invariant, and appends a new
// contact. The append is rolled back if the collection cannot be persisted.
func (c *contactRepository) Add(
	ctx context.Context,
	input *contactsDomain.ContactInput,
) (*contactsDomain.Contact, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.duplicateLocked(input.Name, input.Category, uuid.Nil) {
		c.mu.Unlock()
		return nil, contactsDomain.ErrDuplicateContact
	}

	contact := contactsDomain.Contact{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      input.Name,
		Phone:     input.Phone,
		Address:   input.Address,
		Category:  input.Category,
		CreatedAt: time.Now().UTC(),
	}
	c.contacts = append(c.contacts, contact)

	if err := c.persistLocked(ctx); err != nil {
		c.contacts = c.contacts[:len(c.contacts)-1]
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	c.notify(ctx)
	return &contact, nil
}

// Update replaces the mutable fields of an existing contact, preserving its
// ID and creation timestamp. The previous value is restored if the
// collection cannot be persisted.
func (c *contactRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	input *contactsDomain.ContactInput,
) (*contactsDomain.Contact, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil, contactsDomain.ErrContactNotFound
	}
	if c.duplicateLocked(input.Name, input.Category, id) {
		c.mu.Unlock()
		return nil, contactsDomain.ErrDuplicateContact
	}

	previous := c.contacts[idx]
	updated := previous
	updated.Name = input.Name
	updated.Phone = input.Phone
	updated.Address = input.Address
	updated.Category = input.Category
	c.contacts[idx] = updated

	if err := c.persistLocked(ctx); err != nil {
		c.contacts[idx] = previous
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	c.notify(ctx)
	return &updated, nil
}

// Delete removes the contact with the given ID. On persist failure the
// contact is reinserted at its original position, not appended, so the
// collection order is exactly what it was before the call.
func (c *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return contactsDomain.ErrContactNotFound
	}

	removed := c.contacts[idx]
	c.contacts = slices.Delete(c.contacts, idx, idx+1)

	if err := c.persistLocked(ctx); err != nil {
		c.contacts = slices.Insert(c.contacts, idx, removed)
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.notify(ctx)
	return nil
}

// Filter returns the contacts matching a category and keyword.
func (c *contactRepository) Filter(
	ctx context.Context,
	category contactsDomain.Category,
	keyword string,
) []contactsDomain.Contact {
	keyword = strings.TrimSpace(keyword)
	lower := strings.ToLower(keyword)

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]contactsDomain.Contact, 0, len(c.contacts))
	for _, contact := range c.contacts {
		if category != contactsDomain.CategoryAll && contact.Category != category {
			continue
		}
		if keyword != "" && !c.matches(contact, keyword, lower) {
			continue
		}
		result = append(result, contact)
	}

	return result
}

// matches reports whether the keyword hits any searchable field. Name,
// address and category match case-insensitively, both literally and through
// their phonetic initials. Phone matches verbatim so formatting characters
// in the query stay significant.
func (c *contactRepository) matches(contact contactsDomain.Contact, keyword, lower string) bool {
	if strings.Contains(strings.ToLower(contact.Name), lower) ||
		strings.Contains(strings.ToLower(contact.Address), lower) ||
		strings.Contains(strings.ToLower(string(contact.Category)), lower) {
		return true
	}
	if strings.Contains(contact.Phone, keyword) {
		return true
	}
	if c.initials == nil {
		return false
	}

	return strings.Contains(c.initials(contact.Name), lower) ||
		strings.Contains(c.initials(contact.Address), lower) ||
		strings.Contains(c.initials(string(contact.Category)), lower)
}

// List returns a copy of the full collection in insertion order.
func (c *contactRepository) List(ctx context.Context) []contactsDomain.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.contacts)
}

// Count returns the collection size.
func (c *contactRepository) Count(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.contacts)
}

// Subscribe registers a listener for successful mutations.
func (c *contactRepository) Subscribe(listener ChangeListener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, listener)
}

// replace swaps the whole collection.
func (c *contactRepository) replace(contacts []contactsDomain.Contact) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.contacts = contacts
}

// indexLocked returns the position of the contact with the given ID, or -1.
// Callers must hold the mutex.
func (c *contactRepository) indexLocked(id uuid.UUID) int {
	return slices.IndexFunc(c.contacts, func(contact contactsDomain.Contact) bool {
		return contact.ID == id
	})
}

// duplicateLocked reports whether another contact already uses the name
// within the category. The contact with the excluded ID is ignored so
// updates do not collide with themselves. Callers must hold the mutex.
func (c *contactRepository) duplicateLocked(
	name string,
	category contactsDomain.Category,
	exclude uuid.UUID,
) bool {
	for _, contact := range c.contacts {
		if contact.ID == exclude {
			continue
		}
		if contact.Name == name && contact.Category == category {
			return true
		}
	}

	return false
}

// persistLocked writes the full collection through the secure store.
// Callers must hold the mutex.
func (c *contactRepository) persistLocked(ctx context.Context) error {
	if err := c.store.Save(ctx, CollectionKey, c.contacts); err != nil {
		return apperrors.Wrapf(apperrors.ErrPersistence, "save contact collection: %v", err)
	}

	return nil
}

// notify invokes every listener in subscription order. Runs outside the
// mutation lock so listeners can read the repository.
func (c *contactRepository) notify(ctx context.Context) {
	c.mu.RLock()
	listeners := slices.Clone(c.listeners)
	c.mu.RUnlock()

	for _, listener := range listeners {
		listener(ctx)
	}
}
