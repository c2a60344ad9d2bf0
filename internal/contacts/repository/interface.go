// Package repository maintains the authoritative in-memory contact
// collection and keeps persistent storage consistent with it. Every
// mutation follows the same protocol: validate, apply in memory, persist
// the full collection, and roll the in-memory change back if the persist
// fails. Memory and storage therefore never stay divergent after a
// completed call.
package repository

import (
	"context"

	"github.com/google/uuid"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
)

// SecureStore defines the storage operations the repository needs.
type SecureStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error
}

// ChangeListener is invoked after every successfully persisted mutation.
// Listeners run synchronously, in subscription order.
type ChangeListener func(ctx context.Context)

// ContactRepository defines the interface for the contact collection.
//
// Reads serve from memory and never touch storage. Mutations are
// serialized: at most one is in flight at a time, and each one has
// persisted (or rolled back) before the next begins.
type ContactRepository interface {
	// Load replaces the in-memory collection with the stored one. Entries
	// that cannot be decoded are dropped individually, and a wholly corrupt
	// record resets the collection to empty. Only storage unavailability is
	// an error.
	Load(ctx context.Context) error

	// Add validates input, enforces the name and category uniqueness
	// invariant, and appends a new contact with a fresh ID and creation
	// timestamp.
	Add(ctx context.Context, input *contactsDomain.ContactInput) (*contactsDomain.Contact, error)

	// Update replaces the mutable fields of the contact with the given ID,
	// preserving its ID and creation timestamp. The uniqueness check
	// excludes the contact itself.
	Update(ctx context.Context, id uuid.UUID, input *contactsDomain.ContactInput) (*contactsDomain.Contact, error)

	// Delete removes the contact with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Filter returns the contacts matching a category and keyword. The
	// category is exact-match, with CategoryAll as wildcard. A non-empty
	// keyword matches case-insensitively against name, address, category
	// and their phonetic initials, and verbatim against phone.
	Filter(ctx context.Context, category contactsDomain.Category, keyword string) []contactsDomain.Contact

	// List returns a copy of the full collection in insertion order.
	List(ctx context.Context) []contactsDomain.Contact

	// Count returns the collection size.
	Count(ctx context.Context) int

	// Subscribe registers a listener for successful mutations.
	Subscribe(listener ChangeListener)
}
