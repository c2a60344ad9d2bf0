package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/contacts/internal/crypto/domain"
	apperrors "github.com/allisson/contacts/internal/errors"
	"github.com/allisson/contacts/internal/kvstore"
)

// KeySlot is the reserved store key holding the encryption key record.
const KeySlot = "encryption_key"

// KeyStoreService implements the KeyStore interface over a key-value store.
//
// The service lazily resolves a single symmetric key: the first call loads it
// from the key slot or generates a fresh one, and every later call returns the
// cached copy. Concurrent first calls are collapsed into one slot read through
// singleflight so only one key is ever generated.
//
// Failure handling follows two rules:
//   - A slot that exists but fails validation makes the key unavailable.
//     The slot is left untouched and no replacement key is generated,
//     because a new key would make existing ciphertext unreadable.
//   - A freshly generated key that cannot be persisted is still returned
//     and cached, so the current session keeps encrypting. The write
//     failure is logged as a warning.
type KeyStoreService struct {
	store     kvstore.Store
	algorithm cryptoDomain.Algorithm
	enabled   bool
	logger    *slog.Logger
	group     singleflight.Group

	mu  sync.RWMutex
	key *cryptoDomain.Key
}

// NewKeyStore creates a new KeyStoreService.
func NewKeyStore(
	store kvstore.Store,
	algorithm cryptoDomain.Algorithm,
	enabled bool,
	logger *slog.Logger,
) *KeyStoreService {
	return &KeyStoreService{
		store:     store,
		algorithm: algorithm,
		enabled:   enabled,
		logger:    logger,
	}
}

// GetOrCreate returns the current encryption key, generating and persisting
// one if the slot is empty.
//
// Returns ErrCryptoUnavailable when encryption is disabled, the slot holds a
// corrupt record, or the store cannot be read.
func (k *KeyStoreService) GetOrCreate(ctx context.Context) (*cryptoDomain.Key, error) {
	if !k.enabled {
		return nil, cryptoDomain.ErrCryptoUnavailable
	}

	k.mu.RLock()
	key := k.key
	k.mu.RUnlock()
	if key != nil {
		return key, nil
	}

	result, err, _ := k.group.Do(KeySlot, func() (any, error) {
		return k.loadOrGenerate(ctx)
	})
	if err != nil {
		return nil, err
	}

	return result.(*cryptoDomain.Key), nil
}

func (k *KeyStoreService) loadOrGenerate(ctx context.Context) (*cryptoDomain.Key, error) {
	// A racing call may have resolved the key while this one waited.
	k.mu.RLock()
	key := k.key
	k.mu.RUnlock()
	if key != nil {
		return key, nil
	}

	record, err := k.store.Get(ctx, KeySlot)
	switch {
	case err == nil:
		key, parseErr := cryptoDomain.ParseKey([]byte(record))
		if parseErr != nil {
			k.logger.Error("encryption key slot is corrupt", "error", parseErr)
			return nil, apperrors.Wrap(cryptoDomain.ErrCryptoUnavailable, "corrupt key slot")
		}
		k.cache(key)
		return key, nil

	case apperrors.Is(err, apperrors.ErrNotFound):
		key, genErr := cryptoDomain.NewKey(k.algorithm)
		if genErr != nil {
			return nil, apperrors.Wrap(cryptoDomain.ErrCryptoUnavailable, genErr.Error())
		}
		record, marshalErr := key.Marshal()
		if marshalErr != nil {
			return nil, apperrors.Wrap(cryptoDomain.ErrCryptoUnavailable, marshalErr.Error())
		}
		if setErr := k.store.Set(ctx, KeySlot, string(record)); setErr != nil {
			// The key still protects this session; only durability is lost.
			k.logger.Warn("encryption key could not be persisted", "error", setErr)
		}
		k.cache(key)
		return key, nil

	default:
		return nil, apperrors.Wrap(cryptoDomain.ErrCryptoUnavailable, err.Error())
	}
}

func (k *KeyStoreService) cache(key *cryptoDomain.Key) {
	k.mu.Lock()
	k.key = key
	k.mu.Unlock()
}

// Clear wipes the cached key material and deletes the persisted slot.
//
// After Clear the next GetOrCreate call generates a fresh key, so any
// ciphertext produced before the call becomes unreadable.
func (k *KeyStoreService) Clear(ctx context.Context) error {
	k.mu.Lock()
	if k.key != nil {
		k.key.Clear()
		k.key = nil
	}
	k.mu.Unlock()

	if err := k.store.Delete(ctx, KeySlot); err != nil {
		return apperrors.Wrap(err, "delete key slot")
	}

	return nil
}
