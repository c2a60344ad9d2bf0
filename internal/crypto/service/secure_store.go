package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"

	cryptoDomain "github.com/allisson/contacts/internal/crypto/domain"
	apperrors "github.com/allisson/contacts/internal/errors"
	"github.com/allisson/contacts/internal/kvstore"
)

// SecureStoreService implements the SecureStore interface.
//
// Writes JSON-encode the value, seal it with the current key, and store the
// result as a base64 envelope of nonce followed by ciphertext. Reads reverse
// the process. Two degradation paths keep the store usable without a key:
//
//   - Encrypt falls back to plaintext passthrough when no key is available,
//     so the application keeps working with encryption disabled.
//   - Decrypt returns values it cannot open exactly as stored, so plaintext
//     written before encryption was enabled still loads.
type SecureStoreService struct {
	store       kvstore.Store
	keyStore    KeyStore
	aeadManager AEADManager
	logger      *slog.Logger
}

// NewSecureStore creates a new SecureStoreService.
func NewSecureStore(
	store kvstore.Store,
	keyStore KeyStore,
	aeadManager AEADManager,
	logger *slog.Logger,
) *SecureStoreService {
	return &SecureStoreService{
		store:       store,
		keyStore:    keyStore,
		aeadManager: aeadManager,
		logger:      logger,
	}
}

// cipher resolves the current key and builds an AEAD cipher from it. The raw
// key bytes are zeroed once the cipher holds its own copy.
func (s *SecureStoreService) cipher(ctx context.Context) (AEAD, error) {
	key, err := s.keyStore.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(raw)

	return s.aeadManager.CreateCipher(raw, key.Algorithm)
}

// Encrypt seals plaintext into a storage envelope.
//
// When no encryption key is available the plaintext is returned unchanged,
// so callers store readable data instead of failing.
func (s *SecureStoreService) Encrypt(ctx context.Context, plaintext string) (string, error) {
	cipher, err := s.cipher(ctx)
	if err != nil {
		s.logger.Debug("encryption unavailable, storing plaintext", "error", err)
		return plaintext, nil
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", apperrors.Wrap(err, "encrypt value")
	}

	envelope := make([]byte, 0, len(nonce)+len(ciphertext))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, ciphertext...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt opens a storage envelope.
//
// Values that do not decode as an envelope, or that fail authentication, are
// returned exactly as stored. This keeps plaintext written before encryption
// was enabled readable, and leaves corruption handling to the caller's
// deserialization step.
func (s *SecureStoreService) Decrypt(ctx context.Context, value string) string {
	cipher, err := s.cipher(ctx)
	if err != nil {
		return value
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(data) <= cryptoDomain.NonceSize {
		return value
	}

	plaintext, err := cipher.Decrypt(data[cryptoDomain.NonceSize:], data[:cryptoDomain.NonceSize], nil)
	if err != nil {
		s.logger.Debug("stored value is not decryptable, returning as stored", "error", err)
		return value
	}

	return string(plaintext)
}

// Save JSON-encodes value, encrypts it, and writes it under key.
func (s *SecureStoreService) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrapf(err, "encode value for key %q", key)
	}

	encrypted, err := s.Encrypt(ctx, string(data))
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, key, encrypted); err != nil {
		return err
	}

	return nil
}

// Load reads and decodes the value under key into dest.
//
// Returns false with a nil error when the key is absent. A stored value that
// cannot be decoded into dest returns ErrCorruptData.
func (s *SecureStoreService) Load(ctx context.Context, key string, dest any) (bool, error) {
	record, err := s.store.Get(ctx, key)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	decrypted := s.Decrypt(ctx, record)
	if err := json.Unmarshal([]byte(decrypted), dest); err != nil {
		return false, apperrors.Wrapf(cryptoDomain.ErrCorruptData, "decode value for key %q", key)
	}

	return true, nil
}

// Delete removes the value under key. Absent keys are not an error.
func (s *SecureStoreService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
