// Package service provides the encryption layer for values at rest.
// Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), symmetric key
// lifecycle management, and an encrypted view over the key-value store.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/contacts/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyStore defines the interface for managing the symmetric encryption key lifecycle.
//
// A single key lives in a well-known slot of the key-value store. The key is
// created on first use and reused for every subsequent operation. A slot that
// cannot be read or fails validation makes the key unavailable; it is never
// regenerated over existing data, since that would orphan all prior ciphertext.
type KeyStore interface {
	// GetOrCreate returns the current encryption key, generating and persisting
	// one if the slot is empty. Returns ErrCryptoUnavailable when encryption is
	// disabled or no usable key can be obtained.
	GetOrCreate(ctx context.Context) (*cryptoDomain.Key, error)

	// Clear wipes the cached key material and deletes the persisted slot.
	Clear(ctx context.Context) error
}

// SecureStore defines the interface for reading and writing encrypted values.
//
// Values are JSON-encoded and sealed into a base64 envelope before storage.
// When no encryption key is available the store degrades to plaintext
// passthrough rather than failing, and Decrypt returns unreadable values
// unchanged so pre-encryption data stays loadable.
type SecureStore interface {
	// Encrypt seals plaintext into a storage envelope. Returns the plaintext
	// unchanged when no key is available.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt opens a storage envelope. Values that are not envelopes or fail
	// authentication are returned as stored.
	Decrypt(ctx context.Context, value string) string

	// Save JSON-encodes value, encrypts it, and writes it under key.
	Save(ctx context.Context, key string, value any) error

	// Load reads and decodes the value under key into dest. Returns false with
	// a nil error when the key is absent, and ErrCorruptData when the stored
	// value cannot be decoded.
	Load(ctx context.Context, key string, dest any) (bool, error)

	// Delete removes the value under key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error
}
