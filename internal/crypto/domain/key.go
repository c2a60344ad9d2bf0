package domain

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// KeyType is the key family identifier stored in the key slot.
//
// Only symmetric keys are used, so the value is always "oct" (octet
// sequence), matching the JSON Web Key convention for raw byte keys.
const KeyType = "oct"

// Key represents the symmetric encryption key persisted in the key slot.
//
// The key is stored as a small JSON record alongside the data it protects.
// The record deliberately follows the JSON Web Key shape for octet keys so
// the slot is self-describing:
//
//	{"kty":"oct","alg":"aes-gcm","k":"<base64url key material>"}
//
// Security considerations:
//   - Key material is exactly 32 bytes (256 bits), generated with a
//     cryptographically secure random source
//   - The slot record itself is stored in plaintext; protecting the store
//     that holds it is the deployment's responsibility
//   - A slot that fails validation is treated as corrupt and the key is
//     reported unavailable rather than silently regenerated, since a fresh
//     key would make all existing ciphertext unreadable
//
// Fields:
//   - Type: Key family, always "oct"
//   - Algorithm: The AEAD algorithm the key is bound to
//   - Material: Base64url-encoded raw key bytes
type Key struct {
	Type      string    `json:"kty"`
	Algorithm Algorithm `json:"alg"`
	Material  string    `json:"k"`
}

// NewKey generates a fresh 32-byte symmetric key bound to the given algorithm.
//
// The key material comes from crypto/rand and is immediately encoded to
// base64url for storage. The temporary raw buffer is zeroed before return.
//
// Parameters:
//   - algorithm: The AEAD algorithm the key will be used with
//
// Returns:
//   - A Key ready to be persisted to the key slot
//   - An error if the random source fails
func NewKey(algorithm Algorithm) (*Key, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate key material: %w", err)
	}

	key := &Key{
		Type:      KeyType,
		Algorithm: algorithm,
		Material:  base64.RawURLEncoding.EncodeToString(raw),
	}
	Zero(raw)

	return key, nil
}

// ParseKey decodes a key slot record and validates its contents.
//
// A record that fails JSON decoding, declares an unexpected key type, or
// carries material of the wrong size is rejected. Callers treat any error
// as a corrupt slot.
//
// Parameters:
//   - data: The raw slot record as stored
//
// Returns:
//   - The decoded Key if the record is valid
//   - ErrInvalidKeySize if the material does not decode to 32 bytes
//   - An error describing the defect otherwise
func ParseKey(data []byte) (*Key, error) {
	var key Key
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("decode key record: %w", err)
	}
	if key.Type != KeyType {
		return nil, fmt.Errorf("unexpected key type %q", key.Type)
	}
	if _, err := ParseAlgorithm(string(key.Algorithm)); err != nil {
		return nil, err
	}
	raw, err := base64.RawURLEncoding.DecodeString(key.Material)
	if err != nil {
		return nil, fmt.Errorf("decode key material: %w", err)
	}
	if len(raw) != KeySize {
		Zero(raw)
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(raw))
	}
	Zero(raw)

	return &key, nil
}

// Bytes decodes the key material back to raw bytes for cipher construction.
//
// The caller owns the returned slice and must zero it once the cipher has
// been built. Material that does not decode to exactly 32 bytes is rejected.
//
// Returns:
//   - The raw 32-byte key
//   - ErrInvalidKeySize if the decoded material has the wrong length
func (k *Key) Bytes() ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(k.Material)
	if err != nil {
		return nil, fmt.Errorf("decode key material: %w", err)
	}
	if len(raw) != KeySize {
		Zero(raw)
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(raw))
	}

	return raw, nil
}

// Marshal encodes the key as the JSON slot record.
func (k *Key) Marshal() ([]byte, error) {
	data, err := json.Marshal(k)
	if err != nil {
		return nil, fmt.Errorf("encode key record: %w", err)
	}

	return data, nil
}

// Clear overwrites the key material reference.
//
// Strings in Go cannot be zeroed in place, so this drops the reference and
// lets the runtime reclaim it. Cached raw bytes derived via Bytes are the
// caller's responsibility.
func (k *Key) Clear() {
	k.Material = ""
}
