package domain

import (
	"github.com/allisson/contacts/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. Availability and corruption
// conditions get their own roots because neither maps onto an input problem:
// both are handled by degrading behavior instead of failing the request.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305)
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// Keys must be exactly 32 bytes (256 bits) for both AES-256-GCM and
	// ChaCha20-Poly1305. This error is returned when key material of a
	// different length is provided or loaded from the key slot.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Invalid nonce provided
	//   - Corrupted encrypted data
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrCryptoUnavailable indicates no usable encryption key exists.
	//
	// Raised when encryption is disabled by configuration, the key slot is
	// unreadable or holds a corrupt record, or key generation failed. Callers
	// degrade to plaintext passthrough instead of aborting the operation.
	ErrCryptoUnavailable = errors.New("encryption unavailable")

	// ErrCorruptData indicates stored data could not be decoded.
	//
	// Raised when a persisted value survives retrieval but fails decryption
	// or deserialization. Callers recover by discarding the value; the
	// condition is logged, never surfaced to API callers.
	ErrCorruptData = errors.New("corrupt stored data")
)
