// Package domain defines core cryptographic domain models for envelope encryption.
// Implements root key → KEK → per-scope DEK derivation with AESGCM and ChaCha20 support.
package domain

import (
	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Cryptographic operation errors.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid (must be 32 bytes).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates AEAD verification failed: wrong key, wrong AAD, or a
	// tampered ciphertext/nonce.
	ErrDecryptionFailed = errors.Wrap(errors.ErrMACMismatch, "decryption failed")

	// ErrInvalidRootKey indicates the supplied root key is not 32 bytes once base64-decoded.
	ErrInvalidRootKey = errors.Wrap(errors.ErrInvalidInput, "root key must be 32 bytes")

	// ErrRootKeyAlreadyInitialized indicates init ran a second time.
	ErrRootKeyAlreadyInitialized = errors.Wrap(errors.ErrAlreadyExists, "root key metadata already initialized")

	// ErrRootKeyNotInitialized indicates an operation requiring RootKeyMeta ran before init.
	ErrRootKeyNotInitialized = errors.Wrap(errors.ErrNotFound, "root key metadata not initialized")

	// ErrDekNotFound indicates no DEK row exists for the requested (org, scope[, version]).
	ErrDekNotFound = errors.Wrap(errors.ErrNotFound, "dek not found")

	// ErrDekShape indicates a decrypted DEK was not exactly 32 bytes.
	ErrDekShape = errors.Wrap(errors.ErrDekShape, "decrypted dek is not 32 bytes")
)
