// Package service implements the AEAD primitive and key derivation used by
// the envelope encryption layer.
//
// AEADManagerService is a factory for AEAD cipher instances. Only AES-256-GCM
// is wired into the envelope usecase (internal/crypto/usecase); the
// ChaCha20-Poly1305 implementation is kept behind the same AEAD interface as
// an alternate cipher a future scope could select without touching callers.
package service

import (
	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
)

// AEAD authenticates and encrypts data with associated data (AAD) that is
// bound to, but not hidden within, the ciphertext. Moving a ciphertext to a
// different AAD context must make Decrypt fail.
type AEAD interface {
	// Encrypt encrypts plaintext under a fresh random nonce and returns both.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt authenticates and decrypts ciphertext. Any mismatch between the
	// nonce, aad, or ciphertext used here and at Encrypt time returns
	// cryptoDomain.ErrDecryptionFailed.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD cipher instances for a given 32-byte key and
// algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}
