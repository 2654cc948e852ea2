package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
)

// scopeInfo builds the HKDF info string a per-(org,scope) key is bound to.
func scopeInfo(orgID, scopeID string) string {
	return fmt.Sprintf("envsync:dek:%s:%s", orgID, scopeID)
}

// DeriveKEK derives the 32-byte key-encryption key from a caller-supplied
// 32-byte root key using HKDF-SHA256 with no salt, info pinned to
// cryptoDomain.RootKeyInfo. The same root key always yields the same KEK.
func DeriveKEK(rootKey []byte) ([]byte, error) {
	return hkdfDerive(rootKey, nil, cryptoDomain.RootKeyInfo)
}

// DeriveScopeKey derives the per-(org, scope) key used to wrap that scope's
// DEK rows, from the KEK.
func DeriveScopeKey(kek []byte, orgID, scopeID string) ([]byte, error) {
	return hkdfDerive(kek, nil, scopeInfo(orgID, scopeID))
}

func hkdfDerive(secret, salt []byte, info string) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, salt, []byte(info))
	out := make([]byte, 32)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("hkdf derive: %w", err)
	}
	return out, nil
}

// Fingerprint returns the hex-encoded SHA-256 digest of key material, used to
// verify a caller-supplied root key matches the one a deployment was
// initialized with without ever storing the key itself.
func Fingerprint(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}
