package domain

import "time"

// Dek is a wrapped data encryption key for one version of an (org, scope)
// keyspace.
//
// DEKs are append-only: rotation never mutates an existing row, it inserts
// Version = max(Version)+1 for that (OrgID, ScopeID) pair. The highest
// version is the current key. EncryptedKey holds the 32-byte DEK sealed
// under the scope key (itself derived from the KEK, see
// internal/crypto/service/kdf.go) with AAD "dek:<org>:<scope>" so a row
// copied to a different scope fails decryption instead of silently
// succeeding.
type Dek struct {
	ID           int64
	OrgID        string
	ScopeID      string
	Algorithm    Algorithm
	EncryptedKey []byte
	Nonce        []byte
	Version      int
	CreatedAt    time.Time
}
