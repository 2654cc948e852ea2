// Package gpg implements the GPG material vault: per (org, fingerprint), two
// independently encrypted blobs (private key, passphrase) sharing the scope
// "gpg" but distinct AADs.
package gpg

import "time"

// Material is one encrypted_gpg row.
type Material struct {
	ID                  int64
	OrgID               string
	Fingerprint         string
	EncryptedPrivateKey []byte
	PrivateKeyNonce     []byte
	EncryptedPassphrase []byte
	PassphraseNonce     []byte
	KeyVersion          int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
