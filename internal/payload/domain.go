// Package payload implements envelope-encrypted key/value storage shared by
// environment variables and secrets: identical row shape, identical
// lifecycle, distinguished only by the AAD/scope prefix each Kind supplies
// (see interface.go).
package payload

import "time"

// Record is the row shape shared by EncryptedEnvVar and EncryptedSecret:
// { org_id, app_id, env_type_id, key, ciphertext, nonce, key_version,
// timestamps }. The tuple (OrgID, AppID, EnvTypeID, Key) is unique within
// whichever table a Repository implementation backs.
type Record struct {
	ID         int64
	OrgID      string
	AppID      string
	EnvTypeID  string
	Key        string
	Ciphertext []byte
	Nonce      []byte
	KeyVersion int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// KV is a single decrypted entry as returned to callers by Get/List.
type KV struct {
	Key       string
	Value     string
	CreatedAt time.Time
}
