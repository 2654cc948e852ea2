package domain

import "time"

// RootKeyInfo is the HKDF info string used to derive the KEK from the
// caller-supplied root key. Fixed for the lifetime of a deployment; changing
// it would make every previously derived scope key unrecoverable.
const RootKeyInfo = "envsync:root:kek:v1"

// RootKeyMeta is the singleton (id=1) record written once by init. The root
// key itself is never persisted, only the HKDF info string it was derived
// with and a fingerprint of the resulting KEK for out-of-band verification
// that a caller-supplied root key matches the one the deployment was
// initialized with.
type RootKeyMeta struct {
	ID              int64
	KekInfo         string
	KekFingerprint  string
	InitializedAt   time.Time
}
