package audit

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// canonicalize builds the byte sequence entry_hash commits to: the raw
// concatenation of previous_hash, org_id, user_id, action, details, message
// followed by created_at_micros as little-endian bytes. No framing or
// length prefixing — this must match byte-for-byte what any other
// implementation of the chain produces.
func canonicalize(previousHash, orgID, userID, action, details, message string, createdAtMicros int64) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, previousHash...)
	buf = append(buf, orgID...)
	buf = append(buf, userID...)
	buf = append(buf, action...)
	buf = append(buf, details...)
	buf = append(buf, message...)

	micros := make([]byte, 8)
	binary.LittleEndian.PutUint64(micros, uint64(createdAtMicros))
	buf = append(buf, micros...)
	return buf
}

// computeEntryHash returns the lowercase-hex SHA-256 hash of the entry's
// canonical form.
func computeEntryHash(previousHash, orgID, userID, action, details, message string, createdAtMicros int64) string {
	sum := sha256.Sum256(canonicalize(previousHash, orgID, userID, action, details, message, createdAtMicros))
	return hex.EncodeToString(sum[:])
}
