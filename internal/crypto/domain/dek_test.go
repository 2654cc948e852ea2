package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDek(t *testing.T) {
	t.Run("dek initialization", func(t *testing.T) {
		now := time.Now()
		encryptedKey := []byte("encrypted-key")
		nonce := []byte("nonce")

		dek := Dek{
			ID:           1,
			OrgID:        "orgA",
			ScopeID:      "app1:env",
			Algorithm:    AESGCM,
			EncryptedKey: encryptedKey,
			Nonce:        nonce,
			Version:      1,
			CreatedAt:    now,
		}

		assert.Equal(t, "orgA", dek.OrgID)
		assert.Equal(t, "app1:env", dek.ScopeID)
		assert.Equal(t, AESGCM, dek.Algorithm)
		assert.Equal(t, encryptedKey, dek.EncryptedKey)
		assert.Equal(t, nonce, dek.Nonce)
		assert.Equal(t, 1, dek.Version)
		assert.Equal(t, now, dek.CreatedAt)
	})
}
