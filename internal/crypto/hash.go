package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken возвращает hex-encoded SHA256 хеш opaque токена (refresh token).
// В БД хранится только хеш.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
