package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword produces the stored digest for a password. The digest is
// deterministic on purpose: login resolves users by an exact
// (email, password_hash) lookup, so salted schemes cannot serve this path.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
