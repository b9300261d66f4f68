package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashAdminKey bcrypt-hashes the plaintext admin key an operator passes to
// `citeurl serve --admin-token`, for storage as Config.AdminTokenHash.
// Rejects keys longer than 72 bytes (bcrypt's maximum).
func HashAdminKey(key string) (string, error) {
	if len(key) > 72 {
		return "", fmt.Errorf("admin key exceeds maximum length of 72 bytes")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckAdminKey reports whether key is the one hashed into hash, per the
// X-Admin-Key path of requireAdmin.
func CheckAdminKey(key, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}
