// SPDX-License-Identifier: MIT
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// NormalizePassword trims and lowercases input the way the admin form does
func NormalizePassword(password string) string {
	return strings.ToLower(strings.TrimSpace(password))
}

// DigestPassword returns the hex SHA-256 digest of the normalized password
func DigestPassword(password string) string {
	sum := sha256.Sum256([]byte(NormalizePassword(password)))
	return hex.EncodeToString(sum[:])
}

// HashPassword hashes the normalized password using bcrypt
func HashPassword(password string) (string, error) {
	normalized := NormalizePassword(password)
	if normalized == "" {
		return "", errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword verifies a password against the configured hash, which is
// either a bcrypt hash or a hex SHA-256 digest. Both sides are compared in
// constant time.
func CheckPassword(password, hash string) bool {
	normalized := NormalizePassword(password)
	if normalized == "" || hash == "" {
		return false
	}

	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalized)) == nil
	}

	digest := DigestPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(hash))) == 1
}
