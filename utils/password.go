package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength      = 16
	pbkdf2Iters     = 390000
	derivedKeyBytes = 32
)

// HashPassword derives a PBKDF2-HMAC-SHA256 key from the password with a
// fresh random salt and returns base64(salt || key). Two calls for the same
// password produce different hashes.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %v", err)
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iters, derivedKeyBytes, sha256.New)
	return base64.StdEncoding.EncodeToString(append(salt, key...)), nil
}

// VerifyPassword re-derives the key with the salt extracted from the stored
// hash and compares in constant time. Any decode problem verifies as false.
func VerifyPassword(password, encoded string) bool {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) <= saltLength {
		return false
	}
	salt, digest := raw[:saltLength], raw[saltLength:]
	candidate := pbkdf2.Key([]byte(password), salt, pbkdf2Iters, len(digest), sha256.New)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
