// Package auth implements password digest generation and verification.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltLength is the number of random salt bytes baked into each digest.
	SaltLength = 16

	method     = "pbkdf2"
	hashName   = "sha256"
	iterations = 600_000
	keyLength  = 32
)

// HashPassword derives a salted, iterated digest of plaintext. The stored
// form is "pbkdf2:sha256:<iterations>$<salt-hex>$<key-hex>" so the algorithm
// can be swapped later without invalidating existing rows.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s:%s:%d$%s$%s",
		method, hashName, iterations,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// Comparison is constant-time. A malformed digest or an unknown algorithm
// tag verifies as false; this function never returns an error or panics
// into the caller's control flow.
func VerifyPassword(plaintext, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 3 {
		return false
	}

	header := strings.Split(parts[0], ":")
	if len(header) != 3 || header[0] != method || header[1] != hashName {
		return false
	}

	iter, err := strconv.Atoi(header[2])
	if err != nil || iter <= 0 {
		return false
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}

	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), salt, iter, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
