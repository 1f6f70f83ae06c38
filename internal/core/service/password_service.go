package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances server load against offline crack resistance.
const bcryptCost = 12

// dummyPassword is hashed once at construction. Its digest is compared
// against whenever a login targets a nonexistent username, so the request
// still pays a full bcrypt comparison.
const dummyPassword = "quiz-api/dummy-credential/never-a-real-password"

// BcryptHasher implements ports.PasswordHasher with a fixed work factor.
type BcryptHasher struct {
	dummyDigest []byte
}

func NewBcryptHasher() (*BcryptHasher, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("precompute dummy digest: %w", err)
	}
	return &BcryptHasher{dummyDigest: digest}, nil
}

// Hash computes a salted adaptive hash of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncate(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests are a
// non-match, never an error.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(plaintext)) == nil
}

// VerifyDummy burns one bcrypt comparison against the precomputed digest.
// The result is deliberately discarded.
func (h *BcryptHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyDigest, truncate(plaintext))
}

// truncate caps input at bcrypt's 72-byte limit so Generate and Compare
// agree on long passwords instead of erroring.
func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}
