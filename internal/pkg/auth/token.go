package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid auth token")

// TokenVerifier checks admin bearer tokens.
type TokenVerifier interface {
	Verify(token string) error
}

// BcryptVerifier keeps only a bcrypt hash of the configured token.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier hashes token with the given cost. Zero selects bcrypt.DefaultCost.
func NewBcryptVerifier(token string, cost int) (*BcryptVerifier, error) {
	if token == "" {
		return nil, errors.New("admin token must not be empty")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(digest(token), cost)
	if err != nil {
		return nil, err
	}
	return &BcryptVerifier{hash: hash}, nil
}

// Verify returns ErrInvalidToken unless token matches.
func (v *BcryptVerifier) Verify(token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, digest(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// bcrypt truncates input at 72 bytes, so long tokens are hashed first.
func digest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return []byte(hex.EncodeToString(sum[:]))
}
