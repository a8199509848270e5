package services

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier hashes and checks account passwords.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptCredentials is the default CredentialVerifier.
type BcryptCredentials struct {
	Cost int
}

// NewBcryptCredentials returns a verifier using cost, or bcrypt.DefaultCost when cost is 0.
func NewBcryptCredentials(cost int) *BcryptCredentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptCredentials{Cost: cost}
}

// Hash hashes password with bcrypt.
func (b *BcryptCredentials) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares password with a bcrypt hash.
func (b *BcryptCredentials) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
