package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptCredentials(t *testing.T) {
	creds := NewBcryptCredentials(bcrypt.MinCost)

	hash, err := creds.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)
	assert.True(t, creds.Verify(hash, "pw1"))
	assert.False(t, creds.Verify(hash, "pw2"))
	assert.False(t, creds.Verify("not-a-hash", "pw1"))
}

func TestBcryptDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptCredentials(0).Cost)
}
