package services

import (
	"testing"
	"time"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)
	return svc.(*JWTService)
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestGenerateAndAuthenticate(t *testing.T) {
	svc := newJWT(t)

	token, err := svc.GenerateToken(42, "a@x.com", models.RoleResident)
	require.NoError(t, err)

	principal, ok := svc.Authenticate(token)
	require.True(t, ok)
	assert.Equal(t, uint(42), principal.AccountID)
	assert.Equal(t, "a@x.com", principal.Email)
	assert.Equal(t, models.RoleResident, principal.Role)
	assert.Equal(t, "ROLE_RESIDENT", principal.Scope())
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	svc := newJWT(t)

	token, err := svc.GenerateToken(1, "a@x.com", models.RoleAdmin)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestExpiredTokenIsInvalid(t *testing.T) {
	svc := newJWT(t)
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := svc.GenerateToken(1, "a@x.com", models.RoleResident)
	require.NoError(t, err)

	svc.now = time.Now
	_, ok := svc.Authenticate(token)
	assert.False(t, ok)
}

func TestTokenRejectedUnderOtherSecret(t *testing.T) {
	svc := newJWT(t)
	token, err := svc.GenerateToken(1, "a@x.com", models.RoleResident)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.JWTSecretKey = "another-secret"
	other, err := NewJWTService(cfg)
	require.NoError(t, err)

	_, ok := other.Authenticate(token)
	assert.False(t, ok)
}

func TestUnsignedTokenRejected(t *testing.T) {
	svc := newJWT(t)
	claims := &JWTClaims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := svc.Authenticate(token)
	assert.False(t, ok)
}

func TestAuthenticateGarbage(t *testing.T) {
	svc := newJWT(t)
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, ok := svc.Authenticate(token)
		assert.False(t, ok, token)
	}
}

func TestMissingRoleClaimHasUserScope(t *testing.T) {
	svc := newJWT(t)
	token, err := svc.GenerateToken(5, "b@x.com", "")
	require.NoError(t, err)

	principal, ok := svc.Authenticate(token)
	require.True(t, ok)
	assert.Equal(t, models.Role(""), principal.Role)
	assert.Equal(t, models.ScopeUser, principal.Scope())
}
