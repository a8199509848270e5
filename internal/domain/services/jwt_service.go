package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
)

const tokenIssuer = "hostel-http-service"

// InterfaceJWTService issues and validates bearer tokens.
type InterfaceJWTService interface {
	GenerateToken(accountID uint, email string, role models.Role) (string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	Authenticate(tokenString string) (*Principal, bool)
}

// Principal is the authenticated caller derived from a valid token.
type Principal struct {
	AccountID uint        `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

// Scope returns the coarse authorization scope of the principal's role.
func (p *Principal) Scope() string {
	return p.Role.Scope()
}

// JWTClaims is the token payload. The subject carries the account id.
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs tokens with HMAC-SHA256.
type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTService creates a token service. A missing secret is a startup error.
func NewJWTService(cfg *config.Config) (InterfaceJWTService, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWTService{
		secretKey: []byte(cfg.JWTSecretKey),
		issuer:    tokenIssuer,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// GenerateToken issues a token for the account. The role claim is omitted when empty.
func (s *JWTService) GenerateToken(accountID uint, email string, role models.Role) (string, error) {
	issuedAt := s.now()

	claims := &JWTClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(accountID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken checks the signature and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	parser := jwt.Parser{}
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	// jwt/v4 validates exp against its package clock; recheck with ours
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(s.now()) {
		return nil, errors.New("token is expired")
	}
	if claims.Email == "" || claims.Subject == "" {
		return nil, errors.New("token is missing required claims")
	}
	return claims, nil
}

// Authenticate converts a token into a principal. Any failure yields false.
func (s *JWTService) Authenticate(tokenString string) (*Principal, bool) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, false
	}
	role := models.Role(claims.Role)
	if !role.Valid() {
		role = ""
	}
	return &Principal{AccountID: uint(id), Email: claims.Email, Role: role}, true
}
