package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/api/idtoken"
)

// InterfaceFederatedVerifier validates an identity-provider token and returns its email.
type InterfaceFederatedVerifier interface {
	VerifyEmail(ctx context.Context, idToken, audience string) (string, error)
}

// GoogleVerifier validates Google ID tokens against Google's published keys.
type GoogleVerifier struct {
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// NewGoogleVerifier creates a verifier backed by idtoken.Validate.
func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{validate: idtoken.Validate}
}

// VerifyEmail checks the signature, audience and expiry of idToken and
// returns the lower-cased email claim.
func (g *GoogleVerifier) VerifyEmail(ctx context.Context, idToken, audience string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", ErrFederatedTokenInvalid
	}
	payload, err := g.validate(ctx, idToken, audience)
	if err != nil {
		if unreachable(err) {
			return "", fmt.Errorf("%w: %v", ErrFederatedUnavailable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrFederatedTokenInvalid, err)
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("%w: email claim missing", ErrFederatedTokenInvalid)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return "", fmt.Errorf("%w: email not verified", ErrFederatedTokenInvalid)
	}
	return normalizeEmail(email), nil
}

// unreachable reports whether err came from fetching Google's signing keys
// rather than from the token itself.
func unreachable(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
