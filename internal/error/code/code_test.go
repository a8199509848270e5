package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	for c := range codeMessageMap {
		_, ok := codeStatusMap[c]
		assert.True(t, ok, "code %d has no status", c)
	}
	for c := range codeStatusMap {
		_, ok := codeMessageMap[c]
		assert.True(t, ok, "code %d has no message", c)
	}
}

func TestUnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "unknown error", GetMessage(-1))
	assert.Equal(t, StatusInternalServerError, GetStatus(-1))
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, StatusForbidden, GetStatus(ErrUserPendingApproval))
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrUserPasswordIncorrect))
	assert.Equal(t, StatusInternalServerError, GetStatus(ErrFederatedNotConfigured))
	assert.Equal(t, StatusInternalServerError, GetStatus(ErrFederatedUnavailable))
	assert.Equal(t, 110003, ErrFederatedUnavailable)
	assert.Equal(t, StatusConflict, GetStatus(ErrVisitDuplicate))
}
