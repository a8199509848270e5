package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Messages are safe to show to users.
var (
	ErrAccountNotFound     = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrPendingApproval     = errors.New("your account is pending admin approval")
	ErrAlreadyOnboarded    = errors.New("account has already been onboarded")
	ErrRoleTransition      = errors.New("this role change is not allowed")
	ErrNotOnboarded        = errors.New("account has not completed onboarding")
	ErrNotLinkedToProperty = errors.New("user not linked to any property")

	ErrPropertyRequired = errors.New("property selection is required")
	ErrPropertyNotFound = errors.New("property not found")

	ErrResidentNotFound = errors.New("resident not found")
	ErrResidentExists   = errors.New("resident already exists")
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffExists      = errors.New("staff member already exists")
	ErrManagerNotFound  = errors.New("manager not found")

	ErrVisitNotFound        = errors.New("visit request not found")
	ErrDuplicateVisit       = errors.New("a pending visit request already uses this visitor username")
	ErrInvalidVisitStatus   = errors.New("unknown visit status")
	ErrVisitTransition      = errors.New("visit request cannot move to that status")
	ErrVerificationNotFound = errors.New("no verification found for this visitor")
	ErrVisitorDetailsExist  = errors.New("visitor details already recorded for this visit")

	ErrFederatedNotConfigured = errors.New("Google Client ID is not configured on the server")
	ErrFederatedTokenInvalid  = errors.New("invalid Google ID token")
	ErrFederatedAdminUnknown  = errors.New("no manager account found for this email, please register your building first")
	ErrFederatedUnavailable   = errors.New("Google sign-in is temporarily unavailable")

	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError names the field that collided with an existing record.
type ConflictError struct {
	Err   error
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s already in use", e.Err.Error(), e.Field)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
