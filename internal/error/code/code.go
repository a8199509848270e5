package code

// HTTP status codes used by the error table.
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// Common (100xxx).
const (
	ErrSuccess int = iota + 100000
	ErrUnknown
	ErrBind
	ErrValidation
	ErrTokenInvalid
	ErrTooManyRequests
	ErrForbidden
)

// Account and onboarding (101xxx).
const (
	ErrUserNotFound int = iota + 101000
	ErrUserAlreadyExist
	ErrUserPasswordIncorrect
	ErrUserPendingApproval
	ErrUserAlreadyOnboarded
	ErrRoleTransitionForbidden
	ErrUserNotOnboarded
)

// Residents (103xxx).
const (
	ErrResidentNotFound int = iota + 103000
	ErrResidentAlreadyExist
)

// Database (105xxx).
const (
	ErrDatabase int = iota + 105000
	ErrRecordNotFound
)

// Properties (106xxx).
const (
	ErrPropertyNotFound int = iota + 106000
	ErrPropertyRequired
)

// Security staff (107xxx).
const (
	ErrStaffNotFound int = iota + 107000
	ErrStaffAlreadyExist
)

// Visits and verification (108xxx).
const (
	ErrVisitNotFound int = iota + 108000
	ErrVisitDuplicate
	ErrVisitInvalidStatus
	ErrVisitTransition
	ErrVerificationFailed
	ErrVerificationNotFound
	ErrVisitorDetailsExist
)

// Federated login (110xxx).
const (
	ErrFederatedNotConfigured int = iota + 110000
	ErrFederatedTokenInvalid
	ErrFederatedAdminUnknown
	ErrFederatedUnavailable
)
