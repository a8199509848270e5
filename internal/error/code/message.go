package code

var codeMessageMap = map[int]string{
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "not authenticated",
	ErrTooManyRequests: "too many requests, please try again later",
	ErrForbidden:       "you do not have permission to access this resource",

	ErrUserNotFound:            "user not found",
	ErrUserAlreadyExist:        "email already registered",
	ErrUserPasswordIncorrect:   "Invalid email or password",
	ErrUserPendingApproval:     "your account is pending admin approval",
	ErrUserAlreadyOnboarded:    "account has already been onboarded",
	ErrRoleTransitionForbidden: "this role change is not allowed",
	ErrUserNotOnboarded:        "account has not completed onboarding",

	ErrResidentNotFound:     "resident not found",
	ErrResidentAlreadyExist: "resident already exists",

	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",

	ErrPropertyNotFound: "property not found",
	ErrPropertyRequired: "property selection is required",

	ErrStaffNotFound:     "staff member not found",
	ErrStaffAlreadyExist: "staff member already exists",

	ErrVisitNotFound:        "visit request not found",
	ErrVisitDuplicate:       "a pending visit request already uses this visitor username",
	ErrVisitInvalidStatus:   "unknown visit status",
	ErrVisitTransition:      "visit request cannot move to that status",
	ErrVerificationFailed:   "Invalid credentials",
	ErrVerificationNotFound: "no verification found for this visitor",
	ErrVisitorDetailsExist:  "visitor details already recorded for this visit",

	ErrFederatedNotConfigured: "Google Client ID is not configured on the server",
	ErrFederatedTokenInvalid:  "invalid Google ID token",
	ErrFederatedAdminUnknown:  "no manager account found for this email, please register your building first",
	ErrFederatedUnavailable:   "Google sign-in is temporarily unavailable",
}

var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,

	ErrUserNotFound:            StatusNotFound,
	ErrUserAlreadyExist:        StatusBadRequest,
	ErrUserPasswordIncorrect:   StatusUnauthorized,
	ErrUserPendingApproval:     StatusForbidden,
	ErrUserAlreadyOnboarded:    StatusBadRequest,
	ErrRoleTransitionForbidden: StatusForbidden,
	ErrUserNotOnboarded:        StatusForbidden,

	ErrResidentNotFound:     StatusNotFound,
	ErrResidentAlreadyExist: StatusBadRequest,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	ErrPropertyNotFound: StatusNotFound,
	ErrPropertyRequired: StatusBadRequest,

	ErrStaffNotFound:     StatusNotFound,
	ErrStaffAlreadyExist: StatusBadRequest,

	ErrVisitNotFound:        StatusNotFound,
	ErrVisitDuplicate:       StatusConflict,
	ErrVisitInvalidStatus:   StatusBadRequest,
	ErrVisitTransition:      StatusBadRequest,
	ErrVerificationFailed:   StatusOK,
	ErrVerificationNotFound: StatusBadRequest,
	ErrVisitorDetailsExist:  StatusBadRequest,

	ErrFederatedNotConfigured: StatusInternalServerError,
	ErrFederatedTokenInvalid:  StatusUnauthorized,
	ErrFederatedAdminUnknown:  StatusNotFound,
	ErrFederatedUnavailable:   StatusInternalServerError,
}

// GetMessage returns the display message for code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
