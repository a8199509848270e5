package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hostel-http-service/internal/app/middleware"
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"
	"hostel-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"100003"`
	Message string      `json:"message" example:"request validation failed"`
	Data    interface{} `json:"data"`
}

// serviceErrorCodes maps service sentinels to business codes. The sentinel's
// own message is what the caller sees.
var serviceErrorCodes = []struct {
	err  error
	code int
}{
	{services.ErrAccountNotFound, code.ErrUserNotFound},
	{services.ErrEmailTaken, code.ErrUserAlreadyExist},
	{services.ErrInvalidCredentials, code.ErrUserPasswordIncorrect},
	{services.ErrPendingApproval, code.ErrUserPendingApproval},
	{services.ErrAlreadyOnboarded, code.ErrUserAlreadyOnboarded},
	{services.ErrRoleTransition, code.ErrRoleTransitionForbidden},
	{services.ErrNotOnboarded, code.ErrUserNotOnboarded},
	{services.ErrNotLinkedToProperty, code.ErrPropertyRequired},
	{services.ErrPropertyRequired, code.ErrPropertyRequired},
	{services.ErrPropertyNotFound, code.ErrPropertyNotFound},
	{services.ErrResidentNotFound, code.ErrResidentNotFound},
	{services.ErrResidentExists, code.ErrResidentAlreadyExist},
	{services.ErrStaffNotFound, code.ErrStaffNotFound},
	{services.ErrStaffExists, code.ErrStaffAlreadyExist},
	{services.ErrManagerNotFound, code.ErrUserNotFound},
	{services.ErrVisitNotFound, code.ErrVisitNotFound},
	{services.ErrDuplicateVisit, code.ErrVisitDuplicate},
	{services.ErrInvalidVisitStatus, code.ErrVisitInvalidStatus},
	{services.ErrVisitTransition, code.ErrVisitTransition},
	{services.ErrVerificationNotFound, code.ErrVerificationNotFound},
	{services.ErrVisitorDetailsExist, code.ErrVisitorDetailsExist},
	{services.ErrFederatedNotConfigured, code.ErrFederatedNotConfigured},
	{services.ErrFederatedTokenInvalid, code.ErrFederatedTokenInvalid},
	{services.ErrFederatedAdminUnknown, code.ErrFederatedAdminUnknown},
	{services.ErrFederatedUnavailable, code.ErrFederatedUnavailable},
	{services.ErrSessionNotFound, code.ErrTokenInvalid},
}

// handleServiceError writes the response for err. Unknown errors are logged
// and answered with a generic database error.
func handleServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		response.ParamError(c, verr.Message)
		return
	}

	for _, m := range serviceErrorCodes {
		if errors.Is(err, m.err) {
			message := m.err.Error()
			var conflict *services.ConflictError
			if errors.As(err, &conflict) {
				message = conflict.Error()
			}
			response.FailWithMessage(c, m.code, message, nil)
			return
		}
	}

	logger.With(zap.String("path", c.Request.URL.Path), zap.Error(err)).Error("request failed")
	response.Fail(c, code.ErrDatabase, nil)
}

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.FailWithMessage(c, code.ErrBind, bindMessage(err), nil)
		return false
	}
	return true
}

func bindMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return "malformed JSON body"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("invalid value for field %s", typeErr.Field)
	}
	return code.GetMessage(code.ErrBind) + ": " + err.Error()
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// principal returns the authenticated caller, answering 401 when there is none.
func principal(c *gin.Context) (*services.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c)
		return nil, false
	}
	return p, true
}

// adminProperty resolves the property owned by the calling admin.
func adminProperty(c *gin.Context, container *container.ServiceContainer) (uint, bool) {
	p, ok := principal(c)
	if !ok {
		return 0, false
	}
	adminService := container.GetService("admin").(services.InterfaceAdminService)
	property, err := adminService.GetAdminProperty(p.AccountID)
	if err != nil {
		handleServiceError(c, err)
		return 0, false
	}
	return property.ID, true
}

// memberProperty resolves the property the caller is linked to, whatever the role.
func memberProperty(c *gin.Context, container *container.ServiceContainer) (uint, bool) {
	p, ok := principal(c)
	if !ok {
		return 0, false
	}
	profileService := container.GetService("profile").(services.InterfaceProfileService)
	propertyID, err := profileService.PropertyOf(p.AccountID)
	if err != nil {
		handleServiceError(c, err)
		return 0, false
	}
	return propertyID, true
}

// flexID accepts an id sent either as a JSON number or a numeric string.
// An empty string or null leaves it unset.
type flexID struct {
	Value *uint
	Raw   string
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := strings.Trim(string(data), `"`)
	raw = strings.TrimSpace(raw)
	f.Raw = raw
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		// left unset; the handler reports the invalid selection
		return nil
	}
	v := uint(id)
	f.Value = &v
	return nil
}

// Invalid reports a value that was sent but is not a usable id.
func (f *flexID) Invalid() bool {
	return f.Raw != "" && (f.Value == nil || *f.Value == 0)
}
