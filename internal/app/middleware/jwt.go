package middleware

import (
	"net/http"
	"strings"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/error/response"
	"hostel-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the gate.
const (
	ContextPrincipal = "principal"
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextScope     = "scope"
)

// SessionCookieName carries the opaque id of a legacy cookie session.
const SessionCookieName = "HOSTEL_SESSION"

type publicRoute struct {
	method string
	path   string
	prefix bool
}

// publicRoutes bypass authentication entirely.
var publicRoutes = []publicRoute{
	{method: http.MethodPost, path: "/api/auth/login"},
	{method: http.MethodPost, path: "/api/auth/register"},
	{method: http.MethodPost, path: "/api/auth/google"},
	{method: http.MethodGet, path: "/api/auth/properties"},
	{method: http.MethodPost, path: "/api/auth/session"},
	{method: http.MethodGet, path: "/api/ping"},
	{method: http.MethodGet, path: "/api/health"},
	{method: http.MethodGet, path: "/swagger/", prefix: true},
}

// IsPublic reports whether the request may skip authentication. Pre-flight
// requests are always public.
func IsPublic(method, path string) bool {
	if method == http.MethodOptions {
		return true
	}
	for _, r := range publicRoutes {
		if r.method != method {
			continue
		}
		if r.path == path || (r.prefix && strings.HasPrefix(path, r.path)) {
			return true
		}
	}
	return false
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	authHeader = strings.TrimSpace(authHeader)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return authHeader
}

// Authenticate derives the principal from the bearer token, or from the
// session cookie when no Authorization header is sent. It never rejects:
// an absent or invalid credential leaves the request anonymous and the
// route guards decide.
func Authenticate(jwtService services.InterfaceJWTService, sessions services.InterfaceSessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsPublic(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		token, source := extractToken(c.GetHeader("Authorization")), "header"
		if token == "" && sessions != nil {
			if sessionID, err := c.Cookie(SessionCookieName); err == nil && sessionID != "" {
				token, source = "", "cookie"
				if resolved, err := sessions.Resolve(c.Request.Context(), sessionID); err == nil {
					token = resolved
				}
			}
		}
		if token == "" && source == "header" {
			c.Next()
			return
		}

		principal, ok := jwtService.Authenticate(token)
		if !ok {
			logger.With(
				zap.String("path", c.Request.URL.Path),
				zap.String("source", source),
				zap.String("client_ip", c.ClientIP()),
			).Warn("invalid credential, continuing unauthenticated")
			c.Next()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Set(ContextAccountID, principal.AccountID)
		c.Set(ContextEmail, principal.Email)
		c.Set(ContextRole, principal.Role)
		c.Set(ContextScope, principal.Scope())

		logger.With(
			zap.Uint("account_id", principal.AccountID),
			zap.String("scope", principal.Scope()),
			zap.String("path", c.Request.URL.Path),
		).Info("authenticated request")
		c.Next()
	}
}

// CurrentPrincipal returns the principal established by Authenticate.
func CurrentPrincipal(c *gin.Context) (*services.Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*services.Principal)
	return p, ok
}

// RequirePrincipal rejects anonymous requests with 401.
func RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability rejects anonymous requests with 401 and principals whose
// role lacks capability with 403.
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !principal.Role.Can(capability) {
			logger.With(
				zap.Uint("account_id", principal.AccountID),
				zap.String("capability", string(capability)),
			).Warn("forbidden")
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
