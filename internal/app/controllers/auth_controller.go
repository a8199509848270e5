package controllers

import (
	"net/http"

	"hostel-http-service/internal/app/middleware"
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Login()
	Register()
	GoogleLogin()
	ListProperties()
	OnboardResident()
	OnboardAdmin()
	CreateSession()
	DeleteSession()
}

// AuthController 处理身份验证与入驻请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// RegisterRequest 表示注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" binding:"required,min=1" example:"secret"`
	Role     string `json:"role" binding:"omitempty,role" example:"Resident"`
}

// GoogleLoginRequest carries the ID token from Google Sign-In.
type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
	Role       string `json:"role" binding:"omitempty,role" example:"Managing Staff"`
}

// ResidentOnboardingRequest 表示居民入驻请求
type ResidentOnboardingRequest struct {
	PropertyID flexID `json:"propertyId" swaggertype:"integer" example:"1"`
	Name       string `json:"name" binding:"required" example:"Ann"`
	Email      string `json:"email" binding:"omitempty,email" example:"ann@example.com"`
	Phone      string `json:"phone" binding:"required" example:"0123456789"`
	IC         string `json:"ic" binding:"required" example:"900101-01-1234"`
	Gender     string `json:"gender" binding:"required" example:"Female"`
	Address    string `json:"address" example:"12 Jalan Mawar"`
	Room       string `json:"room" binding:"required" example:"A-101"`
}

// AdminOnboardingRequest 表示管理员入驻请求
type AdminOnboardingRequest struct {
	PropertyName    string `json:"propertyName" binding:"required" example:"Sunrise Hostel"`
	PropertyAddress string `json:"propertyAddress" binding:"required" example:"1 Campus Road"`
	PropertyType    string `json:"propertyType" binding:"required" example:"Hostel"`
}

// Login 用户登录
// @Summary      Login
// @Description  Authenticate with email and password. Onboarded residents awaiting approval are refused.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "credentials"
// @Success      200  {object}  response.Response{data=services.AuthResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Login successful", result)
}

// Register 用户注册
// @Summary      Register
// @Description  Create an account. The role defaults to Resident. A token is issued so onboarding can follow.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "new account"
// @Success      201  {object}  response.Response{data=services.AuthResult}
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusCreated, response.Response{
		Code:    code.ErrSuccess,
		Message: "Registration successful",
		Data:    result,
	})
}

// GoogleLogin Google 登录
// @Summary      Google login
// @Description  Sign in with a Google ID token. Unknown emails are registered, except when the Managing Staff role is requested.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body GoogleLoginRequest true "Google credential"
// @Success      200  {object}  response.Response{data=services.AuthResult}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/google [post]
func (c *AuthController) GoogleLogin() {
	var req GoogleLoginRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.GoogleLogin(c.Ctx.Request.Context(), req.Credential, req.Role)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Login successful", result)
}

// ListProperties 获取物业列表
// @Summary      List properties
// @Description  Public list of properties a resident can pick during onboarding.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Property}
// @Router       /auth/properties [get]
func (c *AuthController) ListProperties() {
	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	properties, err := authService.ListProperties()
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, properties)
}

// OnboardResident 居民入驻
// @Summary      Resident onboarding
// @Description  Link the caller to a property with a resident profile. The account stays unapproved until the admin approves it.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ResidentOnboardingRequest true "resident profile"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.ResidentProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/onboarding [post]
func (c *AuthController) OnboardResident() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}
	var req ResidentOnboardingRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	if req.PropertyID.Invalid() {
		response.ParamError(c.Ctx, "Invalid property selection")
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	profile, err := authService.OnboardResident(p.AccountID, services.ResidentOnboardingInput{
		PropertyID: req.PropertyID.Value,
		Profile: services.ProfileFields{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			IC:      req.IC,
			Gender:  req.Gender,
			Address: req.Address,
		},
		Room: req.Room,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Onboarding completed, waiting for admin approval", profile)
}

// OnboardAdmin 管理员入驻
// @Summary      Admin onboarding
// @Description  Create the caller's property and make the account its Managing Staff. Returns a fresh token carrying the new role.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body AdminOnboardingRequest true "property"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.AdminOnboardingResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /auth/admin/onboarding [post]
func (c *AuthController) OnboardAdmin() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}
	var req AdminOnboardingRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.OnboardAdmin(p.AccountID, services.AdminOnboardingInput{
		PropertyName:    req.PropertyName,
		PropertyAddress: req.PropertyAddress,
		PropertyType:    req.PropertyType,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	middleware.PurgeCacheByPrefix("/api/auth/properties")
	response.SuccessWithMessage(c.Ctx, result.Message, result)
}

// CreateSession 创建 cookie 会话
// @Summary      Cookie session login
// @Description  Legacy browser login. Sets an HttpOnly cookie holding an opaque session id.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "credentials"
// @Success      200  {object}  response.Response{data=services.AuthResult}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /auth/session [post]
func (c *AuthController) CreateSession() {
	var req LoginRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	sessions := c.Container.GetService("session").(services.InterfaceSessionStore)
	sessionID, err := sessions.Create(c.Ctx.Request.Context(), result.Token)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	cfg := c.Container.GetConfig()
	c.Ctx.SetSameSite(http.SameSiteLaxMode)
	c.Ctx.SetCookie(middleware.SessionCookieName, sessionID, int(cfg.SessionTTL.Seconds()), "/", "", cfg.GinMode == gin.ReleaseMode, true)
	response.SuccessWithMessage(c.Ctx, "Login successful", result)
}

// DeleteSession 注销 cookie 会话
// @Summary      Cookie session logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/session [delete]
func (c *AuthController) DeleteSession() {
	if sessionID, err := c.Ctx.Cookie(middleware.SessionCookieName); err == nil && sessionID != "" {
		sessions := c.Container.GetService("session").(services.InterfaceSessionStore)
		if err := sessions.Revoke(c.Ctx.Request.Context(), sessionID); err != nil {
			handleServiceError(c.Ctx, err)
			return
		}
	}
	c.Ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	response.SuccessWithMessage(c.Ctx, "Logged out", nil)
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "register":
			controller.Register()
		case "google":
			controller.GoogleLogin()
		case "listProperties":
			controller.ListProperties()
		case "onboardResident":
			controller.OnboardResident()
		case "onboardAdmin":
			controller.OnboardAdmin()
		case "createSession":
			controller.CreateSession()
		case "deleteSession":
			controller.DeleteSession()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
