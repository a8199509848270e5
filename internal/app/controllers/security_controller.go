package controllers

import (
	"net/http"

	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// SecurityController handles the guard-side visitor checks.
type SecurityController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSecurityController 创建一个新的安保控制器
func NewSecurityController(ctx *gin.Context, container *container.ServiceContainer) *SecurityController {
	return &SecurityController{
		Ctx:       ctx,
		Container: container,
	}
}

// VerifyVisitorRequest 表示访客核验请求
type VerifyVisitorRequest struct {
	ResidentName    string `json:"residentName" binding:"required" example:"Ann"`
	VisitorUsername string `json:"visitorUsername" binding:"required" example:"bob-0412"`
	VisitorPassword string `json:"visitorPassword" binding:"required" example:"7319"`
}

// VerifyVisitorResponse carries the outcome of a verification.
type VerifyVisitorResponse struct {
	Verified bool `json:"verified"`
}

// VisitorDetailsRequest 表示访客详细信息登记请求
type VisitorDetailsRequest struct {
	VisitorUsername string `json:"visitorUsername" binding:"required" example:"bob-0412"`
	Name            string `json:"name" binding:"required" example:"Bob"`
	Email           string `json:"email" binding:"required,email" example:"bob@example.com"`
	Phone           string `json:"phone" binding:"required" example:"0112223333"`
	IC              string `json:"ic" binding:"required" example:"950505-05-5555"`
	Gender          string `json:"gender" binding:"required" example:"Male"`
	Address         string `json:"address" binding:"required" example:"3 Jalan Kenanga"`
}

// VerifyVisitor 核验访客
// @Summary      Verify a visitor
// @Description  Checks the visitor's one-time password against the pending request. A wrong password is not an error: the answer is 200 with verified=false.
// @Tags         Security
// @Accept       json
// @Produce      json
// @Param        request body VerifyVisitorRequest true "visitor credentials"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=VerifyVisitorResponse}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /security/verify [post]
func (c *SecurityController) VerifyVisitor() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}
	var req VerifyVisitorRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	securityService := c.Container.GetService("security").(services.InterfaceSecurityService)
	verified, err := securityService.VerifyVisitor(p.AccountID, req.ResidentName, req.VisitorUsername, req.VisitorPassword)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	if !verified {
		c.Ctx.JSON(http.StatusOK, response.Response{
			Code:    code.ErrVerificationFailed,
			Message: code.GetMessage(code.ErrVerificationFailed),
			Data:    VerifyVisitorResponse{Verified: false},
		})
		return
	}
	response.SuccessWithMessage(c.Ctx, "Visitor verified", VerifyVisitorResponse{Verified: true})
}

// LogVisitorDetails 登记访客详细信息
// @Summary      Log visitor details
// @Description  Attaches contact details to the visit behind the latest verification of the visitor username.
// @Tags         Security
// @Accept       json
// @Produce      json
// @Param        request body VisitorDetailsRequest true "visitor details"
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=models.VisitorDetails}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /security/log-details [post]
func (c *SecurityController) LogVisitorDetails() {
	var req VisitorDetailsRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	securityService := c.Container.GetService("security").(services.InterfaceSecurityService)
	details, err := securityService.LogVisitorDetailsByUsername(req.VisitorUsername, services.VisitorDetailsInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		IC:      req.IC,
		Gender:  req.Gender,
		Address: req.Address,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusCreated, response.Response{
		Code:    code.ErrSuccess,
		Message: "Visitor details logged",
		Data:    details,
	})
}

// History 获取核验记录
// @Summary      Verification history
// @Description  Audit entries written by the guards of the caller's property, newest first.
// @Tags         Security
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.VerifiedVisitor}
// @Failure      400  {object}  ErrorResponse
// @Router       /security/history [get]
func (c *SecurityController) History() {
	propertyID, ok := memberProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	securityService := c.Container.GetService("security").(services.InterfaceSecurityService)
	entries, err := securityService.VerificationHistory(propertyID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, entries)
}

// HandleSecurityFunc 返回一个处理安保请求的Gin处理函数
func HandleSecurityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSecurityController(ctx, container)

		switch method {
		case "verify":
			controller.VerifyVisitor()
		case "logDetails":
			controller.LogVisitorDetails()
		case "history":
			controller.History()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
