package controllers

import (
	"net/http"

	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// VisitController handles visit requests.
type VisitController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVisitController 创建一个新的访客申请控制器
func NewVisitController(ctx *gin.Context, container *container.ServiceContainer) *VisitController {
	return &VisitController{
		Ctx:       ctx,
		Container: container,
	}
}

// VisitRequest is the body of a new visitor invitation.
type VisitRequest struct {
	ResidentName      string `json:"residentName" example:"Ann"`
	VisitorName       string `json:"visitorName" binding:"required" example:"Bob"`
	VisitorIdentifier string `json:"visitorUsername" binding:"required" example:"bob-0412"`
	VisitorPassword   string `json:"visitorPassword" binding:"required" example:"7319"`
}

// VisitStatusRequest moves a request along the status table.
type VisitStatusRequest struct {
	RequestID uint   `json:"requestId" binding:"required" example:"3"`
	Status    string `json:"status" binding:"required,visit_status" example:"Rejected"`
}

// CreateVisitRequest 创建访客申请
// @Summary      Request a visit
// @Description  Registers a visitor with a one-time password. The visitor username must not be used by another pending request.
// @Tags         Visit
// @Accept       json
// @Produce      json
// @Param        request body VisitRequest true "visitor"
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=models.VisitRequest}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /visits/request [post]
func (c *VisitController) CreateVisitRequest() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}
	var req VisitRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	visitService := c.Container.GetService("visit").(services.InterfaceVisitService)
	visit, err := visitService.CreateVisitRequest(p.AccountID, services.VisitRequestInput{
		ResidentName:      req.ResidentName,
		VisitorName:       req.VisitorName,
		VisitorIdentifier: req.VisitorIdentifier,
		VisitorPassword:   req.VisitorPassword,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusCreated, response.Response{
		Code:    code.ErrSuccess,
		Message: "Visit request created",
		Data:    visit,
	})
}

// MyVisits 获取本人访客申请
// @Summary      My visit requests
// @Tags         Visit
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.VisitRequest}
// @Router       /visits/mine [get]
func (c *VisitController) MyVisits() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}

	visitService := c.Container.GetService("visit").(services.InterfaceVisitService)
	visits, err := visitService.ResidentVisits(p.AccountID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, visits)
}

// History 获取物业访客记录
// @Summary      Visit history
// @Description  Every visit request made by residents of the caller's property, newest first.
// @Tags         Visit
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.VisitRequest}
// @Failure      400  {object}  ErrorResponse
// @Router       /visits/history [get]
func (c *VisitController) History() {
	propertyID, ok := memberProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	visitService := c.Container.GetService("visit").(services.InterfaceVisitService)
	visits, err := visitService.PropertyHistory(propertyID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, visits)
}

// UpdateStatus 更新访客申请状态
// @Summary      Update visit status
// @Description  Allowed: Pending to Approved or Rejected, Approved to Closed. Other moves are refused.
// @Tags         Visit
// @Accept       json
// @Produce      json
// @Param        request body VisitStatusRequest true "new status"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.VisitRequest}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /visits/status [post]
func (c *VisitController) UpdateStatus() {
	propertyID, ok := memberProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	var req VisitStatusRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	visitService := c.Container.GetService("visit").(services.InterfaceVisitService)
	visit, err := visitService.UpdateStatus(propertyID, req.RequestID, req.Status)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Visit status updated", visit)
}

// HandleVisitFunc 返回一个处理访客申请请求的Gin处理函数
func HandleVisitFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVisitController(ctx, container)

		switch method {
		case "request":
			controller.CreateVisitRequest()
		case "mine":
			controller.MyVisits()
		case "history":
			controller.History()
		case "status":
			controller.UpdateStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
