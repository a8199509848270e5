package controllers

import (
	"net/http"

	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceResidentController 定义居民控制器接口
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	CreateResident()
	UpdateResident()
	ApproveResident()
	DeleteResident()
}

// ResidentController 处理居民相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的居民控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest 表示居民请求
type ResidentRequest struct {
	AccountID uint   `json:"accountId" binding:"required" example:"7"` // 必填，关联已注册的居民账号
	Name      string `json:"name" binding:"required" example:"Ann"`
	Email     string `json:"email" binding:"omitempty,email" example:"ann@example.com"`
	Phone     string `json:"phone" binding:"required" example:"0123456789"`
	IC        string `json:"ic" binding:"required" example:"900101-01-1234"`
	Gender    string `json:"gender" binding:"required" example:"Female"`
	Address   string `json:"address" example:"12 Jalan Mawar"`
	Room      string `json:"room" binding:"required" example:"A-101"`
	Approved  bool   `json:"approved" example:"false"`
}

// UpdateResidentRequest 表示更新居民请求，未提供的字段保持不变
type UpdateResidentRequest struct {
	Name     *string `json:"name" example:"Ann Lee"`
	Email    *string `json:"email" binding:"omitempty,email" example:"ann.lee@example.com"`
	Phone    *string `json:"phone" example:"0123456780"`
	IC       *string `json:"ic" example:"900101-01-1234"`
	Gender   *string `json:"gender" example:"Female"`
	Address  *string `json:"address" example:"12 Jalan Mawar"`
	Room     *string `json:"room" example:"B-202"`
	Approved *bool   `json:"approved" example:"true"`
}

// ApprovalRequest toggles a resident's approval. An empty body approves.
type ApprovalRequest struct {
	Approved *bool `json:"approved" example:"true"`
}

// GetResidents 获取居民列表
// @Summary      List residents
// @Description  Residents of the admin's property, optionally filtered by name or email.
// @Tags         Resident
// @Produce      json
// @Param        type query string false "name or email"
// @Param        value query string false "search text"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.ResidentProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/residents [get]
func (c *ResidentController) GetResidents() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, err := residentService.SearchResidents(propertyID, c.Ctx.Query("type"), c.Ctx.Query("value"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, residents)
}

// GetResident 获取居民详情
// @Summary      Get resident
// @Tags         Resident
// @Produce      json
// @Param        id path int true "resident id"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.ResidentProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/residents/{id} [get]
func (c *ResidentController) GetResident() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(propertyID, id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// CreateResident 创建居民
// @Summary      Create resident
// @Description  Link an existing Resident account to the admin's property.
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        request body ResidentRequest true "resident profile"
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=models.ResidentProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/residents [post]
func (c *ResidentController) CreateResident() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	var req ResidentRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.CreateResident(propertyID, services.CreateResidentInput{
		AccountID: req.AccountID,
		Profile: services.ProfileFields{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			IC:      req.IC,
			Gender:  req.Gender,
			Address: req.Address,
		},
		Room:     req.Room,
		Approved: req.Approved,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusCreated, response.Response{
		Code:    code.ErrSuccess,
		Message: "Resident created",
		Data:    resident,
	})
}

// UpdateResident 更新居民信息
// @Summary      Update resident
// @Description  Partial update; omitted fields keep their value. Approval changes are mirrored onto the account.
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "resident id"
// @Param        request body UpdateResidentRequest true "changed fields"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.ResidentProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/residents/{id} [put]
func (c *ResidentController) UpdateResident() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	var req UpdateResidentRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.UpdateResident(propertyID, id, services.ResidentUpdate{
		ProfileUpdate: services.ProfileUpdate{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			IC:      req.IC,
			Gender:  req.Gender,
			Address: req.Address,
		},
		Room:     req.Room,
		Approved: req.Approved,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Resident updated", resident)
}

// ApproveResident 审批居民
// @Summary      Approve resident
// @Description  Sets the approval flag on the profile and the linked account in one transaction.
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "resident id"
// @Param        request body ApprovalRequest false "approval flag, defaults to true"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.ResidentProfile}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/residents/{id}/approve [post]
func (c *ResidentController) ApproveResident() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	approved := true
	if c.Ctx.Request.ContentLength > 0 {
		var req ApprovalRequest
		if !bindJSON(c.Ctx, &req) {
			return
		}
		if req.Approved != nil {
			approved = *req.Approved
		}
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.SetApproval(propertyID, id, approved)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	message := "Resident approved"
	if !approved {
		message = "Resident approval revoked"
	}
	response.SuccessWithMessage(c.Ctx, message, resident)
}

// DeleteResident 删除居民
// @Summary      Delete resident
// @Description  Deletes the profile and its account.
// @Tags         Resident
// @Produce      json
// @Param        id path int true "resident id"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/residents/{id} [delete]
func (c *ResidentController) DeleteResident() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.DeleteResident(propertyID, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Resident deleted", nil)
}

// HandleResidentFunc 返回一个处理居民请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "approveResident":
			controller.ApproveResident()
		case "deleteResident":
			controller.DeleteResident()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
