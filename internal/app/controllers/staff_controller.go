package controllers

import (
	"net/http"

	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceStaffController 定义安保人员控制器接口
type InterfaceStaffController interface {
	GetStaffs()
	GetStaff()
	CreateStaff()
	UpdateStaff()
	DeleteStaff()
}

// StaffController 处理安保人员相关的请求
type StaffController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStaffController 创建一个新的安保人员控制器
func NewStaffController(ctx *gin.Context, container *container.ServiceContainer) *StaffController {
	return &StaffController{
		Ctx:       ctx,
		Container: container,
	}
}

// StaffRequest 表示创建安保人员请求
type StaffRequest struct {
	AccountID uint   `json:"accountId" binding:"required" example:"9"` // 必填，关联已注册的安保账号
	Name      string `json:"name" binding:"required" example:"Ben"`
	Email     string `json:"email" binding:"omitempty,email" example:"ben@example.com"`
	Phone     string `json:"phone" binding:"required" example:"0198765432"`
	IC        string `json:"ic" binding:"required" example:"880202-02-5678"`
	Gender    string `json:"gender" binding:"required" example:"Male"`
	Address   string `json:"address" example:"Guard house"`
}

// UpdateStaffRequest 表示更新安保人员请求，未提供的字段保持不变
type UpdateStaffRequest struct {
	Name    *string `json:"name" example:"Ben Tan"`
	Email   *string `json:"email" binding:"omitempty,email" example:"ben.tan@example.com"`
	Phone   *string `json:"phone" example:"0198765433"`
	IC      *string `json:"ic" example:"880202-02-5678"`
	Gender  *string `json:"gender" example:"Male"`
	Address *string `json:"address" example:"Guard house"`
}

// GetStaffs 获取安保人员列表
// @Summary      List security staff
// @Description  Security staff of the admin's property, optionally filtered by name or email.
// @Tags         Staff
// @Produce      json
// @Param        type query string false "name or email"
// @Param        value query string false "search text"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.SecurityStaffProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/staff [get]
func (c *StaffController) GetStaffs() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	staff, err := staffService.SearchStaff(propertyID, c.Ctx.Query("type"), c.Ctx.Query("value"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, staff)
}

// GetStaff 获取安保人员详情
// @Summary      Get security staff
// @Tags         Staff
// @Produce      json
// @Param        id path int true "staff id"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.SecurityStaffProfile}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/staff/{id} [get]
func (c *StaffController) GetStaff() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	staff, err := staffService.GetStaffByID(propertyID, id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, staff)
}

// CreateStaff 注册安保人员
// @Summary      Register security staff
// @Description  Link an existing Security Staff account to the admin's property. The profile is approved on creation.
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Param        request body StaffRequest true "staff profile"
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=models.SecurityStaffProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/staff [post]
func (c *StaffController) CreateStaff() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	var req StaffRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	staff, err := staffService.RegisterStaff(propertyID, services.RegisterStaffInput{
		AccountID: req.AccountID,
		Profile: services.ProfileFields{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			IC:      req.IC,
			Gender:  req.Gender,
			Address: req.Address,
		},
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusCreated, response.Response{
		Code:    code.ErrSuccess,
		Message: "Security staff registered",
		Data:    staff,
	})
}

// UpdateStaff 更新安保人员信息
// @Summary      Update security staff
// @Description  Partial update; omitted fields keep their value.
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Param        id path int true "staff id"
// @Param        request body UpdateStaffRequest true "changed fields"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.SecurityStaffProfile}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/staff/{id} [put]
func (c *StaffController) UpdateStaff() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	var req UpdateStaffRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	staff, err := staffService.UpdateStaff(propertyID, id, services.ProfileUpdate{
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
	response.SuccessWithMessage(c.Ctx, "Security staff updated", staff)
}

// DeleteStaff 删除安保人员
// @Summary      Delete security staff
// @Description  Deletes the profile and its account.
// @Tags         Staff
// @Produce      json
// @Param        id path int true "staff id"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/staff/{id} [delete]
func (c *StaffController) DeleteStaff() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	if err := staffService.DeleteStaff(propertyID, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Security staff deleted", nil)
}

// HandleStaffFunc 返回一个处理安保人员请求的Gin处理函数
func HandleStaffFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStaffController(ctx, container)

		switch method {
		case "getStaffs":
			controller.GetStaffs()
		case "getStaff":
			controller.GetStaff()
		case "createStaff":
			controller.CreateStaff()
		case "updateStaff":
			controller.UpdateStaff()
		case "deleteStaff":
			controller.DeleteStaff()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
