package controllers

import (
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceProfileController 定义个人资料控制器接口
type InterfaceProfileController interface {
	GetMyProfile()
	UpdateMyProfile()
	GetManager()
	GetMemberProfile()
	UpdateMemberProfile()
}

// ProfileController 处理个人资料相关的请求
type ProfileController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProfileController 创建一个新的个人资料控制器
func NewProfileController(ctx *gin.Context, container *container.ServiceContainer) *ProfileController {
	return &ProfileController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateProfileRequest 表示更新个人资料请求，未提供的字段保持不变
type UpdateProfileRequest struct {
	FullName     *string `json:"fullName" example:"Ann Lee"`
	Phone        *string `json:"phone" example:"0123456789"`
	Address      *string `json:"address" example:"12 Jalan Mawar"`
	ProfileImage *string `json:"profileImage" example:"https://cdn.example.com/a.png"`
}

func (r *UpdateProfileRequest) update() services.AccountUpdate {
	return services.AccountUpdate{
		FullName:     r.FullName,
		Phone:        r.Phone,
		Address:      r.Address,
		ProfileImage: r.ProfileImage,
	}
}

// GetMyProfile 获取当前用户资料
// @Summary      Current profile
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.ProfileView}
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/me [get]
func (c *ProfileController) GetMyProfile() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}

	profileService := c.Container.GetService("profile").(services.InterfaceProfileService)
	view, err := profileService.GetProfile(p.AccountID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, view)
}

// UpdateMyProfile 更新当前用户资料
// @Summary      Update current profile
// @Description  Partial update; omitted fields keep their value.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "changed fields"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.ProfileView}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/me [put]
func (c *ProfileController) UpdateMyProfile() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	profileService := c.Container.GetService("profile").(services.InterfaceProfileService)
	view, err := profileService.UpdateProfile(p.AccountID, req.update())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Profile updated", view)
}

// GetManager 获取物业管理员信息
// @Summary      Property manager
// @Description  Contact details of the admin who owns the caller's property.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.ManagerView}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/manager [get]
func (c *ProfileController) GetManager() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}

	profileService := c.Container.GetService("profile").(services.InterfaceProfileService)
	manager, err := profileService.GetManager(p.AccountID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, manager)
}

// GetMemberProfile 管理员查看成员资料
// @Summary      Member profile
// @Description  Admin view of an account linked to the admin's property.
// @Tags         Profile
// @Produce      json
// @Param        id path int true "account id"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.ProfileView}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{id} [get]
func (c *ProfileController) GetMemberProfile() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	view, err := adminService.GetMember(propertyID, id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, view)
}

// UpdateMemberProfile 管理员更新成员资料
// @Summary      Update member profile
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        id path int true "account id"
// @Param        request body UpdateProfileRequest true "changed fields"
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.ProfileView}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{id} [put]
func (c *ProfileController) UpdateMemberProfile() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	view, err := adminService.UpdateMember(propertyID, id, req.update())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.SuccessWithMessage(c.Ctx, "Profile updated", view)
}

// HandleProfileFunc 返回一个处理个人资料请求的Gin处理函数
func HandleProfileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProfileController(ctx, container)

		switch method {
		case "getMine":
			controller.GetMyProfile()
		case "updateMine":
			controller.UpdateMyProfile()
		case "getManager":
			controller.GetManager()
		case "getMember":
			controller.GetMemberProfile()
		case "updateMember":
			controller.UpdateMemberProfile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
