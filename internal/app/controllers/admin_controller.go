package controllers

import (
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetProperty()
	ResidentReport()
	SecurityReport()
	DashboardStats()
}

// AdminController 处理管理员的物业与报表请求
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getProperty":
			controller.GetProperty()
		case "residentReport":
			controller.ResidentReport()
		case "securityReport":
			controller.SecurityReport()
		case "dashboardStats":
			controller.DashboardStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// GetProperty 获取管理员的物业
// @Summary      Admin property
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.Property}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/property [get]
func (c *AdminController) GetProperty() {
	p, ok := principal(c.Ctx)
	if !ok {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	property, err := adminService.GetAdminProperty(p.AccountID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, property)
}

// ResidentReport 居民统计报表
// @Summary      Resident report
// @Description  Total residents of the admin's property with gender and approval tallies.
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.ResidentReport}
// @Failure      403  {object}  ErrorResponse
// @Router       /reports/residents [get]
func (c *AdminController) ResidentReport() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	report, err := reportService.ResidentReport(propertyID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, report)
}

// SecurityReport 安保人员统计报表
// @Summary      Security staff report
// @Description  Total security staff of the admin's property with a gender tally.
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.SecurityReport}
// @Failure      403  {object}  ErrorResponse
// @Router       /reports/security [get]
func (c *AdminController) SecurityReport() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	report, err := reportService.SecurityReport(propertyID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, report)
}

// DashboardStats 仪表盘统计
// @Summary      Dashboard stats
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=services.DashboardStats}
// @Failure      403  {object}  ErrorResponse
// @Router       /dashboard/stats [get]
func (c *AdminController) DashboardStats() {
	propertyID, ok := adminProperty(c.Ctx, c.Container)
	if !ok {
		return
	}

	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	stats, err := reportService.DashboardStats(propertyID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}
