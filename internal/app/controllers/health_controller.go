package controllers

import (
	"hostel-http-service/internal/app/middleware"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"
	"hostel-http-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// Ping 健康检查端点
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Health 检查数据库连接
// @Summary      Health
// @Description  Pings the database.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /health [get]
func (h *HealthCheckController) Health(c *gin.Context) {
	pool := database.NewPool(h.Container.GetDB())
	if err := pool.HealthCheck(); err != nil {
		response.FailWithMessage(c, code.ErrDatabase, "database unreachable", gin.H{"status": "unhealthy"})
		return
	}

	stats, err := pool.Stats()
	if err != nil {
		response.FailWithMessage(c, code.ErrDatabase, "database unreachable", gin.H{"status": "unhealthy"})
		return
	}
	response.Success(c, gin.H{
		"status":   "healthy",
		"database": stats,
	})
}

// CacheStats 响应缓存统计
func (h *HealthCheckController) CacheStats(c *gin.Context) {
	response.Success(c, middleware.CacheStats())
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	controller := NewHealthCheckController(container)
	return func(ctx *gin.Context) {
		switch method {
		case "ping":
			controller.Ping(ctx)
		case "health":
			controller.Health(ctx)
		case "cacheStats":
			controller.CacheStats(ctx)
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
