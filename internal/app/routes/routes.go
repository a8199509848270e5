package routes

import (
	"time"

	_ "hostel-http-service/docs"
	"hostel-http-service/internal/app/controllers"
	"hostel-http-service/internal/app/middleware"
	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/domain/services/container"
	"hostel-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, opts ...container.Option) *gin.Engine {
	// 初始化 Gin
	r := gin.New()
	if cfg.GinMode != gin.TestMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	// 添加 CORS 中间件
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient, opts...)

	// 认证中间件只建立身份，不拒绝请求
	jwtService := serviceContainer.GetService("jwt").(services.InterfaceJWTService)
	sessions := serviceContainer.GetService("session").(services.InterfaceSessionStore)
	r.Use(middleware.Authenticate(jwtService, sessions))

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer, cfg)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	cfg *config.Config,
) {
	// API 路由根路径
	api := r.Group("/api")
	api.Use(middleware.IPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// 注册公共路由
	registerPublicRoutes(api, container, cfg)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	cfg *config.Config,
) {
	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", middleware.PathRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), controllers.HandleHealthFunc(container, "health"))

	// 认证路由，登录类接口按IP和路径再限流一次
	authGroup := api.Group("/auth")
	login := middleware.CombinedRateLimiter(cfg.RateLimitRPS/2, cfg.RateLimitBurst/2)
	authGroup.POST("/login", login, controllers.HandleAuthFunc(container, "login"))
	authGroup.POST("/register", login, controllers.HandleAuthFunc(container, "register"))
	authGroup.POST("/google", login, controllers.HandleAuthFunc(container, "google"))
	authGroup.POST("/session", login, controllers.HandleAuthFunc(container, "createSession"))
	authGroup.DELETE("/session", controllers.HandleAuthFunc(container, "deleteSession"))
	authGroup.GET("/properties", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleAuthFunc(container, "listProperties"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("")
	auth.Use(middleware.RequirePrincipal())

	// 入驻路由
	auth.POST("/auth/onboarding", controllers.HandleAuthFunc(container, "onboardResident"))
	auth.POST("/auth/admin/onboarding", controllers.HandleAuthFunc(container, "onboardAdmin"))

	// 个人资料路由
	profileGroup := auth.Group("/profile")
	profileGroup.GET("/me", controllers.HandleProfileFunc(container, "getMine"))
	profileGroup.PUT("/me", controllers.HandleProfileFunc(container, "updateMine"))
	profileGroup.GET("/manager", middleware.RequireCapability(models.CapViewManager), controllers.HandleProfileFunc(container, "getManager"))
	profileGroup.GET("/:id", middleware.RequireCapability(models.CapManageResidents), controllers.HandleProfileFunc(container, "getMember"))
	profileGroup.PUT("/:id", middleware.RequireCapability(models.CapManageResidents), controllers.HandleProfileFunc(container, "updateMember"))

	// 管理员路由
	adminGroup := auth.Group("/admin")
	adminGroup.GET("/property", middleware.RequireCapability(models.CapManageResidents), controllers.HandleAdminFunc(container, "getProperty"))

	residentGroup := adminGroup.Group("/residents")
	residentGroup.Use(middleware.RequireCapability(models.CapManageResidents))
	residentGroup.GET("", controllers.HandleResidentFunc(container, "getResidents"))
	residentGroup.GET("/:id", controllers.HandleResidentFunc(container, "getResident"))
	residentGroup.POST("", controllers.HandleResidentFunc(container, "createResident"))
	residentGroup.PUT("/:id", controllers.HandleResidentFunc(container, "updateResident"))
	residentGroup.POST("/:id/approve", controllers.HandleResidentFunc(container, "approveResident"))
	residentGroup.DELETE("/:id", controllers.HandleResidentFunc(container, "deleteResident"))

	staffGroup := adminGroup.Group("/staff")
	staffGroup.Use(middleware.RequireCapability(models.CapManageStaff))
	staffGroup.GET("", controllers.HandleStaffFunc(container, "getStaffs"))
	staffGroup.GET("/:id", controllers.HandleStaffFunc(container, "getStaff"))
	staffGroup.POST("", controllers.HandleStaffFunc(container, "createStaff"))
	staffGroup.PUT("/:id", controllers.HandleStaffFunc(container, "updateStaff"))
	staffGroup.DELETE("/:id", controllers.HandleStaffFunc(container, "deleteStaff"))

	// 报表路由
	reports := middleware.RequireCapability(models.CapViewReports)
	auth.GET("/reports/residents", reports, controllers.HandleAdminFunc(container, "residentReport"))
	auth.GET("/reports/security", reports, controllers.HandleAdminFunc(container, "securityReport"))
	auth.GET("/dashboard/stats", reports, controllers.HandleAdminFunc(container, "dashboardStats"))
	auth.GET("/dashboard/cache-stats", reports, controllers.HandleHealthFunc(container, "cacheStats"))

	// 访客申请路由
	visitGroup := auth.Group("/visits")
	visitGroup.POST("/request", middleware.RequireCapability(models.CapRequestVisit), controllers.HandleVisitFunc(container, "request"))
	visitGroup.GET("/mine", middleware.RequireCapability(models.CapViewOwnVisits), controllers.HandleVisitFunc(container, "mine"))
	visitGroup.GET("/history", middleware.RequireCapability(models.CapViewVisitHistory), controllers.HandleVisitFunc(container, "history"))
	visitGroup.POST("/status", middleware.RequireCapability(models.CapUpdateVisitStatus), controllers.HandleVisitFunc(container, "status"))

	// 安保路由
	securityGroup := auth.Group("/security")
	securityGroup.POST("/verify", middleware.RequireCapability(models.CapVerifyVisitor), controllers.HandleSecurityFunc(container, "verify"))
	securityGroup.POST("/log-details", middleware.RequireCapability(models.CapLogVisitorDetails), controllers.HandleSecurityFunc(container, "logDetails"))
	securityGroup.GET("/history", middleware.RequireCapability(models.CapViewVerificationHistory), controllers.HandleSecurityFunc(container, "history"))
}
