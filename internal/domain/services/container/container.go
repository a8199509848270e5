package container

import (
	"context"
	"sync"
	"time"

	"hostel-http-service/internal/domain/services"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	sessionStore services.InterfaceSessionStore
	credentials  services.CredentialVerifier
	federated    services.InterfaceFederatedVerifier

	// 业务服务
	authService     services.InterfaceAuthService
	profileService  services.InterfaceProfileService
	adminService    services.InterfaceAdminService
	residentService services.InterfaceResidentService
	staffService    services.InterfaceStaffService
	visitService    services.InterfaceVisitService
	securityService services.InterfaceSecurityService
	reportService   services.InterfaceReportService

	mu sync.RWMutex
}

// Option overrides a collaborator before the services are built.
type Option func(*ServiceContainer)

// WithCredentialVerifier replaces the bcrypt credential hook.
func WithCredentialVerifier(v services.CredentialVerifier) Option {
	return func(c *ServiceContainer) { c.credentials = v }
}

// WithFederatedVerifier replaces the Google ID token verifier.
func WithFederatedVerifier(v services.InterfaceFederatedVerifier) Option {
	return func(c *ServiceContainer) { c.federated = v }
}

// WithSessionStore replaces the session store.
func WithSessionStore(s services.InterfaceSessionStore) Option {
	return func(c *ServiceContainer) { c.sessionStore = s }
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, opts ...Option) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("redis ping failed: %v, falling back to in-memory sessions", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	for _, opt := range opts {
		opt(container)
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	jwtService, err := services.NewJWTService(c.config)
	if err != nil {
		panic(err)
	}
	c.jwtService = jwtService

	if c.credentials == nil {
		c.credentials = services.NewBcryptCredentials(0)
	}
	if c.federated == nil {
		c.federated = services.NewGoogleVerifier()
	}
	if c.sessionStore == nil {
		c.sessionStore = services.NewSessionStore(c.config, c.redis)
	}

	c.authService = services.NewAuthService(c.db, c.config, c.jwtService, c.credentials, c.federated)
	c.profileService = services.NewProfileService(c.db, c.config)
	c.adminService = services.NewAdminService(c.db, c.config)
	c.residentService = services.NewResidentService(c.db, c.config)
	c.staffService = services.NewStaffService(c.db, c.config)
	c.visitService = services.NewVisitService(c.db, c.config)
	c.securityService = services.NewSecurityService(c.db, c.config)
	c.reportService = services.NewReportService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "session":
		return c.sessionStore
	case "credentials":
		return c.credentials
	case "auth":
		return c.authService
	case "profile":
		return c.profileService
	case "admin":
		return c.adminService
	case "resident":
		return c.residentService
	case "staff":
		return c.staffService
	case "visit":
		return c.visitService
	case "security":
		return c.securityService
	case "report":
		return c.reportService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the configuration the services were built with.
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}
