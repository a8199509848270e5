package middleware

import (
	"sync"
	"time"

	"hostel-http-service/internal/error/code"
	"hostel-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate       float64                   // 每秒允许的请求数
	Burst      int                       // 允许的突发请求数
	ExpiryTime time.Duration             // idle limiters are dropped after this long
	KeyFunc    func(*gin.Context) string // 自定义键生成函数
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,
	Burst:      5,
	ExpiryTime: 1 * time.Hour,
	KeyFunc:    func(c *gin.Context) string { return c.ClientIP() },
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per key.
type limiterSet struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	cfg      RateLimiterConfig
	now      func() time.Time
}

func newLimiterSet(cfg RateLimiterConfig) *limiterSet {
	return &limiterSet{
		limiters: make(map[string]*limiterEntry),
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.limiters[key]
	if !ok {
		s.evict(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(s.cfg.Rate), s.cfg.Burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// evict drops limiters idle for longer than ExpiryTime. Caller holds mu.
func (s *limiterSet) evict(now time.Time) {
	if s.cfg.ExpiryTime <= 0 {
		return
	}
	for key, entry := range s.limiters {
		if now.Sub(entry.lastSeen) > s.cfg.ExpiryTime {
			delete(s.limiters, key)
		}
	}
}

// RateLimiter 创建限流中间件
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultRateLimiterConfig.KeyFunc
	}

	set := newLimiterSet(cfg)
	return func(c *gin.Context) {
		if !set.allow(cfg.KeyFunc(c)) {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(r float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       r,
		Burst:      burst,
		ExpiryTime: time.Hour,
	})
}

// PathRateLimiter 按路径限流
func PathRateLimiter(r float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       r,
		Burst:      burst,
		ExpiryTime: time.Hour,
		KeyFunc:    func(c *gin.Context) string { return c.Request.URL.Path },
	})
}

// CombinedRateLimiter 按IP和路径组合限流
func CombinedRateLimiter(r float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       r,
		Burst:      burst,
		ExpiryTime: time.Hour,
		KeyFunc:    func(c *gin.Context) string { return c.ClientIP() + ":" + c.Request.URL.Path },
	})
}
