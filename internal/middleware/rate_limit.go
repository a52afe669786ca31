package middleware

import (
	"net/http"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/modules/common/httpx"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (c *client) touch() {
	c.mu.Lock()
	c.lastSeen = time.Now()
	c.mu.Unlock()
}

func (c *client) idleFor() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.lastSeen)
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			if value.(*client).idleFor() > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// RateLimit 单个路由组的限流参数
type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// AuthRateLimit 登录、注册接口的限流参数
func AuthRateLimit() RateLimit {
	cfg := config.Get().RateLimit
	return RateLimit{Enabled: cfg.Enabled, RPS: cfg.AuthRPS, Burst: cfg.AuthBurst}
}

// UploadRateLimit 图库上传接口的限流参数
func UploadRateLimit() RateLimit {
	cfg := config.Get().RateLimit
	return RateLimit{Enabled: cfg.Enabled, RPS: cfg.UploadRPS, Burst: cfg.UploadBurst}
}

// RateLimitMiddleware 按客户端 IP 限流，每次请求重新读取参数以支持配置热更新
func RateLimitMiddleware(limits func() RateLimit) gin.HandlerFunc {
	// 同一个路由组共用一个 IPRateLimiter 实例
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		current := limits()
		if !current.Enabled {
			c.Next()
			return
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(current.RPS), current.Burst)
		})

		l := limiter.getLimiter(c.ClientIP())

		// 配置变更时同步到已有 limiter
		if l.Limit() != rate.Limit(current.RPS) {
			l.SetLimit(rate.Limit(current.RPS))
		}
		if l.Burst() != current.Burst {
			l.SetBurst(current.Burst)
		}

		if !l.Allow() {
			httpx.AbortWithError(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			return
		}
		c.Next()
	}
}
