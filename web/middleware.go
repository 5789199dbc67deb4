package web

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/domain"
	"github.com/extopy/extopy-go/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ViewerHeader carries the already-validated user id resolved by the
// authentication layer in front of this service.
const ViewerHeader = "X-Extopy-User"

const viewerKey = "viewer"

// ViewerMiddleware resolves the viewer context for the request. A
// missing or unknown identity yields an Anonymous context, never an
// error; the repositories decide what anonymity is allowed to do.
func ViewerMiddleware(database *db.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(viewerKey, resolveViewer(database, c.GetHeader(ViewerHeader)))
		c.Next()
	}
}

func resolveViewer(database *db.DB, header string) domain.Context {
	if header == "" {
		return domain.Anonymous{}
	}
	userId, err := uuid.Parse(header)
	if err != nil {
		return domain.Anonymous{}
	}
	err, user := database.ReadUserById(userId)
	if err != nil || user == nil {
		return domain.Anonymous{}
	}
	return domain.UserContext{UserId: user.Id}
}

// Viewer returns the context set by ViewerMiddleware.
func Viewer(c *gin.Context) domain.Context {
	if ctx, ok := c.Get(viewerKey); ok {
		return ctx.(domain.Context)
	}
	return domain.Anonymous{}
}

// RateLimiter holds rate limiters for different IP addresses
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a new rate limiter
// r is requests per second, b is burst size
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    b,
	}
}

// getLimiter returns the rate limiter for a given IP address
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[ip] = limiter
	}

	return limiter
}

// RateLimitMiddleware rejects requests over the per-IP budget.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// MetricsMiddleware counts finished requests by method and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.HttpRequests.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// MaxBytesMiddleware caps the request body size.
func MaxBytesMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
