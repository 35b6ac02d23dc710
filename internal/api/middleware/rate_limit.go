package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"social-service/internal/metrics"
	"social-service/internal/services"
	"social-service/internal/utils"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles API traffic. It is independent of the friend request
// limit, which is enforced from the ledger.
type RateLimitMiddleware struct {
	limiter services.RateLimiter
}

func NewRateLimitMiddleware(limiter services.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// RateLimit limits authenticated callers per user and route group.
func (rm *RateLimitMiddleware) RateLimit(scope string, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserID(c)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", err.Error())
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%d", scope, userID)
		rm.check(c, key, scope, requests, window)
	}
}

// RateLimitIP limits public routes by client address.
func (rm *RateLimitMiddleware) RateLimitIP(scope string, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit_ip:%s:%s", scope, c.ClientIP())
		rm.check(c, key, scope, requests, window)
	}
}

func (rm *RateLimitMiddleware) check(c *gin.Context, key, scope string, requests int, window time.Duration) {
	if requests <= 0 {
		c.Next()
		return
	}

	allowed, err := rm.limiter.CheckRateLimit(c.Request.Context(), key, requests, window)
	if err != nil {
		// Fail open.
		slog.Warn("Rate limit check failed, allowing request", "key", key, "error", err)
		c.Next()
		return
	}

	if !allowed {
		metrics.RecordRateLimitRejection(scope)
		response.Error(c, http.StatusTooManyRequests, response.CodeTooMany, "",
			fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window))
		return
	}

	c.Next()
}
