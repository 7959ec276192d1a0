package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/infrastructure/ratelimit"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
)

// RateLimiter applies one rule per client IP. Keys are namespaced by scope
// so the login and API budgets are independent.
type RateLimiter struct {
	limiter        ratelimit.RateLimiter
	scope          string
	rule           ratelimit.Rule
	logger         logger.Interface
	resetOnSuccess bool
}

func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, rule ratelimit.Rule, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		rule:    rule,
		logger:  logger,
	}
}

// ResetOnSuccess clears the client's budget after any 2xx response, so only
// failed attempts accumulate. Used for login.
func (rl *RateLimiter) ResetOnSuccess() *RateLimiter {
	if rl != nil {
		rl.resetOnSuccess = true
	}
	return rl
}

// Limit fails open: when the backing store is unreachable the request
// proceeds.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rl.scope + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(ctx, key, rl.rule)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.rule.Window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		if used, err := rl.limiter.Count(ctx, key, rl.rule.Window); err == nil && rl.rule.Limit > 0 {
			c.Header(headerRateLimitLimit, strconv.Itoa(rl.rule.Limit))
			c.Header(headerRateLimitRemaining, strconv.FormatInt(max(int64(rl.rule.Limit)-used, 0), 10))
		}

		c.Next()

		if rl.resetOnSuccess && c.Writer.Status() < http.StatusMultipleChoices {
			if err := rl.limiter.Reset(ctx, key); err != nil {
				rl.logger.Warnw("failed to reset rate limit", "scope", rl.scope, "error", err)
			}
		}
	}
}
