package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
)

type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	// RateLimiter guards both endpoints with the login budget.
	RateLimiter *middleware.RateLimiter
}

// SetupAuthRoutes mounts the token endpoints; they are the only API routes
// reachable without a bearer token.
func SetupAuthRoutes(r gin.IRouter, cfg *AuthRouteConfig) {
	auth := r.Group("/auth", cfg.RateLimiter.Limit())
	auth.POST("/login", cfg.AuthHandler.Login)
	auth.POST("/refresh", cfg.AuthHandler.RefreshToken)
}
