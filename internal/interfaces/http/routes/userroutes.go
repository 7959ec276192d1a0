package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for profile and user management routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	ProfileHandler *handlers.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupUserRoutes configures /profile and the privileged /users API.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	profile := engine.Group("/profile")
	profile.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimiter.Limit())
	{
		profile.GET("", cfg.ProfileHandler.GetProfile)
		profile.PATCH("", cfg.ProfileHandler.UpdateProfile)
	}

	users := engine.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimiter.Limit(), middleware.RequirePrivileged())
	{
		users.POST("", cfg.UserHandler.CreateUser)
		users.GET("", cfg.UserHandler.ListUsers)
		users.GET("/:sid", cfg.UserHandler.GetUser)
		users.PATCH("/:sid", cfg.UserHandler.UpdateUser)
	}
}
