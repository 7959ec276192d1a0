package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/infrastructure/config"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/routes"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	engine := gin.New()
	container, err := NewContainer(engine, db, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Router{
		engine:    engine,
		container: container,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	r.engine.Use(middleware.Logger(c.log))
	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/version", c.hdlrs.healthHandler.Version)

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: c.hdlrs.authHandler,
		RateLimiter: c.loginRateLimiter,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:    c.hdlrs.userHandler,
		ProfileHandler: c.hdlrs.profileHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.apiRateLimiter,
	})

	routes.SetupCompanyRoutes(r.engine, &routes.CompanyRouteConfig{
		CompanyHandler: c.hdlrs.companyHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.apiRateLimiter,
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:    c.hdlrs.ticketHandler,
		CommentHandler:   c.hdlrs.commentHandler,
		TimeEntryHandler: c.hdlrs.timeEntryHandler,
		AuthMiddleware:   c.authMiddleware,
		RateLimiter:      c.apiRateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown releases resources held by the container.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
