package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
)

type CompanyRouteConfig struct {
	CompanyHandler *handlers.CompanyHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupCompanyRoutes configures /companies. Reads are scoped by the use case;
// writes are privileged only.
func SetupCompanyRoutes(engine *gin.Engine, cfg *CompanyRouteConfig) {
	companies := engine.Group("/companies")
	companies.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimiter.Limit())
	{
		companies.GET("", cfg.CompanyHandler.ListCompanies)
		companies.POST("", middleware.RequirePrivileged(), cfg.CompanyHandler.CreateCompany)
		companies.GET("/:sid", cfg.CompanyHandler.GetCompany)
		companies.PATCH("/:sid", middleware.RequirePrivileged(), cfg.CompanyHandler.UpdateCompany)
	}
}
