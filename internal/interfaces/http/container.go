package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/auth"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/config"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/permission"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases
// and handlers of the API, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Authorization
	enforcer *permission.Enforcer
	guard    *access.Guard

	// Shared services
	jwtSvc    *auth.JWTService
	hasher    *auth.BcryptPasswordHasher
	notifier  services.AssignmentNotifier
	recorder  *services.HistoryRecorder
	assembler *services.Assembler
	txMgr     *db.TransactionManager

	// Middlewares
	authMiddleware   *middleware.AuthMiddleware
	loginRateLimiter *middleware.RateLimiter
	apiRateLimiter   *middleware.RateLimiter
}

// NewContainer builds every component in dependency order. Redis is only
// connected when rate limiting is enabled.
func NewContainer(engine *gin.Engine, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: engine,
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.repos = newRepositories(gdb, log)
	c.initServices()
	c.ucs = c.initUseCases()
	c.hdlrs = c.initHandlers()

	return c, nil
}

// Shutdown releases the Redis client. The database is closed by the caller
// that opened it.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
