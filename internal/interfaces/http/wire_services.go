package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	userUsecases "github.com/tenantdesk/helpdesk/internal/application/user/usecases"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/auth"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/config"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/email"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/permission"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/ratelimit"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/services/markdown"
)

const redisPingTimeout = 3 * time.Second

// initInfrastructure sets up the policy enforcer and, when rate limiting is
// enabled, the Redis client.
func (c *Container) initInfrastructure() error {
	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Auth.PolicyModelPath, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if _, err := enforcer.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	c.enforcer = enforcer
	c.guard = access.NewGuard(enforcer)

	if c.cfg.RateLimit.Enabled {
		c.redis = initRedis(c.cfg, c.log)
	} else {
		c.log.Infow("rate limiting disabled")
	}
	return nil
}

// initRedis connects to Redis. A failed ping is logged and the client is
// kept; the rate limiter allows requests while Redis is away.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unreachable, rate limits not enforced until it recovers",
			"addr", cfg.Redis.GetAddr(), "error", err)
	} else {
		log.Infow("redis connected", "addr", cfg.Redis.GetAddr())
	}
	return client
}

// initServices builds the cross-cutting services shared by several use
// cases and the request middlewares.
func (c *Container) initServices() {
	c.jwtSvc = auth.NewJWTService(
		c.cfg.Auth.JWT.Secret,
		c.cfg.Auth.JWT.AccessExpMinutes,
		c.cfg.Auth.JWT.RefreshExpDays,
	)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.notifier = email.NewNotifier(c.cfg.Email, c.log)
	c.recorder = services.NewHistoryRecorder(c.repos.historyRepo, c.repos.userRepo, c.repos.companyRepo)
	c.assembler = services.NewAssembler(
		c.repos.userRepo,
		c.repos.companyRepo,
		c.repos.timeEntryRepo,
		markdown.NewRenderer(),
	)
	c.txMgr = db.NewTransactionManager(c.db)

	authenticator := userUsecases.NewAuthenticateUseCase(c.repos.userRepo, c.jwtSvc)
	c.authMiddleware = middleware.NewAuthMiddleware(authenticator, c.log)

	backend := c.rateLimitBackend()
	rl := c.cfg.RateLimit
	c.loginRateLimiter = middleware.NewRateLimiter(backend, "login", ratelimit.Rule{
		Limit:  rl.LoginLimit,
		Window: time.Duration(rl.LoginWindowSeconds) * time.Second,
	}, c.log).ResetOnSuccess()
	c.apiRateLimiter = middleware.NewRateLimiter(backend, "api", ratelimit.Rule{
		Limit:  rl.APILimit,
		Window: time.Duration(rl.APIWindowSeconds) * time.Second,
	}, c.log)
}

// rateLimitBackend returns a nil interface when rate limiting is disabled,
// which makes the middleware pass requests through.
func (c *Container) rateLimitBackend() ratelimit.RateLimiter {
	if c.redis == nil {
		return nil
	}
	return ratelimit.NewRedisRateLimiter(c.redis)
}
