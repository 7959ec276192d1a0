package http

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	userHandler    *handlers.UserHandler

	// Company
	companyHandler *handlers.CompanyHandler

	// Ticket
	ticketHandler    *ticketHandlers.TicketHandler
	commentHandler   *ticketHandlers.CommentHandler
	timeEntryHandler *ticketHandlers.TimeEntryHandler

	// Health
	healthHandler *handlers.HealthHandler
}

func (c *Container) initHandlers() *allHandlers {
	u := c.ucs
	return &allHandlers{
		authHandler:    handlers.NewAuthHandler(u.loginUC, u.refreshTokenUC, c.log),
		profileHandler: handlers.NewProfileHandler(u.profileUC, c.log),
		userHandler:    handlers.NewUserHandler(u.manageUsersUC, c.log),

		companyHandler: handlers.NewCompanyHandler(u.companyUC, c.log),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC,
			u.updateTicketUC,
			u.getTicketUC,
			u.listTicketsUC,
			u.deleteTicketUC,
			u.listHistoryUC,
			c.log,
		),
		commentHandler:   ticketHandlers.NewCommentHandler(u.commentUC, c.log),
		timeEntryHandler: ticketHandlers.NewTimeEntryHandler(u.timeEntryUC, c.log),

		healthHandler: handlers.NewHealthHandler(c.healthChecks(), c.log),
	}
}

// healthChecks probes the database and, when configured, Redis.
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}
