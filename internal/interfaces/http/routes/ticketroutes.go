package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler    *tickethandlers.TicketHandler
	CommentHandler   *tickethandlers.CommentHandler
	TimeEntryHandler *tickethandlers.TimeEntryHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimiter      *middleware.RateLimiter
}

// SetupTicketRoutes configures /tickets and its nested resources. Delete is
// not gated here: an invisible ticket must answer 404 before the policy
// check answers 403.
func SetupTicketRoutes(engine *gin.Engine, cfg *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimiter.Limit())
	{
		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("", cfg.TicketHandler.ListTickets)

		tickets.GET("/:sid/history", cfg.TicketHandler.ListHistory)

		tickets.GET("/:sid/comments", cfg.CommentHandler.ListComments)
		tickets.POST("/:sid/comments", cfg.CommentHandler.CreateComment)
		tickets.GET("/:sid/comments/:comment_id", cfg.CommentHandler.GetComment)
		tickets.PATCH("/:sid/comments/:comment_id", cfg.CommentHandler.UpdateComment)
		tickets.DELETE("/:sid/comments/:comment_id", cfg.CommentHandler.DeleteComment)

		tickets.GET("/:sid/time-entries", cfg.TimeEntryHandler.ListTimeEntries)
		tickets.POST("/:sid/time-entries", cfg.TimeEntryHandler.CreateTimeEntry)
		tickets.GET("/:sid/time-entries/:entry_id", cfg.TimeEntryHandler.GetTimeEntry)
		tickets.PATCH("/:sid/time-entries/:entry_id", cfg.TimeEntryHandler.UpdateTimeEntry)
		tickets.DELETE("/:sid/time-entries/:entry_id", cfg.TimeEntryHandler.DeleteTimeEntry)

		tickets.GET("/:sid", cfg.TicketHandler.GetTicket)
		tickets.PATCH("/:sid", cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:sid", cfg.TicketHandler.DeleteTicket)
	}
}
