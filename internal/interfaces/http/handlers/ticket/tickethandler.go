package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/usecases"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	getTicketUC    usecases.GetTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	listHistoryUC  usecases.ListHistoryExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	listHistoryUC usecases.ListHistoryExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		updateTicketUC: updateTicketUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		deleteTicketUC: deleteTicketUC,
		listHistoryUC:  listHistoryUC,
		logger:         logger,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(caller))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ProjectTicket(result, caller.IsPrivileged()), "Ticket created successfully")
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), parseListTicketsQuery(c, caller))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ProjectTickets(result.Tickets, caller.IsPrivileged()), result.Total, result.Page, result.PageSize)
}

// GetTicket handles GET /tickets/:sid
func (h *TicketHandler) GetTicket(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	ticketSID, err := parseTicketSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Caller:    caller,
		TicketSID: ticketSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ProjectTicket(result, caller.IsPrivileged()))
}

// UpdateTicket handles PATCH /tickets/:sid
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	ticketSID, err := parseTicketSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_sid", ticketSID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(caller, ticketSID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", dto.ProjectTicket(result, caller.IsPrivileged()))
}

// DeleteTicket handles DELETE /tickets/:sid
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	ticketSID, err := parseTicketSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Caller:    caller,
		TicketSID: ticketSID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListHistory handles GET /tickets/:sid/history
func (h *TicketHandler) ListHistory(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	ticketSID, err := parseTicketSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listHistoryUC.Execute(c.Request.Context(), usecases.ListHistoryQuery{
		Caller:    caller,
		TicketSID: ticketSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseTicketSID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "sid", id.PrefixTicket, "ticket")
}
