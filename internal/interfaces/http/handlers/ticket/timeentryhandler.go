package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/usecases"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

type TimeEntryHandler struct {
	timeEntryUC usecases.TimeEntryExecutor
	logger      logger.Interface
}

func NewTimeEntryHandler(timeEntryUC usecases.TimeEntryExecutor, logger logger.Interface) *TimeEntryHandler {
	return &TimeEntryHandler{
		timeEntryUC: timeEntryUC,
		logger:      logger,
	}
}

// ListTimeEntries handles GET /tickets/:sid/time-entries
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	cmd, ok := h.command(c, false)
	if !ok {
		return
	}

	result, err := h.timeEntryUC.List(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTimeEntry handles POST /tickets/:sid/time-entries
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	cmd, ok := h.command(c, false)
	if !ok {
		return
	}
	if !h.bindMinutes(c, &cmd) {
		return
	}

	result, err := h.timeEntryUC.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Time entry added successfully")
}

// GetTimeEntry handles GET /tickets/:sid/time-entries/:entry_id
func (h *TimeEntryHandler) GetTimeEntry(c *gin.Context) {
	cmd, ok := h.command(c, true)
	if !ok {
		return
	}

	result, err := h.timeEntryUC.Get(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTimeEntry handles PATCH /tickets/:sid/time-entries/:entry_id
func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	cmd, ok := h.command(c, true)
	if !ok {
		return
	}
	if !h.bindMinutes(c, &cmd) {
		return
	}

	result, err := h.timeEntryUC.Update(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Time entry updated successfully", result)
}

// DeleteTimeEntry handles DELETE /tickets/:sid/time-entries/:entry_id
func (h *TimeEntryHandler) DeleteTimeEntry(c *gin.Context) {
	cmd, ok := h.command(c, true)
	if !ok {
		return
	}

	if err := h.timeEntryUC.Delete(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TimeEntryHandler) command(c *gin.Context, withID bool) (usecases.TimeEntryCommand, bool) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return usecases.TimeEntryCommand{}, false
	}
	ticketSID, err := parseTicketSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return usecases.TimeEntryCommand{}, false
	}

	cmd := usecases.TimeEntryCommand{Caller: caller, TicketSID: ticketSID}
	if withID {
		if cmd.EntryID, err = utils.ParseUintParam(c, "entry_id", "time entry"); err != nil {
			utils.ErrorResponseWithError(c, err)
			return usecases.TimeEntryCommand{}, false
		}
	}
	return cmd, true
}

func (h *TimeEntryHandler) bindMinutes(c *gin.Context, cmd *usecases.TimeEntryCommand) bool {
	var req TimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for time entry", "ticket_sid", cmd.TicketSID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return false
	}
	cmd.Minutes = *req.Minutes
	return true
}
