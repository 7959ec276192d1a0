package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/usecases"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

type CommentHandler struct {
	commentUC usecases.CommentExecutor
	logger    logger.Interface
}

func NewCommentHandler(commentUC usecases.CommentExecutor, logger logger.Interface) *CommentHandler {
	return &CommentHandler{
		commentUC: commentUC,
		logger:    logger,
	}
}

// ListComments handles GET /tickets/:sid/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	cmd, ok := h.command(c, false)
	if !ok {
		return
	}

	result, err := h.commentUC.List(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateComment handles POST /tickets/:sid/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	cmd, ok := h.command(c, false)
	if !ok {
		return
	}
	if !h.bindMessage(c, &cmd) {
		return
	}

	result, err := h.commentUC.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// GetComment handles GET /tickets/:sid/comments/:comment_id
func (h *CommentHandler) GetComment(c *gin.Context) {
	cmd, ok := h.command(c, true)
	if !ok {
		return
	}

	result, err := h.commentUC.Get(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateComment handles PATCH /tickets/:sid/comments/:comment_id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	cmd, ok := h.command(c, true)
	if !ok {
		return
	}
	if !h.bindMessage(c, &cmd) {
		return
	}

	result, err := h.commentUC.Update(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", result)
}

// DeleteComment handles DELETE /tickets/:sid/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	cmd, ok := h.command(c, true)
	if !ok {
		return
	}

	if err := h.commentUC.Delete(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *CommentHandler) command(c *gin.Context, withID bool) (usecases.CommentCommand, bool) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return usecases.CommentCommand{}, false
	}
	ticketSID, err := parseTicketSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return usecases.CommentCommand{}, false
	}

	cmd := usecases.CommentCommand{Caller: caller, TicketSID: ticketSID}
	if withID {
		if cmd.CommentID, err = utils.ParseUintParam(c, "comment_id", "comment"); err != nil {
			utils.ErrorResponseWithError(c, err)
			return usecases.CommentCommand{}, false
		}
	}
	return cmd, true
}

func (h *CommentHandler) bindMessage(c *gin.Context, cmd *usecases.CommentCommand) bool {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for comment", "ticket_sid", cmd.TicketSID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return false
	}
	cmd.Message = req.Message
	return true
}
