package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/user/usecases"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

// ProfileHandler serves the authenticated user's own record.
type ProfileHandler struct {
	profileUC profileUseCase
	logger    logger.Interface
}

func NewProfileHandler(profileUC profileUseCase, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		profileUC: profileUC,
		logger:    logger,
	}
}

// UpdateProfileRequest only lists self-service fields. Unknown keys such as
// email or role are ignored by the decoder.
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=1,max=150"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.profileUC.Get(c.Request.Context(), caller)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateProfile handles PATCH /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update profile", "user_sid", caller.UserSID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.profileUC.Update(c.Request.Context(), usecases.UpdateProfileCommand{
		Caller:    caller,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}
