package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/user/usecases"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

type UserHandler struct {
	usersUC manageUsersUseCase
	logger  logger.Interface
}

func NewUserHandler(usersUC manageUsersUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		usersUC: usersUC,
		logger:  logger,
	}
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"omitempty,max=150"`
	Password  string `json:"password" binding:"omitempty,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Phone     string `json:"phone" binding:"max=32"`
	Role      string `json:"role" binding:"omitempty,oneof=admin staff customer"`
	IsStaff   bool   `json:"is_staff"`
	Company   string `json:"company"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Username  *string `json:"username" binding:"omitempty,min=1,max=150"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=128"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin staff customer"`
	IsStaff   *bool   `json:"is_staff"`
	IsActive  *bool   `json:"is_active"`
	// Company set to "" detaches the user.
	Company *string `json:"company"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	page := utils.ParsePagination(c)
	result, err := h.usersUC.List(c.Request.Context(), usecases.ListUsersQuery{
		Caller:     caller,
		CompanySID: c.Query("company"),
		Role:       c.Query("role"),
		Search:     c.Query("search"),
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser handles GET /users/:sid
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	userSID, err := utils.ParseSIDParam(c, "sid", id.PrefixUser, "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.usersUC.Get(c.Request.Context(), caller, userSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.usersUC.Create(c.Request.Context(), usecases.CreateUserCommand{
		Caller:     caller,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       req.Role,
		IsStaff:    req.IsStaff,
		CompanySID: req.Company,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// UpdateUser handles PATCH /users/:sid
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	userSID, err := utils.ParseSIDParam(c, "sid", id.PrefixUser, "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user", "user_sid", userSID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.usersUC.Update(c.Request.Context(), usecases.UpdateUserCommand{
		Caller:     caller,
		UserSID:    userSID,
		Email:      req.Email,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       req.Role,
		IsStaff:    req.IsStaff,
		IsActive:   req.IsActive,
		Password:   req.Password,
		CompanySID: req.Company,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}
