package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/company/usecases"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/middleware"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

type CompanyHandler struct {
	companyUC companyUseCase
	logger    logger.Interface
}

func NewCompanyHandler(companyUC companyUseCase, logger logger.Interface) *CompanyHandler {
	return &CompanyHandler{
		companyUC: companyUC,
		logger:    logger,
	}
}

type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Initials     string `json:"initials" binding:"required,initials"`
	Address      string `json:"address" binding:"max=500"`
	ContactPhone string `json:"contact_phone" binding:"max=32"`
}

type UpdateCompanyRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Initials     *string `json:"initials" binding:"omitempty,initials"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=32"`
}

// ListCompanies handles GET /companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	page := utils.ParsePagination(c)
	result, err := h.companyUC.List(c.Request.Context(), usecases.ListCompaniesQuery{
		Caller:   caller,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Companies, result.Total, result.Page, result.PageSize)
}

// GetCompany handles GET /companies/:sid
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	companySID, err := utils.ParseSIDParam(c, "sid", id.PrefixCompany, "company")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.companyUC.Get(c.Request.Context(), caller, companySID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateCompany handles POST /companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create company", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.companyUC.Create(c.Request.Context(), usecases.CreateCompanyCommand{
		Caller:       caller,
		Name:         req.Name,
		Initials:     req.Initials,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Company created successfully")
}

// UpdateCompany handles PATCH /companies/:sid
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	caller, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	companySID, err := utils.ParseSIDParam(c, "sid", id.PrefixCompany, "company")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update company", "company_sid", companySID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.companyUC.Update(c.Request.Context(), usecases.UpdateCompanyCommand{
		Caller:       caller,
		CompanySID:   companySID,
		Name:         req.Name,
		Initials:     req.Initials,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Company updated successfully", result)
}
