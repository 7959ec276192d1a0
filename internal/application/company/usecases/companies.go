package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/company/dto"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

type ListCompaniesQuery struct {
	Caller   access.Caller
	Page     int
	PageSize int
}

type ListCompaniesResult struct {
	Companies []*dto.CompanyView
	Total     int64
	Page      int
	PageSize  int
}

type CreateCompanyCommand struct {
	Caller       access.Caller
	Name         string
	Initials     string
	Address      string
	ContactPhone string
}

type UpdateCompanyCommand struct {
	Caller       access.Caller
	CompanySID   string
	Name         *string
	Initials     *string
	Address      *string
	ContactPhone *string
}

// CompanyUseCase manages tenants. Reads follow the caller's scope so a
// scoped caller only sees their own company.
type CompanyUseCase struct {
	companies company.Repository
	tickets   ticket.TicketRepository
	guard     *access.Guard
	logger    logger.Interface
}

func NewCompanyUseCase(
	companies company.Repository,
	tickets ticket.TicketRepository,
	guard *access.Guard,
	logger logger.Interface,
) *CompanyUseCase {
	return &CompanyUseCase{
		companies: companies,
		tickets:   tickets,
		guard:     guard,
		logger:    logger,
	}
}

func (uc *CompanyUseCase) List(ctx context.Context, q ListCompaniesQuery) (*ListCompaniesResult, error) {
	page := query.PageFilter{Page: q.Page, PageSize: q.PageSize}
	companies, total, err := uc.companies.List(ctx, page, access.ScopeFor(q.Caller))
	if err != nil {
		uc.logger.Errorw("failed to list companies", "error", err)
		return nil, err
	}
	return &ListCompaniesResult{
		Companies: mapper.MapSlice(companies, dto.ToCompanyView),
		Total:     total,
		Page:      max(q.Page, 1),
		PageSize:  page.Limit(),
	}, nil
}

func (uc *CompanyUseCase) Get(ctx context.Context, caller access.Caller, sid string) (*dto.CompanyView, error) {
	c, err := uc.companies.GetBySID(ctx, sid, access.ScopeFor(caller))
	if err != nil {
		return nil, err
	}
	return dto.ToCompanyView(c), nil
}

func (uc *CompanyUseCase) Create(ctx context.Context, cmd CreateCompanyCommand) (*dto.CompanyView, error) {
	uc.logger.Infow("executing create company use case", "caller_id", cmd.Caller.UserID, "initials", cmd.Initials)

	if err := uc.guard.CanManageCompanies(cmd.Caller, access.ActionCreate); err != nil {
		return nil, err
	}

	c, err := company.NewCompany(cmd.Name, cmd.Initials, cmd.Address, cmd.ContactPhone)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.companies.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create company", "initials", cmd.Initials, "error", err)
		return nil, err
	}

	uc.logger.Infow("company created successfully", "company_sid", c.SID())
	return dto.ToCompanyView(c), nil
}

// Update edits company details. Initials are frozen once the company has
// issued a ticket, because existing references embed them.
func (uc *CompanyUseCase) Update(ctx context.Context, cmd UpdateCompanyCommand) (*dto.CompanyView, error) {
	uc.logger.Infow("executing update company use case", "caller_id", cmd.Caller.UserID, "company_sid", cmd.CompanySID)

	c, err := uc.companies.GetBySID(ctx, cmd.CompanySID, access.ScopeFor(cmd.Caller))
	if err != nil {
		return nil, err
	}
	if err := uc.guard.CanManageCompanies(cmd.Caller, access.ActionUpdate); err != nil {
		return nil, err
	}

	err = c.UpdateDetails(
		pick(cmd.Name, c.Name()),
		pick(cmd.Address, c.Address()),
		pick(cmd.ContactPhone, c.ContactPhone()),
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Initials != nil && *cmd.Initials != c.Initials() {
		count, err := uc.tickets.CountByCompany(ctx, c.ID())
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.NewValidationError("initials cannot change once the company has tickets")
		}
		if err := c.ChangeInitials(*cmd.Initials); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.companies.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update company", "company_sid", cmd.CompanySID, "error", err)
		return nil, err
	}
	return dto.ToCompanyView(c), nil
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return *v
}
