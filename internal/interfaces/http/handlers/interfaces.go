package handlers

import (
	"context"

	companydto "github.com/tenantdesk/helpdesk/internal/application/company/dto"
	companyusecases "github.com/tenantdesk/helpdesk/internal/application/company/usecases"
	"github.com/tenantdesk/helpdesk/internal/application/user/dto"
	"github.com/tenantdesk/helpdesk/internal/application/user/usecases"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
)

// Use case interfaces for the handlers in this package. They keep the
// handlers testable with hand-written mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.TokenView, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, refreshToken string) (*dto.TokenView, error)
}

type profileUseCase interface {
	Get(ctx context.Context, caller access.Caller) (*dto.UserView, error)
	Update(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserView, error)
}

type manageUsersUseCase interface {
	List(ctx context.Context, q usecases.ListUsersQuery) (*usecases.ListUsersResult, error)
	Get(ctx context.Context, caller access.Caller, sid string) (*dto.UserView, error)
	Create(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserView, error)
	Update(ctx context.Context, cmd usecases.UpdateUserCommand) (*dto.UserView, error)
}

type companyUseCase interface {
	List(ctx context.Context, q companyusecases.ListCompaniesQuery) (*companyusecases.ListCompaniesResult, error)
	Get(ctx context.Context, caller access.Caller, sid string) (*companydto.CompanyView, error)
	Create(ctx context.Context, cmd companyusecases.CreateCompanyCommand) (*companydto.CompanyView, error)
	Update(ctx context.Context, cmd companyusecases.UpdateCompanyCommand) (*companydto.CompanyView, error)
}
