package usecases

import (
	"context"
	"fmt"

	"github.com/tenantdesk/helpdesk/internal/application/user/dto"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

// UpdateProfileCommand lists the self-service fields. Email, company, role
// and staff flag are not part of it.
type UpdateProfileCommand struct {
	Caller    access.Caller
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

type ProfileUseCase struct {
	users     user.Repository
	companies company.Repository
	logger    logger.Interface
}

func NewProfileUseCase(users user.Repository, companies company.Repository, logger logger.Interface) *ProfileUseCase {
	return &ProfileUseCase{users: users, companies: companies, logger: logger}
}

func (uc *ProfileUseCase) Get(ctx context.Context, caller access.Caller) (*dto.UserView, error) {
	u, err := uc.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return viewWithCompany(ctx, uc.companies, u)
}

func (uc *ProfileUseCase) Update(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserView, error) {
	uc.logger.Infow("executing update profile use case", "caller_id", cmd.Caller.UserID)

	u, err := uc.users.GetByID(ctx, cmd.Caller.UserID)
	if err != nil {
		return nil, err
	}

	p := user.Profile{
		Username:  pick(cmd.Username, u.Username()),
		FirstName: pick(cmd.FirstName, u.FirstName()),
		LastName:  pick(cmd.LastName, u.LastName()),
		Phone:     pick(cmd.Phone, u.Phone()),
	}
	if err := u.UpdateProfile(p); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update profile", "caller_id", cmd.Caller.UserID, "error", err)
		return nil, err
	}
	return viewWithCompany(ctx, uc.companies, u)
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return *v
}

func viewWithCompany(ctx context.Context, companies company.Repository, u *user.User) (*dto.UserView, error) {
	if u.CompanyID() == nil {
		return dto.ToUserView(u, nil), nil
	}
	c, err := companies.GetByID(ctx, *u.CompanyID())
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return dto.ToUserView(u, c), nil
}
