package usecases

import (
	"context"
	"strings"

	"github.com/tenantdesk/helpdesk/internal/application/user/dto"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/constants"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

type ListUsersQuery struct {
	Caller     access.Caller
	CompanySID string
	Role       string
	Search     string
	Page       int
	PageSize   int
}

type ListUsersResult struct {
	Users    []*dto.UserView
	Total    int64
	Page     int
	PageSize int
}

type CreateUserCommand struct {
	Caller     access.Caller
	Email      string
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Role       string
	IsStaff    bool
	CompanySID string
}

type UpdateUserCommand struct {
	Caller    access.Caller
	UserSID   string
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
	Role      *string
	IsStaff   *bool
	IsActive  *bool
	Password  *string
	// CompanySID moves the user; an empty string detaches them.
	CompanySID *string
}

// ManageUsersUseCase is the administrative user API. Every operation needs
// the user management policy.
type ManageUsersUseCase struct {
	users     user.Repository
	companies company.Repository
	hasher    PasswordHasher
	guard     *access.Guard
	logger    logger.Interface
}

func NewManageUsersUseCase(
	users user.Repository,
	companies company.Repository,
	hasher PasswordHasher,
	guard *access.Guard,
	logger logger.Interface,
) *ManageUsersUseCase {
	return &ManageUsersUseCase{
		users:     users,
		companies: companies,
		hasher:    hasher,
		guard:     guard,
		logger:    logger,
	}
}

func (uc *ManageUsersUseCase) List(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	if err := uc.guard.CanManageUsers(q.Caller); err != nil {
		return nil, err
	}

	filter := user.ListFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		Role:       q.Role,
		Search:     strings.TrimSpace(q.Search),
	}
	if q.CompanySID != "" {
		c, err := uc.companies.GetBySID(ctx, q.CompanySID, access.Unrestricted())
		if err != nil {
			return nil, err
		}
		id := c.ID()
		filter.CompanyID = &id
	}

	users, total, err := uc.users.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	index, err := uc.companyIndex(ctx, users)
	if err != nil {
		return nil, err
	}
	views := mapper.MapSlice(users, func(u *user.User) *dto.UserView {
		var c *company.Company
		if u.CompanyID() != nil {
			c = index[*u.CompanyID()]
		}
		return dto.ToUserView(u, c)
	})

	return &ListUsersResult{Users: views, Total: total, Page: max(q.Page, 1), PageSize: filter.Limit()}, nil
}

func (uc *ManageUsersUseCase) Get(ctx context.Context, caller access.Caller, sid string) (*dto.UserView, error) {
	if err := uc.guard.CanManageUsers(caller); err != nil {
		return nil, err
	}
	u, err := uc.users.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	return viewWithCompany(ctx, uc.companies, u)
}

func (uc *ManageUsersUseCase) Create(ctx context.Context, cmd CreateUserCommand) (*dto.UserView, error) {
	uc.logger.Infow("executing create user use case", "caller_id", cmd.Caller.UserID, "email", cmd.Email)

	if err := uc.guard.CanManageUsers(cmd.Caller); err != nil {
		return nil, err
	}

	role := vo.RoleCustomer
	if cmd.Role != "" {
		r, err := vo.NewRole(cmd.Role)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		role = r
	}

	companyID, err := uc.companyID(ctx, cmd.CompanySID)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.Email, cmd.Username, role, companyID, cmd.IsStaff, user.Profile{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Phone:     cmd.Phone,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	password := cmd.Password
	if password == "" {
		password = constants.DefaultUserPassword
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	u.SetPasswordHash(hash)

	if err := uc.users.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "email", cmd.Email, "error", err)
		return nil, err
	}

	uc.logger.Infow("user created successfully", "user_sid", u.SID())
	return viewWithCompany(ctx, uc.companies, u)
}

func (uc *ManageUsersUseCase) Update(ctx context.Context, cmd UpdateUserCommand) (*dto.UserView, error) {
	uc.logger.Infow("executing update user use case", "caller_id", cmd.Caller.UserID, "user_sid", cmd.UserSID)

	if err := uc.guard.CanManageUsers(cmd.Caller); err != nil {
		return nil, err
	}

	u, err := uc.users.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, u, cmd); err != nil {
		return nil, err
	}

	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_sid", cmd.UserSID, "error", err)
		return nil, err
	}
	return viewWithCompany(ctx, uc.companies, u)
}

func (uc *ManageUsersUseCase) apply(ctx context.Context, u *user.User, cmd UpdateUserCommand) error {
	if cmd.Email != nil {
		if err := u.ChangeEmail(*cmd.Email); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.Username != nil || cmd.FirstName != nil || cmd.LastName != nil || cmd.Phone != nil {
		err := u.UpdateProfile(user.Profile{
			Username:  pick(cmd.Username, u.Username()),
			FirstName: pick(cmd.FirstName, u.FirstName()),
			LastName:  pick(cmd.LastName, u.LastName()),
			Phone:     pick(cmd.Phone, u.Phone()),
		})
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.Role != nil || cmd.IsStaff != nil {
		role := u.Role()
		if cmd.Role != nil {
			r, err := vo.NewRole(*cmd.Role)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			role = r
		}
		isStaff := u.IsStaff()
		if cmd.IsStaff != nil {
			isStaff = *cmd.IsStaff
		}
		if err := u.Grant(role, isStaff); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.CompanySID != nil {
		companyID, err := uc.companyID(ctx, *cmd.CompanySID)
		if err != nil {
			return err
		}
		u.AssignCompany(companyID)
	}

	if cmd.IsActive != nil {
		u.SetActive(*cmd.IsActive)
	}

	if cmd.Password != nil {
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		u.SetPasswordHash(hash)
	}
	return nil
}

func (uc *ManageUsersUseCase) companyID(ctx context.Context, sid string) (*uint, error) {
	if sid == "" {
		return nil, nil
	}
	c, err := uc.companies.GetBySID(ctx, sid, access.Unrestricted())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("company does not exist", sid)
		}
		return nil, err
	}
	id := c.ID()
	return &id, nil
}

func (uc *ManageUsersUseCase) companyIndex(ctx context.Context, users []*user.User) (map[uint]*company.Company, error) {
	ids := make([]uint, 0, len(users))
	seen := make(map[uint]bool)
	for _, u := range users {
		if u.CompanyID() != nil && !seen[*u.CompanyID()] {
			seen[*u.CompanyID()] = true
			ids = append(ids, *u.CompanyID())
		}
	}
	index := make(map[uint]*company.Company, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	companies, err := uc.companies.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		index[c.ID()] = c
	}
	return index, nil
}
