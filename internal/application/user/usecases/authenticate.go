package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

// AuthenticateUseCase turns an access token into the Caller every other use
// case receives.
type AuthenticateUseCase struct {
	users  user.Repository
	tokens TokenService
}

func NewAuthenticateUseCase(users user.Repository, tokens TokenService) *AuthenticateUseCase {
	return &AuthenticateUseCase{users: users, tokens: tokens}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, accessToken string) (access.Caller, error) {
	sid, err := uc.tokens.AccessSubject(accessToken)
	if err != nil {
		return access.Caller{}, errors.NewTokenInvalidError(err.Error())
	}

	u, err := uc.users.GetBySID(ctx, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return access.Caller{}, errors.NewTokenInvalidError("user no longer exists")
		}
		return access.Caller{}, err
	}
	if !u.IsActive() {
		return access.Caller{}, errors.NewAccountInactiveError()
	}
	return access.CallerFromUser(u), nil
}
