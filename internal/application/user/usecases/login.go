package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenantdesk/helpdesk/internal/application/user/dto"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	users  user.Repository
	hasher PasswordHasher
	tokens TokenService
	logger logger.Interface
}

func NewLoginUseCase(users user.Repository, hasher PasswordHasher, tokens TokenService, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenView, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// an unknown email and a wrong password are indistinguishable
	if u.PasswordHash() == "" || uc.hasher.Verify(cmd.Password, u.PasswordHash()) != nil {
		uc.logger.Warnw("login failed", "user_id", u.ID())
		return nil, errors.NewInvalidCredentialsError()
	}
	if !u.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}

	view, err := issue(uc.tokens, u)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", u.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID())
	view.User = dto.ToUserView(u, nil)
	return view, nil
}

type RefreshTokenUseCase struct {
	users  user.Repository
	tokens TokenService
	logger logger.Interface
}

func NewRefreshTokenUseCase(users user.Repository, tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{users: users, tokens: tokens, logger: logger}
}

// Execute rotates the pair. The role is re-read from the user so a demoted
// account does not keep its old role in fresh tokens.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*dto.TokenView, error) {
	sid, err := uc.tokens.RefreshSubject(refreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError(err.Error())
	}

	u, err := uc.users.GetBySID(ctx, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenInvalidError("user no longer exists")
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}

	return issue(uc.tokens, u)
}

func issue(tokens TokenService, u *user.User) (*dto.TokenView, error) {
	access, refresh, expiresIn, err := tokens.IssuePair(u.SID(), u.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &dto.TokenView{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}
