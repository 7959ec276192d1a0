package usecases

import (
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenService issues bearer tokens and maps them back to a user SID.
type TokenService interface {
	IssuePair(userSID string, role vo.Role) (accessToken, refreshToken string, expiresIn int64, err error)
	AccessSubject(token string) (string, error)
	RefreshSubject(token string) (string, error)
}
