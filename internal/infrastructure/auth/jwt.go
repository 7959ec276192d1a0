// Package auth issues and verifies the bearer tokens that identify callers,
// and hashes their passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
)

const issuer = "helpdesk"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims carries the role for logging only; authorization always reloads
// the user.
type Claims struct {
	UserSID   string    `json:"user_sid"`
	Role      vo.Role   `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens with a shared secret.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	parser     *jwt.Parser
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessExpMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshExpDays) * 24 * time.Hour,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(biztime.NowUTC),
		),
	}
}

// IssuePair signs an access and a refresh token for the user. expiresIn is
// the access token lifetime in seconds.
func (s *JWTService) IssuePair(userSID string, role vo.Role) (access, refresh string, expiresIn int64, err error) {
	now := biztime.NowUTC()
	if access, err = s.sign(userSID, role, TokenTypeAccess, now, s.accessTTL); err != nil {
		return "", "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	if refresh, err = s.sign(userSID, role, TokenTypeRefresh, now, s.refreshTTL); err != nil {
		return "", "", 0, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, int64(s.accessTTL / time.Second), nil
}

// AccessSubject returns the user SID of a valid access token.
func (s *JWTService) AccessSubject(token string) (string, error) {
	return s.subject(token, TokenTypeAccess)
}

// RefreshSubject returns the user SID of a valid refresh token.
func (s *JWTService) RefreshSubject(token string) (string, error) {
	return s.subject(token, TokenTypeRefresh)
}

func (s *JWTService) subject(token string, want TokenType) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.TokenType != want {
		return "", fmt.Errorf("%w: want %s, got %s", ErrWrongTokenType, want, claims.TokenType)
	}
	return claims.UserSID, nil
}

func (s *JWTService) sign(userSID string, role vo.Role, typ TokenType, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserSID:   userSID,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userSID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}
