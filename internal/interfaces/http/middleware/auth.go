package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/shared/constants"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

// Authenticator resolves a bearer token to the acting caller.
type Authenticator interface {
	Execute(ctx context.Context, accessToken string) (access.Caller, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	logger        logger.Interface
}

func NewAuthMiddleware(authenticator Authenticator, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		caller, err := m.authenticator.Execute(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warnw("failed to authenticate request", "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// RequirePrivileged rejects scoped callers. It must run after RequireAuth.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			abortUnauthorized(c, "user not authenticated")
			return
		}
		if !caller.IsPrivileged() {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func SetCaller(c *gin.Context, caller access.Caller) {
	c.Set(constants.ContextKeyCaller, caller)
	c.Set(constants.ContextKeyUserSID, caller.UserSID)
	c.Set(constants.ContextKeyUserRole, caller.Role.String())
}

func GetCaller(c *gin.Context) (access.Caller, bool) {
	v, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return access.Caller{}, false
	}
	caller, ok := v.(access.Caller)
	return caller, ok
}

// MustGetCaller returns the caller or writes a 401 when none is set.
func MustGetCaller(c *gin.Context) (access.Caller, bool) {
	caller, ok := GetCaller(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return access.Caller{}, false
	}
	return caller, true
}

func abortUnauthorized(c *gin.Context, msg string) {
	utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(msg))
	c.Abort()
}
