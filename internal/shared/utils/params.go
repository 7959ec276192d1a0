package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
)

// ParseSIDParam reads a prefixed ID from the route and checks its prefix.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		// A malformed ID cannot name an existing resource.
		return "", errors.NewNotFoundError(fmt.Sprintf("%s not found", entityName))
	}

	return sid, nil
}

// ParseUintParam reads a positive numeric route parameter.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewNotFoundError(fmt.Sprintf("%s not found", entityName))
	}
	return uint(n), nil
}
