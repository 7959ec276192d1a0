package errors

import "net/http"

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// NewInvalidCredentialsError is returned for both unknown emails and wrong
// passwords so the two cannot be told apart.
func NewInvalidCredentialsError() *AppError {
	return newAppError(ErrorTypeInvalidCredentials, http.StatusUnauthorized, "invalid email or password", nil)
}

func NewAccountInactiveError() *AppError {
	return newAppError(ErrorTypeAccountInactive, http.StatusForbidden, "account is inactive", nil)
}

func NewTokenInvalidError(details ...string) *AppError {
	return newAppError(ErrorTypeTokenInvalid, http.StatusUnauthorized, "invalid or expired token", details)
}
