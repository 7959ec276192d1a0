package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tenantdesk/helpdesk/internal/shared/errors"
)

type companyPayload struct {
	Name     string `json:"name" validate:"required"`
	Initials string `json:"initials" validate:"required,initials"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestInitialsValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		initials string
		valid    bool
	}{
		{"AC", true},
		{"ACM", true},
		{"A", false},
		{"ACME", false},
		{"acm", false},
		{"A1C", false},
	}

	for _, tt := range tests {
		t.Run(tt.initials, func(t *testing.T) {
			err := v.Struct(companyPayload{Name: "Acme", Initials: tt.initials})
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestBindingError(t *testing.T) {
	v := newValidator(t)

	err := BindingError(v.Struct(companyPayload{Initials: "acme"}))
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "name is required")
	assert.Contains(t, appErr.Details, "initials must be 2 or 3 uppercase letters")

	appErr = apperrors.GetAppError(BindingError(errors.New("unexpected EOF")))
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeBadRequest, appErr.Type)
	assert.Equal(t, 400, appErr.Code)
}
