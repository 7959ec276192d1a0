package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	companydto "github.com/tenantdesk/helpdesk/internal/application/company/dto"
	companyusecases "github.com/tenantdesk/helpdesk/internal/application/company/usecases"
	"github.com/tenantdesk/helpdesk/internal/application/user/dto"
	"github.com/tenantdesk/helpdesk/internal/application/user/usecases"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	got    usecases.LoginCommand
	result *dto.TokenView
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*dto.TokenView, error) {
	m.got = cmd
	return m.result, m.err
}

type mockRefreshUC struct {
	got    string
	result *dto.TokenView
	err    error
}

func (m *mockRefreshUC) Execute(_ context.Context, token string) (*dto.TokenView, error) {
	m.got = token
	return m.result, m.err
}

type mockProfileUC struct {
	got    usecases.UpdateProfileCommand
	result *dto.UserView
	err    error
}

func (m *mockProfileUC) Get(_ context.Context, caller access.Caller) (*dto.UserView, error) {
	return &dto.UserView{SID: caller.UserSID}, m.err
}

func (m *mockProfileUC) Update(_ context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserView, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUsersUC struct {
	gotList   usecases.ListUsersQuery
	gotCreate usecases.CreateUserCommand
	gotUpdate usecases.UpdateUserCommand
	called    bool
	err       error
}

func (m *mockUsersUC) List(_ context.Context, q usecases.ListUsersQuery) (*usecases.ListUsersResult, error) {
	m.gotList, m.called = q, true
	return &usecases.ListUsersResult{Page: q.Page, PageSize: q.PageSize}, m.err
}

func (m *mockUsersUC) Get(_ context.Context, _ access.Caller, sid string) (*dto.UserView, error) {
	m.called = true
	return &dto.UserView{SID: sid}, m.err
}

func (m *mockUsersUC) Create(_ context.Context, cmd usecases.CreateUserCommand) (*dto.UserView, error) {
	m.gotCreate, m.called = cmd, true
	return &dto.UserView{Email: cmd.Email}, m.err
}

func (m *mockUsersUC) Update(_ context.Context, cmd usecases.UpdateUserCommand) (*dto.UserView, error) {
	m.gotUpdate, m.called = cmd, true
	return &dto.UserView{SID: cmd.UserSID}, m.err
}

type mockCompanyUC struct {
	gotCreate companyusecases.CreateCompanyCommand
	called    bool
	err       error
}

func (m *mockCompanyUC) List(_ context.Context, q companyusecases.ListCompaniesQuery) (*companyusecases.ListCompaniesResult, error) {
	m.called = true
	return &companyusecases.ListCompaniesResult{Page: q.Page, PageSize: q.PageSize}, m.err
}

func (m *mockCompanyUC) Get(_ context.Context, _ access.Caller, sid string) (*companydto.CompanyView, error) {
	m.called = true
	return &companydto.CompanyView{SID: sid}, m.err
}

func (m *mockCompanyUC) Create(_ context.Context, cmd companyusecases.CreateCompanyCommand) (*companydto.CompanyView, error) {
	m.gotCreate, m.called = cmd, true
	return &companydto.CompanyView{Name: cmd.Name, Initials: cmd.Initials}, m.err
}

func (m *mockCompanyUC) Update(_ context.Context, cmd companyusecases.UpdateCompanyCommand) (*companydto.CompanyView, error) {
	m.called = true
	return &companydto.CompanyView{SID: cmd.CompanySID}, m.err
}

// =====================================================================
// AuthHandler
// =====================================================================

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		mock     *mockLoginUC
		wantCode int
	}{
		{
			name:     "valid credentials",
			body:     `{"email":"agent@desk.io","password":"secret123"}`,
			mock:     &mockLoginUC{result: &dto.TokenView{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     `{"email":"agent@desk.io","password":"nope"}`,
			mock:     &mockLoginUC{err: errors.NewInvalidCredentialsError()},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "missing password",
			body:     `{"email":"agent@desk.io"}`,
			mock:     &mockLoginUC{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed email",
			body:     `{"email":"agent","password":"x"}`,
			mock:     &mockLoginUC{},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mock, &mockRefreshUC{}, testutil.NewMockLogger())
			c, w := testutil.NewRawContext(http.MethodPost, "/auth/login", tt.body)

			handler.Login(c)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAuthHandler_Login_ReturnsTokens(t *testing.T) {
	mockUC := &mockLoginUC{result: &dto.TokenView{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}}
	handler := NewAuthHandler(mockUC, &mockRefreshUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{Email: "agent@desk.io", Password: "secret123"})
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "agent@desk.io", mockUC.got.Email)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var tokens dto.TokenView
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	mockUC := &mockRefreshUC{result: &dto.TokenView{AccessToken: "new"}}
	handler := NewAuthHandler(&mockLoginUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: "old"})
	handler.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old", mockUC.got)
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	mockUC := &mockRefreshUC{err: errors.NewTokenInvalidError()}
	handler := NewAuthHandler(&mockLoginUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: "forged"})
	handler.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// ProfileHandler
// =====================================================================

func TestProfileHandler_UpdateProfile_IgnoresProtectedFields(t *testing.T) {
	mockUC := &mockProfileUC{result: &dto.UserView{SID: "usr_customer"}}
	handler := NewProfileHandler(mockUC, testutil.NewMockLogger())

	body := `{"first_name":"Ada","email":"evil@x.io","role":"admin","company":"cmp_other"}`
	c, w := testutil.NewRawContext(http.MethodPatch, "/profile", body)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))

	handler.UpdateProfile(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got.FirstName)
	assert.Equal(t, "Ada", *mockUC.got.FirstName)
	assert.Nil(t, mockUC.got.Username)
	assert.Equal(t, uint(7), mockUC.got.Caller.UserID)
}

func TestProfileHandler_GetProfile_NotAuthenticated(t *testing.T) {
	handler := NewProfileHandler(&mockProfileUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/profile", nil)
	handler.GetProfile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// UserHandler
// =====================================================================

func TestUserHandler_CreateUser_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantCalled bool
	}{
		{"valid", `{"email":"new@acme.io","role":"customer","company":"cmp_acme"}`, http.StatusCreated, true},
		{"unknown role", `{"email":"new@acme.io","role":"root"}`, http.StatusBadRequest, false},
		{"short password", `{"email":"new@acme.io","password":"short"}`, http.StatusBadRequest, false},
		{"missing email", `{"role":"customer"}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUsersUC{}
			handler := NewUserHandler(mockUC, testutil.NewMockLogger())
			c, w := testutil.NewRawContext(http.MethodPost, "/users", tt.body)
			testutil.SetAuthContext(c, testutil.Admin(1))

			handler.CreateUser(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCalled, mockUC.called)
		})
	}
}

func TestUserHandler_UpdateUser_DetachCompany(t *testing.T) {
	mockUC := &mockUsersUC{}
	handler := NewUserHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewRawContext(http.MethodPatch, "/users/usr_bob", `{"company":"","is_active":false}`)
	testutil.SetAuthContext(c, testutil.Admin(1))
	testutil.SetURLParam(c, "sid", "usr_bob")

	handler.UpdateUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "usr_bob", mockUC.gotUpdate.UserSID)
	require.NotNil(t, mockUC.gotUpdate.CompanySID)
	assert.Equal(t, "", *mockUC.gotUpdate.CompanySID)
	require.NotNil(t, mockUC.gotUpdate.IsActive)
	assert.False(t, *mockUC.gotUpdate.IsActive)
}

func TestUserHandler_ListUsers_Forbidden(t *testing.T) {
	mockUC := &mockUsersUC{err: errors.NewPermissionDeniedError("not allowed to manage users")}
	handler := NewUserHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/users", nil)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))
	testutil.SetQueryParams(c, map[string]string{"search": "ada", "role": "staff"})

	handler.ListUsers(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ada", mockUC.gotList.Search)
	assert.Equal(t, "staff", mockUC.gotList.Role)
}

func TestUserHandler_GetUser_WrongPrefix(t *testing.T) {
	mockUC := &mockUsersUC{}
	handler := NewUserHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/users/tkt_abc", nil)
	testutil.SetAuthContext(c, testutil.Admin(1))
	testutil.SetURLParam(c, "sid", "tkt_abc")

	handler.GetUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, mockUC.called)
}

// =====================================================================
// CompanyHandler
// =====================================================================

func TestCompanyHandler_CreateCompany_Initials(t *testing.T) {
	tests := []struct {
		name       string
		initials   string
		wantCode   int
		wantCalled bool
	}{
		{"two letters", "AC", http.StatusCreated, true},
		{"three letters", "ACM", http.StatusCreated, true},
		{"lowercase", "acm", http.StatusBadRequest, false},
		{"too long", "ACME", http.StatusBadRequest, false},
		{"digits", "A1", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCompanyUC{}
			handler := NewCompanyHandler(mockUC, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/companies", CreateCompanyRequest{
				Name:     "Acme",
				Initials: tt.initials,
			})
			testutil.SetAuthContext(c, testutil.Admin(1))

			handler.CreateCompany(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCalled, mockUC.called)
		})
	}
}

func TestCompanyHandler_UpdateCompany_Conflict(t *testing.T) {
	mockUC := &mockCompanyUC{err: errors.NewConflictError("company initials already in use")}
	handler := NewCompanyHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewRawContext(http.MethodPatch, "/companies/cmp_acme", `{"initials":"GLX"}`)
	testutil.SetAuthContext(c, testutil.Admin(1))
	testutil.SetURLParam(c, "sid", "cmp_acme")

	handler.UpdateCompany(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompanyHandler_ListCompanies(t *testing.T) {
	mockUC := &mockCompanyUC{}
	handler := NewCompanyHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/companies", nil)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))

	handler.ListCompanies(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockUC.called)
}

// =====================================================================
// HealthHandler
// =====================================================================

func TestHealthHandler(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		handler := NewHealthHandler(map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		}, testutil.NewMockLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)

		handler.HealthCheck(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"healthy"`)
	})

	t.Run("failing check", func(t *testing.T) {
		handler := NewHealthHandler(map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return stderrors.New("connection refused") },
		}, testutil.NewMockLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)

		handler.HealthCheck(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, "ok", body.Checks["database"])
		assert.Equal(t, "unavailable", body.Checks["redis"])
	})
}
