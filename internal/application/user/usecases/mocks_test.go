package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

type mockUserRepository struct {
	byID    map[uint]*user.User
	created []*user.User
	updated []*user.User

	ListFunc func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{byID: make(map[uint]*user.User)}
	for _, u := range users {
		m.byID[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	for _, existing := range m.byID {
		if existing.Email() == u.Email() {
			return errors.NewConflictError("user already exists", u.Email())
		}
	}
	u.SetID(uint(len(m.byID) + 100))
	m.byID[u.ID()] = u
	m.created = append(m.created, u)
	return nil
}

func (m *mockUserRepository) Update(_ context.Context, u *user.User) error {
	m.updated = append(m.updated, u)
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) ListByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetBySID(_ context.Context, sid string) (*user.User, error) {
	for _, u := range m.byID {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.byID {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockCompanyRepository struct {
	companies []*company.Company
}

func (m *mockCompanyRepository) Create(context.Context, *company.Company) error { return nil }

func (m *mockCompanyRepository) Update(context.Context, *company.Company) error { return nil }

func (m *mockCompanyRepository) GetByID(_ context.Context, id uint) (*company.Company, error) {
	for _, c := range m.companies {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) ListByIDs(_ context.Context, ids []uint) ([]*company.Company, error) {
	var out []*company.Company
	for _, id := range ids {
		if c, err := m.GetByID(context.Background(), id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCompanyRepository) GetBySID(_ context.Context, sid string, scope access.Scope) (*company.Company, error) {
	for _, c := range m.companies {
		if c.SID() == sid && scope.Allows(c.ID()) {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) GetByInitials(_ context.Context, initials string) (*company.Company, error) {
	for _, c := range m.companies {
		if c.Initials() == initials {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) List(context.Context, query.PageFilter, access.Scope) ([]*company.Company, int64, error) {
	return m.companies, int64(len(m.companies)), nil
}

// plainHasher stores passwords as "hashed:<password>".
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// stubTokens encodes the user SID directly into the token.
type stubTokens struct{}

func (stubTokens) IssuePair(userSID string, role vo.Role) (string, string, int64, error) {
	return "access:" + userSID, "refresh:" + userSID, 900, nil
}

func (stubTokens) AccessSubject(token string) (string, error) {
	return subject(token, "access:")
}

func (stubTokens) RefreshSubject(token string) (string, error) {
	return subject(token, "refresh:")
}

func subject(token, prefix string) (string, error) {
	if !strings.HasPrefix(token, prefix) {
		return "", fmt.Errorf("unexpected token type")
	}
	return strings.TrimPrefix(token, prefix), nil
}

type privilegedOnly struct{}

func (privilegedOnly) Enforce(subject, _, _ string) (bool, error) {
	return subject == access.SubjectPrivileged, nil
}

var fixedTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	acme      *company.Company
	admin     *user.User
	customer  *user.User
	inactive  *user.User
	users     *mockUserRepository
	companies *mockCompanyRepository
	guard     *access.Guard
}

func newFixture() *fixture {
	acmeID := uint(1)
	f := &fixture{
		acme: company.ReconstructCompany(1, "cmp_acme", "Acme", "ACM", "", "", fixedTime, fixedTime),
		admin: user.ReconstructUser(1, "usr_admin", "admin@desk.io", "admin", "Ada", "Min", "",
			vo.RoleAdmin, nil, false, true, "hashed:secret-pass", fixedTime, fixedTime),
		customer: user.ReconstructUser(2, "usr_u1", "u1@acme.io", "u1", "Una", "One", "555-0101",
			vo.RoleCustomer, &acmeID, false, true, "hashed:u1-password", fixedTime, fixedTime),
		inactive: user.ReconstructUser(3, "usr_gone", "gone@acme.io", "gone", "", "", "",
			vo.RoleCustomer, &acmeID, false, false, "hashed:gone-password", fixedTime, fixedTime),
		guard: access.NewGuard(privilegedOnly{}),
	}
	f.users = newMockUserRepository(f.admin, f.customer, f.inactive)
	f.companies = &mockCompanyRepository{companies: []*company.Company{f.acme}}
	return f
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
