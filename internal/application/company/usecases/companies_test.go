package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	uservo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

type mockCompanyRepository struct {
	companies []*company.Company
	updated   []*company.Company
	lastScope access.Scope
}

func (m *mockCompanyRepository) Create(_ context.Context, c *company.Company) error {
	for _, existing := range m.companies {
		if existing.Initials() == c.Initials() {
			return errors.NewConflictError("company already exists", c.Initials())
		}
	}
	c.SetID(uint(len(m.companies) + 1))
	m.companies = append(m.companies, c)
	return nil
}

func (m *mockCompanyRepository) Update(_ context.Context, c *company.Company) error {
	m.updated = append(m.updated, c)
	return nil
}

func (m *mockCompanyRepository) GetByID(_ context.Context, id uint) (*company.Company, error) {
	for _, c := range m.companies {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) ListByIDs(ctx context.Context, ids []uint) ([]*company.Company, error) {
	var out []*company.Company
	for _, id := range ids {
		if c, err := m.GetByID(ctx, id); err == nil {
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

func (m *mockCompanyRepository) List(_ context.Context, _ query.PageFilter, scope access.Scope) ([]*company.Company, int64, error) {
	m.lastScope = scope
	var out []*company.Company
	for _, c := range m.companies {
		if scope.Allows(c.ID()) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

type ticketCounter struct {
	ticket.TicketRepository
	counts map[uint]int64
}

func (t ticketCounter) CountByCompany(_ context.Context, companyID uint) (int64, error) {
	return t.counts[companyID], nil
}

type privilegedOnly struct{}

func (privilegedOnly) Enforce(subject, _, _ string) (bool, error) {
	return subject == access.SubjectPrivileged, nil
}

var fixedTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func setup() (*CompanyUseCase, *mockCompanyRepository, access.Caller, access.Caller) {
	repo := &mockCompanyRepository{companies: []*company.Company{
		company.ReconstructCompany(1, "cmp_acme", "Acme", "ACM", "1 Road", "555", fixedTime, fixedTime),
		company.ReconstructCompany(2, "cmp_globex", "Globex", "GLX", "", "", fixedTime, fixedTime),
	}}
	tickets := ticketCounter{counts: map[uint]int64{1: 3}}
	uc := NewCompanyUseCase(repo, tickets, access.NewGuard(privilegedOnly{}), logger.NewNopLogger())

	acmeID := uint(1)
	admin := access.Caller{UserID: 1, Role: uservo.RoleAdmin}
	customer := access.Caller{UserID: 3, Role: uservo.RoleCustomer, CompanyID: &acmeID}
	return uc, repo, admin, customer
}

func strPtr(v string) *string { return &v }

func TestCompanyUseCase_List(t *testing.T) {
	uc, _, admin, customer := setup()
	ctx := context.Background()

	all, err := uc.List(ctx, ListCompaniesQuery{Caller: admin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Equal(t, 1, all.Page)

	own, err := uc.List(ctx, ListCompaniesQuery{Caller: customer})
	require.NoError(t, err)
	require.Len(t, own.Companies, 1)
	assert.Equal(t, "ACM", own.Companies[0].Initials)
}

func TestCompanyUseCase_Get(t *testing.T) {
	uc, _, admin, customer := setup()
	ctx := context.Background()

	view, err := uc.Get(ctx, admin, "cmp_globex")
	require.NoError(t, err)
	assert.Equal(t, "Globex", view.Name)

	_, err = uc.Get(ctx, customer, "cmp_globex")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCompanyUseCase_Create(t *testing.T) {
	t.Run("admin creates a company", func(t *testing.T) {
		uc, repo, admin, _ := setup()

		view, err := uc.Create(context.Background(), CreateCompanyCommand{Caller: admin, Name: "Initech", Initials: "INI"})
		require.NoError(t, err)
		assert.Equal(t, "INI", view.Initials)
		assert.Len(t, repo.companies, 3)
	})

	t.Run("scoped caller is denied", func(t *testing.T) {
		uc, repo, _, customer := setup()

		_, err := uc.Create(context.Background(), CreateCompanyCommand{Caller: customer, Name: "Initech", Initials: "INI"})
		assert.True(t, errors.IsPermissionDeniedError(err))
		assert.Len(t, repo.companies, 2)
	})

	t.Run("bad initials", func(t *testing.T) {
		uc, _, admin, _ := setup()

		_, err := uc.Create(context.Background(), CreateCompanyCommand{Caller: admin, Name: "Initech", Initials: "in"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("duplicate initials", func(t *testing.T) {
		uc, _, admin, _ := setup()

		_, err := uc.Create(context.Background(), CreateCompanyCommand{Caller: admin, Name: "Acme Two", Initials: "ACM"})
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestCompanyUseCase_Update(t *testing.T) {
	t.Run("initials are frozen once tickets exist", func(t *testing.T) {
		uc, repo, admin, _ := setup()

		_, err := uc.Update(context.Background(), UpdateCompanyCommand{Caller: admin, CompanySID: "cmp_acme", Initials: strPtr("ACX")})
		assert.True(t, errors.IsValidationError(err))
		assert.Empty(t, repo.updated)
	})

	t.Run("initials change while no tickets exist", func(t *testing.T) {
		uc, _, admin, _ := setup()

		view, err := uc.Update(context.Background(), UpdateCompanyCommand{Caller: admin, CompanySID: "cmp_globex", Initials: strPtr("GBX")})
		require.NoError(t, err)
		assert.Equal(t, "GBX", view.Initials)
		assert.Equal(t, "Globex", view.Name)
	})

	t.Run("details keep unset fields", func(t *testing.T) {
		uc, _, admin, _ := setup()

		view, err := uc.Update(context.Background(), UpdateCompanyCommand{Caller: admin, CompanySID: "cmp_acme", Name: strPtr("Acme Corp"), Initials: strPtr("ACM")})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", view.Name)
		assert.Equal(t, "1 Road", view.Address)
	})

	t.Run("scoped caller sees own company but cannot edit it", func(t *testing.T) {
		uc, _, _, customer := setup()

		_, err := uc.Update(context.Background(), UpdateCompanyCommand{Caller: customer, CompanySID: "cmp_acme", Name: strPtr("Mine")})
		assert.True(t, errors.IsPermissionDeniedError(err))

		_, err = uc.Update(context.Background(), UpdateCompanyCommand{Caller: customer, CompanySID: "cmp_globex", Name: strPtr("Theirs")})
		assert.True(t, errors.IsNotFoundError(err))
	})
}
