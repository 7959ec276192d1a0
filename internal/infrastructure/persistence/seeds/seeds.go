// Package seeds loads companies and users from a YAML fixture file.
package seeds

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/constants"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type Fixture struct {
	Companies []CompanyFixture `yaml:"companies"`
	Users     []UserFixture    `yaml:"users"`
}

type CompanyFixture struct {
	Name         string `yaml:"name"`
	Initials     string `yaml:"initials"`
	Address      string `yaml:"address"`
	ContactPhone string `yaml:"contact_phone"`
}

// UserFixture names its company by initials.
type UserFixture struct {
	Email     string `yaml:"email"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Phone     string `yaml:"phone"`
	Role      string `yaml:"role"`
	IsStaff   bool   `yaml:"is_staff"`
	Company   string `yaml:"company"`
}

type Hasher interface {
	Hash(password string) (string, error)
}

// Result counts rows created; existing rows are skipped.
type Result struct {
	CompaniesCreated int
	CompaniesSkipped int
	UsersCreated     int
	UsersSkipped     int
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

type Seeder struct {
	companies company.Repository
	users     user.Repository
	hasher    Hasher
	logger    logger.Interface
}

func NewSeeder(companies company.Repository, users user.Repository, hasher Hasher, logger logger.Interface) *Seeder {
	return &Seeder{
		companies: companies,
		users:     users,
		hasher:    hasher,
		logger:    logger,
	}
}

// Apply creates missing companies, matched by initials, then missing users,
// matched by email. Running it twice is a no-op.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	byInitials := make(map[string]uint, len(f.Companies))

	for _, cf := range f.Companies {
		initials := strings.ToUpper(strings.TrimSpace(cf.Initials))
		existing, err := s.companies.GetByInitials(ctx, initials)
		switch {
		case err == nil:
			byInitials[initials] = existing.ID()
			res.CompaniesSkipped++
			continue
		case !errors.IsNotFoundError(err):
			return res, fmt.Errorf("failed to look up company %s: %w", initials, err)
		}

		c, err := company.NewCompany(cf.Name, initials, cf.Address, cf.ContactPhone)
		if err != nil {
			return res, fmt.Errorf("invalid company %s: %w", initials, err)
		}
		if err := s.companies.Create(ctx, c); err != nil {
			return res, fmt.Errorf("failed to create company %s: %w", initials, err)
		}
		byInitials[initials] = c.ID()
		res.CompaniesCreated++
		s.logger.Infow("seeded company", "initials", initials, "company_sid", c.SID())
	}

	for _, uf := range f.Users {
		created, err := s.seedUser(ctx, uf, byInitials)
		if err != nil {
			return res, err
		}
		if created {
			res.UsersCreated++
		} else {
			res.UsersSkipped++
		}
	}

	return res, nil
}

func (s *Seeder) seedUser(ctx context.Context, uf UserFixture, byInitials map[string]uint) (bool, error) {
	_, err := s.users.GetByEmail(ctx, uf.Email)
	if err == nil {
		return false, nil
	}
	if !errors.IsNotFoundError(err) {
		return false, fmt.Errorf("failed to look up user %s: %w", uf.Email, err)
	}

	var companyID *uint
	if initials := strings.ToUpper(strings.TrimSpace(uf.Company)); initials != "" {
		id, ok := byInitials[initials]
		if !ok {
			c, err := s.companies.GetByInitials(ctx, initials)
			if err != nil {
				return false, fmt.Errorf("user %s references unknown company %s: %w", uf.Email, initials, err)
			}
			id = c.ID()
		}
		companyID = &id
	}

	role := vo.Role(uf.Role)
	if role == "" {
		role = vo.RoleCustomer
	}
	username := uf.Username
	if username == "" {
		username = strings.SplitN(uf.Email, "@", 2)[0]
	}

	u, err := user.NewUser(uf.Email, username, role, companyID, uf.IsStaff, user.Profile{
		FirstName: uf.FirstName,
		LastName:  uf.LastName,
		Phone:     uf.Phone,
	})
	if err != nil {
		return false, fmt.Errorf("invalid user %s: %w", uf.Email, err)
	}

	password := uf.Password
	if password == "" {
		password = constants.DefaultUserPassword
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password for %s: %w", uf.Email, err)
	}
	u.SetPasswordHash(hash)

	if err := s.users.Create(ctx, u); err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", uf.Email, err)
	}
	s.logger.Infow("seeded user", "email", u.Email(), "user_sid", u.SID())
	return true, nil
}
