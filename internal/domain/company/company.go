package company

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
)

var initialsPattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

const maxNameLength = 255

// Company is a tenant. Its initials prefix every ticket reference the
// company issues.
type Company struct {
	id           uint
	sid          string
	name         string
	initials     string
	address      string
	contactPhone string
	createdAt    time.Time
	updatedAt    time.Time
}

func ValidateInitials(initials string) error {
	if !initialsPattern.MatchString(initials) {
		return fmt.Errorf("initials must be 2 or 3 uppercase letters, got %q", initials)
	}
	return nil
}

func NewCompany(name, initials, address, contactPhone string) (*Company, error) {
	if err := ValidateInitials(initials); err != nil {
		return nil, err
	}

	sid, err := id.NewSID(id.PrefixCompany)
	if err != nil {
		return nil, fmt.Errorf("failed to generate company ID: %w", err)
	}

	now := biztime.NowUTC()
	c := &Company{
		sid:       sid,
		initials:  initials,
		createdAt: now,
		updatedAt: now,
	}
	if err := c.UpdateDetails(name, address, contactPhone); err != nil {
		return nil, err
	}
	return c, nil
}

func ReconstructCompany(id uint, sid, name, initials, address, contactPhone string, createdAt, updatedAt time.Time) *Company {
	return &Company{
		id:           id,
		sid:          sid,
		name:         name,
		initials:     initials,
		address:      address,
		contactPhone: contactPhone,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (c *Company) ID() uint { return c.id }
func (c *Company) SID() string { return c.sid }
func (c *Company) Name() string { return c.name }
func (c *Company) Initials() string { return c.initials }
func (c *Company) Address() string { return c.address }
func (c *Company) ContactPhone() string { return c.contactPhone }
func (c *Company) CreatedAt() time.Time { return c.createdAt }
func (c *Company) UpdatedAt() time.Time { return c.updatedAt }

func (c *Company) SetID(id uint) {
	c.id = id
}

func (c *Company) UpdateDetails(name, address, contactPhone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("company name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("company name cannot exceed %d characters", maxNameLength)
	}

	c.name = name
	c.address = strings.TrimSpace(address)
	c.contactPhone = strings.TrimSpace(contactPhone)
	c.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeInitials renames the reference prefix. Callers must make sure no
// ticket references the company yet, since issued references never change.
func (c *Company) ChangeInitials(initials string) error {
	if err := ValidateInitials(initials); err != nil {
		return err
	}
	c.initials = initials
	c.updatedAt = biztime.NowUTC()
	return nil
}
