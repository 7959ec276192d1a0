package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
)

const maxUsernameLength = 150

// IsPrivileged is the one place that decides whether a user bypasses tenant
// scoping: admins and staff-flagged users do, everybody else is scoped to
// their company.
func IsPrivileged(role vo.Role, isStaff bool) bool {
	return role == vo.RoleAdmin || isStaff
}

// User is an account that acts on tickets. A user belongs to at most one
// company.
type User struct {
	id           uint
	sid          string
	email        vo.Email
	username     string
	firstName    string
	lastName     string
	phone        string
	role         vo.Role
	companyID    *uint
	isStaff      bool
	isActive     bool
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// Profile holds the self-service fields.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

func NewUser(email, username string, role vo.Role, companyID *uint, isStaff bool, profile Profile) (*User, error) {
	addr, err := vo.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	sid, err := id.NewSID(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := biztime.NowUTC()
	u := &User{
		sid:       sid,
		email:     addr,
		role:      role,
		companyID: companyID,
		isStaff:   isStaff,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
	profile.Username = strings.TrimSpace(username)
	if err := u.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return u, nil
}

// ReconstructUser rebuilds a user from persistence without validation.
func ReconstructUser(
	id uint, sid, email, username, firstName, lastName, phone string,
	role vo.Role, companyID *uint, isStaff, isActive bool, passwordHash string,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		sid:          sid,
		email:        vo.ReconstructEmail(email),
		username:     username,
		firstName:    firstName,
		lastName:     lastName,
		phone:        phone,
		role:         role,
		companyID:    companyID,
		isStaff:      isStaff,
		isActive:     isActive,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uint { return u.id }
func (u *User) SID() string { return u.sid }
func (u *User) Email() string { return u.email.String() }
func (u *User) Username() string { return u.username }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string { return u.lastName }
func (u *User) Phone() string { return u.phone }
func (u *User) Role() vo.Role { return u.role }
func (u *User) CompanyID() *uint { return u.companyID }
func (u *User) IsStaff() bool { return u.isStaff }
func (u *User) IsActive() bool { return u.isActive }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) IsPrivileged() bool {
	return IsPrivileged(u.role, u.isStaff)
}

// DisplayName is the full name, or the email when no name is set.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.firstName + " " + u.lastName)
	if full == "" {
		return u.Email()
	}
	return full
}

func (u *User) SetID(id uint) {
	u.id = id
}

// UpdateProfile changes the fields a user may edit about themselves.
func (u *User) UpdateProfile(p Profile) error {
	username := strings.TrimSpace(p.Username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username cannot exceed %d characters", maxUsernameLength)
	}

	u.username = username
	u.firstName = strings.TrimSpace(p.FirstName)
	u.lastName = strings.TrimSpace(p.LastName)
	u.phone = strings.TrimSpace(p.Phone)
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) ChangeEmail(email string) error {
	addr, err := vo.NewEmail(email)
	if err != nil {
		return err
	}
	u.email = addr
	u.updatedAt = biztime.NowUTC()
	return nil
}

// Grant sets the administrative attributes of the account.
func (u *User) Grant(role vo.Role, isStaff bool) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.isStaff = isStaff
	u.updatedAt = biztime.NowUTC()
	return nil
}

// AssignCompany moves the user to another tenant; nil detaches them.
func (u *User) AssignCompany(companyID *uint) {
	u.companyID = companyID
	u.updatedAt = biztime.NowUTC()
}

func (u *User) SetActive(active bool) {
	u.isActive = active
	u.updatedAt = biztime.NowUTC()
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
	u.updatedAt = biztime.NowUTC()
}
