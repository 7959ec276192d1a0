// Package access decides what a caller may see (Scope) and what a caller may
// change (Guard). Every read and write in the application layer goes through
// it with an explicit Caller; there is no ambient "current user".
package access

import (
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
)

// Caller is the authenticated identity acting on a request.
type Caller struct {
	UserID      uint
	UserSID     string
	Email       string
	DisplayName string
	Role        vo.Role
	IsStaff     bool
	CompanyID   *uint
}

func CallerFromUser(u *user.User) Caller {
	return Caller{
		UserID:      u.ID(),
		UserSID:     u.SID(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		Role:        u.Role(),
		IsStaff:     u.IsStaff(),
		CompanyID:   u.CompanyID(),
	}
}

func (c Caller) IsPrivileged() bool {
	return user.IsPrivileged(c.Role, c.IsStaff)
}

// Subject is the policy subject the caller is evaluated as.
func (c Caller) Subject() string {
	if c.IsPrivileged() {
		return SubjectPrivileged
	}
	return SubjectScoped
}
