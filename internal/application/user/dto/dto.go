package dto

import (
	"time"

	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
)

type CompanyRef struct {
	SID      string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

type UserView struct {
	SID       string      `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     string      `json:"phone"`
	Role      string      `json:"role"`
	IsStaff   bool        `json:"is_staff"`
	IsActive  bool        `json:"is_active"`
	Company   *CompanyRef `json:"company"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ToUserView projects u; c is the user's company or nil.
func ToUserView(u *user.User, c *company.Company) *UserView {
	v := &UserView{
		SID:       u.SID(),
		Email:     u.Email(),
		Username:  u.Username(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		IsStaff:   u.IsStaff(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
	if c != nil {
		v.Company = &CompanyRef{SID: c.SID(), Name: c.Name(), Initials: c.Initials()}
	}
	return v
}

type TokenView struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *UserView `json:"user,omitempty"`
}
