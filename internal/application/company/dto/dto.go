package dto

import (
	"time"

	"github.com/tenantdesk/helpdesk/internal/domain/company"
)

type CompanyView struct {
	SID          string    `json:"id"`
	Name         string    `json:"name"`
	Initials     string    `json:"initials"`
	Address      string    `json:"address"`
	ContactPhone string    `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToCompanyView(c *company.Company) *CompanyView {
	return &CompanyView{
		SID:          c.SID(),
		Name:         c.Name(),
		Initials:     c.Initials(),
		Address:      c.Address(),
		ContactPhone: c.ContactPhone(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}
