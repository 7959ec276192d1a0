package mappers

import (
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
)

func CompanyToModel(c *company.Company) *models.CompanyModel {
	return &models.CompanyModel{
		ID:           c.ID(),
		SID:          c.SID(),
		Name:         c.Name(),
		Initials:     c.Initials(),
		Address:      c.Address(),
		ContactPhone: c.ContactPhone(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func CompanyToDomain(m *models.CompanyModel) *company.Company {
	return company.ReconstructCompany(m.ID, m.SID, m.Name, m.Initials, m.Address, m.ContactPhone, m.CreatedAt, m.UpdatedAt)
}
