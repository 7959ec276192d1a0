package models

import (
	"time"

	"github.com/tenantdesk/helpdesk/internal/shared/constants"
)

type CompanyModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;not null;size:32"`
	Name         string `gorm:"not null;size:255"`
	Initials     string `gorm:"uniqueIndex;not null;size:3"`
	Address      string `gorm:"size:255"`
	ContactPhone string `gorm:"size:32"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CompanyModel) TableName() string {
	return constants.TableCompanies
}
