package models

import (
	"time"

	"github.com/tenantdesk/helpdesk/internal/shared/constants"
)

// UserModel is the persistence shape of a user. The Company association
// only exists so AutoMigrate emits the foreign key.
type UserModel struct {
	ID           uint          `gorm:"primarykey"`
	SID          string        `gorm:"column:sid;uniqueIndex;not null;size:32"`
	Email        string        `gorm:"uniqueIndex;not null;size:255"`
	Username     string        `gorm:"uniqueIndex;not null;size:150"`
	FirstName    string        `gorm:"size:150"`
	LastName     string        `gorm:"size:150"`
	Phone        string        `gorm:"size:32"`
	Role         string        `gorm:"not null;size:20;index"`
	CompanyID    *uint         `gorm:"index"`
	Company      *CompanyModel `gorm:"constraint:OnDelete:SET NULL"`
	IsStaff      bool          `gorm:"not null;default:false"`
	IsActive     bool          `gorm:"not null;default:true"`
	PasswordHash string        `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
