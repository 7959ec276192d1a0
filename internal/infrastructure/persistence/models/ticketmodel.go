package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tenantdesk/helpdesk/internal/shared/constants"
)

// Association fields below are never loaded; they carry the ON DELETE rules
// for AutoMigrate. The SQL migrations declare the same rules.

type TicketModel struct {
	ID          uint          `gorm:"primaryKey"`
	SID         string        `gorm:"column:sid;uniqueIndex;not null;size:32"`
	Reference   string        `gorm:"column:unique_reference;uniqueIndex;not null;size:32"`
	Title       string        `gorm:"size:200;not null"`
	Description string        `gorm:"type:text;not null"`
	Priority    string        `gorm:"size:20;not null;index"`
	Type        string        `gorm:"size:32;not null;index"`
	Status      string        `gorm:"size:20;not null;index"`
	AssigneeID  *uint         `gorm:"index"`
	Assignee    *UserModel    `gorm:"constraint:OnDelete:SET NULL"`
	CreatedByID uint          `gorm:"not null;index"`
	CreatedBy   *UserModel    `gorm:"constraint:OnDelete:CASCADE"`
	CompanyID   uint          `gorm:"not null;index"`
	Company     *CompanyModel `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `gorm:"index"`
	UpdatedAt   time.Time
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID        uint         `gorm:"primaryKey"`
	TicketID  uint         `gorm:"not null;index"`
	Ticket    *TicketModel `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint         `gorm:"not null;index"`
	Author    *UserModel   `gorm:"constraint:OnDelete:CASCADE"`
	Message   string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"index"`
	UpdatedAt time.Time
}

func (CommentModel) TableName() string {
	return constants.TableComments
}

type TimeEntryModel struct {
	ID         uint         `gorm:"primaryKey"`
	TicketID   uint         `gorm:"not null;index"`
	Ticket     *TicketModel `gorm:"constraint:OnDelete:CASCADE"`
	OperatorID uint         `gorm:"not null;index"`
	Operator   *UserModel   `gorm:"constraint:OnDelete:CASCADE"`
	Minutes    int          `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TimeEntryModel) TableName() string {
	return constants.TableTimeEntries
}

// HistoryModel is append-only.
type HistoryModel struct {
	ID             uint           `gorm:"primaryKey"`
	TicketID       uint           `gorm:"not null;index"`
	Ticket         *TicketModel   `gorm:"constraint:OnDelete:CASCADE"`
	EventType      string         `gorm:"size:32;not null"`
	Message        string         `gorm:"size:255;not null"`
	PreviousStatus *string        `gorm:"size:20"`
	NewStatus      *string        `gorm:"size:20"`
	UserID         *uint          `gorm:"index"`
	User           *UserModel     `gorm:"constraint:OnDelete:SET NULL"`
	Changes        datatypes.JSON
	ChangedAt      time.Time      `gorm:"not null;index"`
}

func (HistoryModel) TableName() string {
	return constants.TableTicketHistory
}

// TicketSequenceModel holds the last reference number issued per company.
type TicketSequenceModel struct {
	CompanyID  uint          `gorm:"primaryKey;autoIncrement:false"`
	Company    *CompanyModel `gorm:"constraint:OnDelete:CASCADE"`
	LastNumber int64         `gorm:"not null;default:0"`
}

func (TicketSequenceModel) TableName() string {
	return constants.TableTicketSequences
}
