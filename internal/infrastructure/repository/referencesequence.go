package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

// ReferenceSequence issues per-company ticket numbers from the
// ticket_sequences table. The increment takes the row lock, so concurrent
// creators for one company serialize until commit.
type ReferenceSequence struct {
	db *gorm.DB
}

func NewReferenceSequence(db *gorm.DB) *ReferenceSequence {
	return &ReferenceSequence{db: db}
}

func (s *ReferenceSequence) Next(ctx context.Context, companyID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, s.db)

	result := tx.Model(&models.TicketSequenceModel{}).
		Where("company_id = ?", companyID).
		UpdateColumn("last_number", gorm.Expr("last_number + 1"))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to advance ticket sequence: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return s.start(tx, companyID)
	}

	var seq models.TicketSequenceModel
	if err := tx.Where("company_id = ?", companyID).First(&seq).Error; err != nil {
		return 0, fmt.Errorf("failed to read ticket sequence: %w", err)
	}
	return seq.LastNumber, nil
}

// start creates the company's sequence row. Tickets issued before the row
// existed are counted so numbering continues after them. Losing the insert
// race to another creator surfaces as a conflict, which the caller retries.
func (s *ReferenceSequence) start(tx *gorm.DB, companyID uint) (int64, error) {
	var existing int64
	if err := tx.Model(&models.TicketModel{}).Where("company_id = ?", companyID).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("failed to count company tickets: %w", err)
	}

	seq := models.TicketSequenceModel{CompanyID: companyID, LastNumber: existing + 1}
	if err := tx.Create(&seq).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return 0, errors.NewConflictError("ticket sequence contention")
		}
		return 0, fmt.Errorf("failed to start ticket sequence: %w", err)
	}
	return seq.LastNumber, nil
}
