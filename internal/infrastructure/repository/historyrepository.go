package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
)

// HistoryRepository only appends; entries are never edited.
type HistoryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *HistoryRepository) Append(ctx context.Context, e *ticket.HistoryEntry) error {
	model, err := r.mapper.HistoryToModel(e)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append ticket history: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *HistoryRepository) ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.HistoryEntry, error) {
	var list []*models.HistoryModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(ticketChildScope(scope)).
		Where("ticket_id = ?", ticketID).
		Order("changed_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket history: %w", err)
	}

	return mapper.TryMapSlice(list, r.mapper.HistoryToDomain)
}
