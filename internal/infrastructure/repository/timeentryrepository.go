package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

type TimeEntryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *TimeEntryRepository) Create(ctx context.Context, e *ticket.TimeEntry) error {
	model := r.mapper.TimeEntryToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *TimeEntryRepository) Update(ctx context.Context, e *ticket.TimeEntry) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TimeEntryModel{}).
		Where("id = ?", e.ID()).
		Updates(map[string]any{"minutes": e.Minutes(), "updated_at": e.UpdatedAt()}).Error
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	return nil
}

func (r *TimeEntryRepository) Delete(ctx context.Context, entryID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.TimeEntryModel{}, entryID).Error; err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return nil
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, ticketID, entryID uint, scope access.Scope) (*ticket.TimeEntry, error) {
	var model models.TimeEntryModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(ticketChildScope(scope)).
		Where("id = ? AND ticket_id = ?", entryID, ticketID).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("time entry not found")
		}
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return r.mapper.TimeEntryToDomain(&model), nil
}

func (r *TimeEntryRepository) ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.TimeEntry, error) {
	var list []*models.TimeEntryModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(ticketChildScope(scope)).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	return mapper.MapSlice(list, r.mapper.TimeEntryToDomain), nil
}

func (r *TimeEntryRepository) SumMinutes(ctx context.Context, ticketIDs []uint) (map[uint]int, error) {
	totals := make(map[uint]int, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		TicketID uint
		Total    int
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TimeEntryModel{}).
		Select("ticket_id, SUM(minutes) AS total").
		Where("ticket_id IN ?", ticketIDs).
		Group("ticket_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum time entries: %w", err)
	}

	for _, row := range rows {
		totals[row.TicketID] = row.Total
	}
	return totals, nil
}
