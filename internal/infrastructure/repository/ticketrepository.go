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
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("ticket reference already taken", t.Reference())
		}
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// explicit columns so clearing the assignee writes NULL; UpdateColumns
	// keeps updated_at at the domain value instead of the write time
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("title", "description", "priority", "type", "status", "assignee_id", "company_id", "updated_at").
		UpdateColumns(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

// Delete removes the ticket and its children in one transaction. The foreign
// keys cascade as well; deleting explicitly keeps engines without FK
// enforcement consistent.
func (r *TicketRepository) Delete(ctx context.Context, ticketID uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		children := []any{&models.CommentModel{}, &models.TimeEntryModel{}, &models.HistoryModel{}}
		for _, child := range children {
			if err := tx.Where("ticket_id = ?", ticketID).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete ticket children: %w", err)
			}
		}

		result := tx.Delete(&models.TicketModel{}, ticketID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("ticket not found")
		}
		return nil
	})
}

func (r *TicketRepository) GetBySID(ctx context.Context, sid string, scope access.Scope) (*ticket.Ticket, error) {
	var model models.TicketModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(companyScope(scope, "company_id")).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter, scope access.Scope) ([]*ticket.Ticket, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Scopes(companyScope(scope, "company_id"), db.ContainsFold("title", filter.Title))

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&ticketModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count company tickets: %w", err)
	}
	return count, nil
}
