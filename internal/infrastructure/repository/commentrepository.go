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

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CommentModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{"message": c.Message(), "updated_at": c.UpdatedAt()}).Error
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.CommentModel{}, commentID).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, ticketID, commentID uint, scope access.Scope) (*ticket.Comment, error) {
	var model models.CommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(ticketChildScope(scope)).
		Where("id = ? AND ticket_id = ?", commentID, ticketID).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("comment not found")
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return r.mapper.CommentToDomain(&model), nil
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.Comment, error) {
	var list []*models.CommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(ticketChildScope(scope)).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return mapper.MapSlice(list, r.mapper.CommentToDomain), nil
}
