package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

type CompanyRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCompanyRepository(db *gorm.DB, logger logger.Interface) company.Repository {
	return &CompanyRepository{db: db, logger: logger}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	model := mappers.CompanyToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("company with these initials already exists", c.Initials())
		}
		r.logger.Errorw("failed to create company", "initials", c.Initials(), "error", err)
		return fmt.Errorf("failed to create company: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	model := mappers.CompanyToModel(c)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CompanyModel{}).
		Where("id = ?", c.ID()).
		Select("name", "initials", "address", "contact_phone", "updated_at").
		Updates(model).Error
	if err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("company with these initials already exists", c.Initials())
		}
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	return r.first(ctx, "id = ?", id, access.Unrestricted())
}

func (r *CompanyRepository) GetBySID(ctx context.Context, sid string, scope access.Scope) (*company.Company, error) {
	return r.first(ctx, "sid = ?", sid, scope)
}

func (r *CompanyRepository) GetByInitials(ctx context.Context, initials string) (*company.Company, error) {
	return r.first(ctx, "initials = ?", initials, access.Unrestricted())
}

func (r *CompanyRepository) first(ctx context.Context, cond string, arg any, scope access.Scope) (*company.Company, error) {
	var model models.CompanyModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(companyScope(scope, "id")).
		Where(cond, arg).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("company not found")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return mappers.CompanyToDomain(&model), nil
}

func (r *CompanyRepository) ListByIDs(ctx context.Context, ids []uint) ([]*company.Company, error) {
	if len(ids) == 0 {
		return []*company.Company{}, nil
	}
	var list []*models.CompanyModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get companies by IDs: %w", err)
	}
	return mapper.MapSlice(list, mappers.CompanyToDomain), nil
}

func (r *CompanyRepository) List(ctx context.Context, page query.PageFilter, scope access.Scope) ([]*company.Company, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).
		Model(&models.CompanyModel{}).
		Scopes(companyScope(scope, "id"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	var list []*models.CompanyModel
	if err := q.Order("name ASC").Scopes(db.Paginate(page.Offset(), page.Limit())).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return mapper.MapSlice(list, mappers.CompanyToDomain), total, nil
}
