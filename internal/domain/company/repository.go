package company

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

// Repository persists companies. Reads honour the caller's visibility scope:
// a scoped caller only ever sees their own company.
type Repository interface {
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uint) (*Company, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Company, error)
	GetBySID(ctx context.Context, sid string, scope access.Scope) (*Company, error)
	GetByInitials(ctx context.Context, initials string) (*Company, error)
	List(ctx context.Context, page query.PageFilter, scope access.Scope) ([]*Company, int64, error)
}
