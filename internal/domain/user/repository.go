package user

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

// Repository persists users. Lookups return a not-found AppError when no row
// matches; duplicate email or username yields a conflict AppError.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	// ListByIDs skips ids that do not exist.
	ListByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}

type ListFilter struct {
	query.PageFilter
	CompanyID *uint
	Role      string
	// Search matches email or username, case-insensitively.
	Search string
}
