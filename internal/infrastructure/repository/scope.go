package repository

import (
	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/shared/constants"
)

// companyScope restricts rows whose column holds a company id.
func companyScope(scope access.Scope, column string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if scope.IsUnrestricted() {
			return q
		}
		if id, ok := scope.CompanyID(); ok {
			return q.Where(column+" = ?", id)
		}
		return q.Where("1 = 0")
	}
}

// ticketChildScope restricts rows hanging off a ticket to tickets the scope
// can see.
func ticketChildScope(scope access.Scope) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if scope.IsUnrestricted() {
			return q
		}
		if id, ok := scope.CompanyID(); ok {
			return q.Where("ticket_id IN (SELECT id FROM "+constants.TableTickets+" WHERE company_id = ?)", id)
		}
		return q.Where("1 = 0")
	}
}
