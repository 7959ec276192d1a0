package ticket

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

// Every read takes the caller's Scope. A row outside the scope is reported
// as not found, exactly like a missing row.

type TicketRepository interface {
	// Create inserts the ticket. A duplicate reference is a conflict error.
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	// Delete removes the ticket with its comments, time entries and history.
	Delete(ctx context.Context, ticketID uint) error
	GetBySID(ctx context.Context, sid string, scope access.Scope) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter, scope access.Scope) ([]*Ticket, int64, error)
	CountByCompany(ctx context.Context, companyID uint) (int64, error)
}

// TicketFilter narrows a ticket listing. Results are newest first.
type TicketFilter struct {
	query.PageFilter
	Status   *vo.TicketStatus
	Priority *vo.Priority
	Type     *vo.TicketType
	// Title is a case-insensitive substring match.
	Title string
}

// ReferenceSequence hands out per-company ticket numbers. It must run inside
// the ticket insert transaction.
type ReferenceSequence interface {
	Next(ctx context.Context, companyID uint) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, commentID uint) error
	GetByID(ctx context.Context, ticketID, commentID uint, scope access.Scope) (*Comment, error)
	ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*Comment, error)
}

type TimeEntryRepository interface {
	Create(ctx context.Context, entry *TimeEntry) error
	Update(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, entryID uint) error
	GetByID(ctx context.Context, ticketID, entryID uint, scope access.Scope) (*TimeEntry, error)
	ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*TimeEntry, error)
	// SumMinutes totals minutes per ticket. Tickets without entries are
	// absent from the map.
	SumMinutes(ctx context.Context, ticketIDs []uint) (map[uint]int, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	// ListByTicket returns entries newest first (changed_at, then id).
	ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*HistoryEntry, error)
}
